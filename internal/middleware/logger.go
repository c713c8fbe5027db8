package middleware

import (
	"net/http"
	"time"

	"github.com/golang/glog"
)

type rwWrapper struct {
	http.ResponseWriter
	status  int
	written bool
}

func (r *rwWrapper) saveStatus(status int, warn bool) {
	if !r.written {
		r.status = status
		r.written = true
	} else if warn {
		glog.Errorf("double header write (previous: %d, new: %d)", r.status, status)
	}
}

func (r *rwWrapper) WriteHeader(status int) {
	r.saveStatus(status, true)
	r.ResponseWriter.WriteHeader(status)
}

func (r *rwWrapper) Write(p []byte) (int, error) {
	r.saveStatus(http.StatusOK, false)
	return r.ResponseWriter.Write(p)
}

// MakeLogger returns a middleware that logs method, path, status and
// latency for every request
func MakeLogger() func(inner http.Handler) http.Handler {
	return func(inner http.Handler) http.Handler {
		mw := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path += "?" + r.URL.RawQuery
			}

			rww := &rwWrapper{ResponseWriter: w}
			inner.ServeHTTP(rww, r)

			latency := time.Since(start)

			logf := glog.Infof
			switch {
			case rww.status >= 500:
				logf = glog.Errorf
			case rww.status >= 400:
				logf = glog.Warningf
			}
			logf("%3d | %13v | %-7s %s", rww.status, latency, r.Method, path)
		}
		return MkMiddleware(mw)
	}
}
