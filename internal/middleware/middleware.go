package middleware

import "net/http"

// MkMiddleware converts a plain handler func into an http.Handler
func MkMiddleware(f func(w http.ResponseWriter, r *http.Request)) http.Handler {
	return http.HandlerFunc(f)
}
