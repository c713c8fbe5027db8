// Package httphelper adapts handlers returning (resp, error) into JSON HTTP
// handlers and maps error causes to HTTP status codes.
package httphelper

import (
	"encoding/json"
	"net/http"

	"github.com/golang/glog"
	"github.com/juju/errors"
)

var (
	internalServerError = errors.New("internal server error")
	unauthorizedError   = errors.New("unauthorized")
	notFoundError       = errors.New("not found")
	notImplementedError = errors.New("not implemented")
)

// ErrorResponse is the JSON body sent for failed requests
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// GetErrorStruct builds the JSON error body for the given error
func GetErrorStruct(errResp error) *ErrorResponse {
	return &ErrorResponse{
		Status:  GetHTTPErrorCode(errResp),
		Message: errResp.Error(),
	}
}

// RespondWithError writes the error as a JSON response
func RespondWithError(w http.ResponseWriter, r *http.Request, errResp error) {
	errStruct := GetErrorStruct(errResp)

	if errors.Cause(errResp) == internalServerError {
		glog.Errorf("INTERNAL SERVER ERROR: %s", errors.ErrorStack(errResp))
	} else {
		glog.V(2).Infof("%s", errors.ErrorStack(errResp))
	}

	d, err := json.MarshalIndent(errStruct, "", "  ")
	if err != nil {
		panic(err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(errStruct.Status)
	if _, err := w.Write(d); err != nil {
		glog.Errorf("writing error response: %v", err)
	}
}

// MakeAPIHandler wraps a handler returning (resp, error) into an
// http.HandlerFunc that writes resp as indented JSON
func MakeAPIHandler(
	f func(r *http.Request) (resp interface{}, err error),
) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := f(r)
		if err != nil {
			RespondWithError(w, r, errors.Trace(err))
			return
		}

		d, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			RespondWithError(w, r, MakeInternalServerError(
				errors.Annotatef(err, "marshalling resp"),
			))
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if _, err := w.Write(d); err != nil {
			glog.Errorf("writing response: %v", err)
		}
	}
}

// MakeAPIHandlerWWriter wraps handlers that need the raw ResponseWriter,
// e.g. file downloads
func MakeAPIHandlerWWriter(
	f func(w http.ResponseWriter, r *http.Request) (err error),
) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			RespondWithError(w, r, errors.Trace(err))
		}
	}
}

// MakeInternalServerError logs the given error and returns an
// internal-server-error whose message does not leak internals to clients
func MakeInternalServerError(intError error) error {
	if errors.Cause(intError) != internalServerError {
		glog.Errorf("internal error: %s", errors.ErrorStack(intError))
		return errors.Trace(internalServerError)
	}
	return errors.Trace(intError)
}

// MakeUnauthorizedError returns the error mapped to 401
func MakeUnauthorizedError() error {
	return errors.Trace(unauthorizedError)
}

// MakeNotFoundError returns the error mapped to 404
func MakeNotFoundError() error {
	return errors.Trace(notFoundError)
}

// MakeNotImplementedError returns the error mapped to 501
func MakeNotImplementedError() error {
	return errors.Trace(notImplementedError)
}

// GetHTTPErrorCode maps the error cause to a status code. Unrecognized
// errors are treated as bad requests.
func GetHTTPErrorCode(err error) int {
	status := http.StatusBadRequest

	switch errors.Cause(err) {
	case internalServerError:
		status = http.StatusInternalServerError
	case unauthorizedError:
		status = http.StatusUnauthorized
	case notFoundError:
		status = http.StatusNotFound
	case notImplementedError:
		status = http.StatusNotImplemented
	}

	return status
}
