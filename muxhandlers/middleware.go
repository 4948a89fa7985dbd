package muxhandlers

import (
	"net/http"

	"github.com/vitalvas/uniresp/errresp"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// ErrorWriter sends the response of a request failure. The failure is a
// *failure.Error or any error errresp.Classify understands.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// WriteError is the default ErrorWriter: it classifies err and sends the
// resulting error variant.
func WriteError(w http.ResponseWriter, _ *http.Request, err error) {
	_ = errresp.Write(w, err)
}

func errorWriterOrDefault(ew ErrorWriter) ErrorWriter {
	if ew == nil {
		return WriteError
	}
	return ew
}

// Chain applies middlewares so that the first one is the outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
