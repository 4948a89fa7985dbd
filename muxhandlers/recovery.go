package muxhandlers

import (
	"fmt"
	"net/http"

	"github.com/go-logr/logr"

	"github.com/vitalvas/uniresp/failure"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// Logger receives one error entry per recovered panic. Defaults to
	// logr.Discard().
	Logger logr.Logger

	// ErrorWriter sends the 500 response. Defaults to WriteError.
	ErrorWriter ErrorWriter
}

// RecoveryMiddleware returns a middleware that recovers from panics in
// downstream handlers. A panic is logged and answered with an Internal
// failure (500 Internal Server Error). The panic value is never sent to the
// client. http.ErrAbortHandler is re-panicked.
func RecoveryMiddleware(cfg RecoveryConfig) Middleware {
	logger := cfg.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}

	writeError := errorWriterOrDefault(cfg.ErrorWriter)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error(fmt.Errorf("panic: %v", rec), "handler panicked",
					"method", r.Method,
					"path", r.URL.Path,
					"requestID", RequestIDFromContext(r.Context()),
				)

				writeError(w, r, failure.New(failure.Internal, http.StatusText(http.StatusInternalServerError)))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
