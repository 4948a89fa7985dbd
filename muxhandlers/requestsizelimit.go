package muxhandlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vitalvas/uniresp/failure"
)

// ErrInvalidMaxSize is returned when RequestSizeLimitConfig.MaxBytes is not
// greater than zero.
var ErrInvalidMaxSize = errors.New("request size limit: max size must be greater than zero")

// RequestSizeLimitConfig configures the Request Size Limit middleware behaviour.
type RequestSizeLimitConfig struct {
	// MaxBytes is the maximum allowed request body size in bytes.
	// Must be greater than zero.
	MaxBytes int64

	// ErrorWriter sends the 413 response for a declared Content-Length over
	// the limit. Defaults to WriteError.
	ErrorWriter ErrorWriter
}

// RequestSizeLimitMiddleware returns a middleware that limits the size of
// incoming request bodies. A declared Content-Length above the limit is
// rejected with a SizeLimit failure before the handler runs. Otherwise r.Body
// is wrapped with http.MaxBytesReader; reading past the limit returns
// *http.MaxBytesError, which classifies as 413 Payload Too Large.
//
// It returns ErrInvalidMaxSize if MaxBytes is not greater than zero.
func RequestSizeLimitMiddleware(cfg RequestSizeLimitConfig) (Middleware, error) {
	if cfg.MaxBytes <= 0 {
		return nil, ErrInvalidMaxSize
	}

	maxBytes := cfg.MaxBytes
	writeError := errorWriterOrDefault(cfg.ErrorWriter)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				writeError(w, r, failure.New(failure.SizeLimit,
					fmt.Sprintf("request body of %d bytes exceeds the limit of %d bytes", r.ContentLength, maxBytes)))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}, nil
}
