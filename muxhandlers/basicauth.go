package muxhandlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/vitalvas/uniresp/failure"
)

// ErrNoAuthSource is returned when BasicAuthConfig has neither ValidateFunc
// nor Credentials configured.
var ErrNoAuthSource = errors.New("basic auth: at least one of ValidateFunc or Credentials must be set")

// BasicAuthConfig configures the Basic Auth middleware behaviour.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc7617
type BasicAuthConfig struct {
	// Realm is the authentication realm sent in the WWW-Authenticate header.
	// Defaults to "Restricted" when empty.
	Realm string

	// ValidateFunc is called to validate credentials dynamically.
	// Takes priority over Credentials when both are set.
	ValidateFunc func(username, password string) bool

	// Credentials is a static map of username -> password pairs, compared
	// through SHA-256 hashes in constant time.
	Credentials map[string]string

	// ErrorWriter sends the 401 response. Defaults to WriteError.
	ErrorWriter ErrorWriter
}

// BasicAuthMiddleware returns a middleware that implements HTTP Basic
// Authentication per RFC 7617. Missing or invalid credentials are answered
// with an Authorization failure (401 Unauthorized) and a WWW-Authenticate
// challenge.
//
// It returns ErrNoAuthSource if both ValidateFunc and Credentials are nil/empty.
func BasicAuthMiddleware(cfg BasicAuthConfig) (Middleware, error) {
	if cfg.ValidateFunc == nil && len(cfg.Credentials) == 0 {
		return nil, ErrNoAuthSource
	}

	realm := cfg.Realm
	if realm == "" {
		realm = "Restricted"
	}

	wwwAuthenticate := fmt.Sprintf("Basic realm=%q", realm)

	validate := cfg.ValidateFunc
	credentials := cfg.Credentials
	writeError := errorWriterOrDefault(cfg.ErrorWriter)

	unauthorized := func(w http.ResponseWriter, r *http.Request, msg string) {
		w.Header().Set("WWW-Authenticate", wwwAuthenticate)
		writeError(w, r, failure.New(failure.Authorization, msg))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w, r, "missing basic credentials")
				return
			}

			if validate != nil {
				if !validate(username, password) {
					unauthorized(w, r, "invalid credentials")
					return
				}
			} else {
				expectedPassword, exists := credentials[username]
				// Compare even for unknown users so timing does not reveal them.
				passwordMatch := constantTimeEqual(password, expectedPassword)
				if !exists || !passwordMatch {
					unauthorized(w, r, "invalid credentials")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

// constantTimeEqual compares the SHA-256 hashes of a and b in constant time.
func constantTimeEqual(a, b string) bool {
	aHash := sha256.Sum256([]byte(a))
	bHash := sha256.Sum256([]byte(b))

	return subtle.ConstantTimeCompare(aHash[:], bHash[:]) == 1
}
