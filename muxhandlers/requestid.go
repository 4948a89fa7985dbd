package muxhandlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/net/http/httpguts"
)

// DefaultRequestIDHeader is the header carrying the request ID.
const DefaultRequestIDHeader = "X-Request-ID"

// maxIncomingRequestIDLength bounds request IDs accepted from clients.
const maxIncomingRequestIDLength = 128

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored in the context by
// RequestIDMiddleware. Returns an empty string if no ID is present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// ContextWithRequestID returns a copy of ctx carrying id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDConfig configures the Request ID middleware behaviour.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the request ID.
	// Defaults to DefaultRequestIDHeader when empty.
	HeaderName string

	// GenerateFunc returns a new unique ID for the request. Defaults to
	// GenerateUUIDv7.
	GenerateFunc func(r *http.Request) string

	// TrustIncoming reuses the request ID sent by the client. IDs longer
	// than 128 bytes or that are not valid header values are replaced.
	TrustIncoming bool
}

// RequestIDMiddleware returns a middleware that generates or propagates a
// request ID. The ID is set on the request header, the response header and
// the request context, where error logging picks it up.
func RequestIDMiddleware(cfg RequestIDConfig) Middleware {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = DefaultRequestIDHeader
	}

	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv7
	}

	trustIncoming := cfg.TrustIncoming

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if trustIncoming {
				id = r.Header.Get(headerName)
				if !validRequestID(id) {
					id = ""
				}
			}

			if id == "" {
				id = generate(r)
			}

			if id != "" {
				r.Header.Set(headerName, id)
				w.Header().Set(headerName, id)
				r = r.WithContext(ContextWithRequestID(r.Context(), id))
			}

			next.ServeHTTP(w, r)
		})
	}
}

func validRequestID(id string) bool {
	return id != "" && len(id) <= maxIncomingRequestIDLength && httpguts.ValidHeaderFieldValue(id)
}

// GenerateUUIDv4 returns a new random UUID string.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.4
func GenerateUUIDv4(_ *http.Request) string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new time-ordered UUID string: IDs generated later
// sort after earlier ones.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.7
func GenerateUUIDv7(_ *http.Request) string {
	return uuid.Must(uuid.NewV7()).String()
}
