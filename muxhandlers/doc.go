// Package muxhandlers provides net/http middlewares whose failures are
// answered with the error variants of package errresp.
//
// Every middleware reports failures as *failure.Error values and hands them
// to an ErrorWriter; the default, WriteError, classifies the failure and
// writes the plain-text variant. Replace it to log or reshape failures.
//
// # Basic Auth Middleware
//
// BasicAuthMiddleware implements HTTP Basic Authentication per RFC 7617.
// Credentials can be validated via a dynamic callback or a static map.
// Missing or invalid credentials are answered with 401 and a
// WWW-Authenticate challenge.
//
//	mw, err := muxhandlers.BasicAuthMiddleware(muxhandlers.BasicAuthConfig{
//	    Realm: "My App",
//	    Credentials: map[string]string{
//	        "admin": "secret",
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svc.Use(mw)
//
// # Content-Type Check Middleware
//
// ContentTypeCheckMiddleware rejects POST, PUT and PATCH requests whose
// Content-Type is missing or not allowed with 415.
//
// # Request Size Limit Middleware
//
// RequestSizeLimitMiddleware rejects declared bodies over the limit with 413
// and caps the remaining ones with http.MaxBytesReader.
//
// # Recovery Middleware
//
// RecoveryMiddleware turns handler panics into 500 responses and logs them
// through a logr.Logger.
//
// # Request ID Middleware
//
// RequestIDMiddleware assigns every request a UUID v7 (or propagates a
// trusted incoming one) and stores it in the request context.
//
//	h := muxhandlers.Chain(handler,
//	    muxhandlers.RequestIDMiddleware(muxhandlers.RequestIDConfig{}),
//	    muxhandlers.RecoveryMiddleware(muxhandlers.RecoveryConfig{Logger: logger}),
//	)
package muxhandlers
