package muxhandlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/uniresp/errresp"
)

// readAllHandler reads the whole body and answers read failures through the
// error taxonomy.
func readAllHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			_ = errresp.Write(w, err)
			return
		}
		_, _ = w.Write(body)
	})
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	t.Run("config validation", func(t *testing.T) {
		_, err := RequestSizeLimitMiddleware(RequestSizeLimitConfig{})
		assert.ErrorIs(t, err, ErrInvalidMaxSize)

		_, err = RequestSizeLimitMiddleware(RequestSizeLimitConfig{MaxBytes: -1})
		assert.ErrorIs(t, err, ErrInvalidMaxSize)
	})

	tests := []struct {
		name          string
		maxBytes      int64
		body          string
		chunked       bool
		wantCode      int
		wantBodyMatch string
	}{
		{
			name:          "under limit",
			maxBytes:      16,
			body:          "small",
			wantCode:      http.StatusOK,
			wantBodyMatch: "small",
		},
		{
			name:          "exactly at limit",
			maxBytes:      5,
			body:          "exact",
			wantCode:      http.StatusOK,
			wantBodyMatch: "exact",
		},
		{
			name:          "declared length over limit",
			maxBytes:      4,
			body:          "too large",
			wantCode:      http.StatusRequestEntityTooLarge,
			wantBodyMatch: "request body of 9 bytes exceeds the limit of 4 bytes",
		},
		{
			name:          "unknown length over limit",
			maxBytes:      4,
			body:          "too large",
			chunked:       true,
			wantCode:      http.StatusRequestEntityTooLarge,
			wantBodyMatch: "http: request body too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw, err := RequestSizeLimitMiddleware(RequestSizeLimitConfig{MaxBytes: tt.maxBytes})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(tt.body))
			if tt.chunked {
				req.ContentLength = -1
			}

			w := httptest.NewRecorder()
			mw(readAllHandler()).ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantBodyMatch, w.Body.String())
		})
	}
}

func BenchmarkRequestSizeLimitMiddleware(b *testing.B) {
	mw, err := RequestSizeLimitMiddleware(RequestSizeLimitConfig{MaxBytes: 1 << 20})
	if err != nil {
		b.Fatal(err)
	}
	h := mw(readAllHandler())

	b.ResetTimer()
	for b.Loop() {
		req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("payload"))
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
}
