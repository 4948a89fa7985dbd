package errresp

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/uniresp/failure"
	"github.com/vitalvas/uniresp/openapi"
	"github.com/vitalvas/uniresp/payload"
	"github.com/vitalvas/uniresp/response"
)

type statusErr int

func (e statusErr) Error() string   { return fmt.Sprintf("status error %d", int(e)) }
func (e statusErr) StatusCode() int { return int(e) }

func TestConstructors(t *testing.T) {
	cr := uint64(512)

	tests := []struct {
		resp   Response
		status int
	}{
		{BadRequest("a"), http.StatusBadRequest},
		{Unauthorized("a"), http.StatusUnauthorized},
		{Forbidden("a"), http.StatusForbidden},
		{NotFound("a"), http.StatusNotFound},
		{MethodNotAllowed("a"), http.StatusMethodNotAllowed},
		{PreconditionFailed("a"), http.StatusPreconditionFailed},
		{PayloadTooLarge("a"), http.StatusRequestEntityTooLarge},
		{UnsupportedMediaType("a"), http.StatusUnsupportedMediaType},
		{RangeNotSatisfiable("a", &cr), http.StatusRequestedRangeNotSatisfiable},
		{InternalServerError("a"), http.StatusInternalServerError},
	}

	require.Len(t, tests, len(Statuses))

	for i, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.resp.Status())
			assert.Equal(t, Statuses[i], tt.resp.Status())
			assert.Equal(t, "a", tt.resp.Message())

			w := tt.resp.Render()
			assert.Equal(t, tt.status, w.Status)
			assert.Equal(t, payload.ContentTypePlainText, w.Header.Get("Content-Type"))
			assert.Equal(t, "a", string(w.Body))
		})
	}
}

func TestRender(t *testing.T) {
	t.Run("content range", func(t *testing.T) {
		cr := uint64(1024)
		w := RangeNotSatisfiable("bad range", &cr).Render()
		assert.Equal(t, "1024", w.Header.Get("Content-Range"))

		v, ok := RangeNotSatisfiable("", &cr).ContentRange()
		assert.True(t, ok)
		assert.Equal(t, uint64(1024), v)
	})

	t.Run("no content range", func(t *testing.T) {
		w := RangeNotSatisfiable("bad range", nil).Render()
		assert.Empty(t, w.Header.Get("Content-Range"))

		_, ok := NotFound("").ContentRange()
		assert.False(t, ok)
	})

	t.Run("zero value", func(t *testing.T) {
		var r Response
		assert.Equal(t, http.StatusInternalServerError, r.Status())
		assert.Equal(t, http.StatusInternalServerError, r.Render().Status)
	})

	t.Run("write", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, Write(rec, failure.New(failure.NotFound, "no such item")))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "no such item", rec.Body.String())
	})
}

func TestMeta(t *testing.T) {
	descs := Response{}.Meta()

	assert.Equal(t, Statuses, response.Statuses(descs))
	for _, d := range descs {
		assert.Equal(t, http.StatusText(d.Status), d.Description)
		require.Len(t, d.Content, 1)
		assert.Equal(t, payload.ContentTypePlainText, d.Content[0].ContentType)
		assert.Equal(t, []string{"string"}, d.Content[0].Schema.Schema().Type.Values())

		if d.Status != http.StatusRequestedRangeNotSatisfiable {
			assert.Empty(t, d.Headers)
			continue
		}

		require.Len(t, d.Headers, 1)
		h := d.Headers[0]
		assert.Equal(t, "CONTENT-RANGE", h.Name)
		assert.False(t, h.Required)
		assert.Equal(t, "uint64", h.Schema.Schema().Format)
	}

	reg := openapi.NewRegistry()
	Response{}.Register(reg)
	assert.Equal(t, 0, reg.Len())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"nil", nil, http.StatusInternalServerError, ""},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "boom"},
		{"parse path", failure.New(failure.ParsePath, "bad id"), http.StatusBadRequest, "bad id"},
		{"parse json", failure.New(failure.ParseJSON, "bad json"), http.StatusBadRequest, "bad json"},
		{"authorization", failure.New(failure.Authorization, "no token"), http.StatusUnauthorized, "no token"},
		{"cors", failure.New(failure.CORS, "origin"), http.StatusForbidden, "origin"},
		{"not found", failure.New(failure.NotFound, "nope"), http.StatusNotFound, "nope"},
		{"static file", failure.New(failure.StaticFile, "nope"), http.StatusNotFound, "nope"},
		{"method", failure.New(failure.MethodNotAllowed, "no"), http.StatusMethodNotAllowed, "no"},
		{"precondition", failure.New(failure.Precondition, "etag"), http.StatusPreconditionFailed, "etag"},
		{"size limit", failure.New(failure.SizeLimit, "big"), http.StatusRequestEntityTooLarge, "big"},
		{"max bytes", &http.MaxBytesError{Limit: 8}, http.StatusRequestEntityTooLarge, "http: request body too large"},
		{"missing content type", failure.New(failure.MissingContentType, "ct"), http.StatusUnsupportedMediaType, "ct"},
		{"content type", failure.New(failure.ContentType, "ct"), http.StatusUnsupportedMediaType, "ct"},
		{"range", failure.New(failure.Range, "range"), http.StatusRequestedRangeNotSatisfiable, "range"},
		{"internal", failure.New(failure.Internal, "oops"), http.StatusInternalServerError, "oops"},
		{"explicit status", failure.WithStatus(http.StatusNotFound, "gone"), http.StatusNotFound, "gone"},
		{"explicit status wins over kind", &failure.Error{Kind: failure.ParseJSON, Status: http.StatusForbidden, Message: "x"}, http.StatusForbidden, "x"},
		{"status without variant", failure.WithStatus(http.StatusConflict, "taken"), http.StatusInternalServerError, "taken"},
		{"status coder", statusErr(http.StatusUnauthorized), http.StatusUnauthorized, "status error 401"},
		{"status coder without variant", statusErr(http.StatusTeapot), http.StatusInternalServerError, "status error 418"},
		{"wrapped", fmt.Errorf("load: %w", failure.New(failure.NotFound, "nope")), http.StatusNotFound, "load: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Classify(tt.err)
			assert.Equal(t, tt.wantStatus, r.Status())
			assert.Equal(t, tt.wantMessage, r.Message())
		})
	}

	t.Run("range carries content range", func(t *testing.T) {
		r := Classify(failure.RangeNotSatisfiable("bad range", 2048))
		v, ok := r.ContentRange()
		require.True(t, ok)
		assert.Equal(t, uint64(2048), v)
		assert.Equal(t, "2048", r.Render().Header.Get("Content-Range"))
	})

	t.Run("every kind classifies to a variant", func(t *testing.T) {
		for _, k := range failure.Kinds() {
			r := Classify(failure.New(k, ""))
			assert.Contains(t, Statuses, r.Status(), k.String())
			assert.Equal(t, k.Status(), r.Status(), k.String())
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		err := failure.New(failure.ParseQuery, "q")
		assert.Equal(t, Classify(err), Classify(err))
	})

	t.Run("parse error handler", func(t *testing.T) {
		var r Response
		assert.True(t, response.HandlesParseErrors(r))
		got := r.FromParseError(failure.New(failure.ParseForm, "form"))
		assert.Equal(t, http.StatusBadRequest, got.Render().Status)
	})
}

func TestCatalog(t *testing.T) {
	assert.Equal(t, []int{200, 400, 401, 403, 404, 405, 412, 413, 415, 416, 500}, Catalog.Statuses())
}
