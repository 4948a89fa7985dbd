package response

import (
	"maps"
	"net/http"

	"github.com/vitalvas/uniresp/openapi"
)

// TypedResponse is a response value that knows how it is sent and how it is
// documented.
//
// Meta and Register must depend only on the dynamic type, never on the
// value: they are called on prototypes (zero values) when the API document is
// built. Render consumes the value and must set the status the type is
// documented with.
type TypedResponse interface {
	Render() *Wire
	Meta() []Descriptor
	Register(reg *openapi.Registry)
}

// ParseErrorHandler is implemented by responses that may be able to build
// themselves from a request parsing failure. HandlesParseErrors is consulted
// once, when the response type is registered; FromParseError is only called
// when it reported true.
type ParseErrorHandler interface {
	HandlesParseErrors() bool
	FromParseError(err error) TypedResponse
}

// Validator is implemented by responses whose declaration can be checked
// before any value is built.
type Validator interface {
	Validate() error
}

// Validate checks r's declaration when r implements Validator.
func Validate(r TypedResponse) error {
	if r == nil {
		return ErrNilResponse
	}
	if v, ok := r.(Validator); ok {
		return v.Validate()
	}
	return nil
}

// HandlesParseErrors reports whether r can recover from request parsing
// failures.
func HandlesParseErrors(r TypedResponse) bool {
	h, ok := r.(ParseErrorHandler)
	return ok && h.HandlesParseErrors()
}

// Wire is a rendered response ready to be written to the client.
type Wire struct {
	Status int
	Header http.Header
	Body   []byte
}

// NewWire returns an empty response with the given status.
func NewWire(status int) *Wire {
	return &Wire{Status: status, Header: make(http.Header)}
}

// Write sends the response. Headers already present on rw are kept unless
// the wire response sets the same name.
func (w *Wire) Write(rw http.ResponseWriter) error {
	maps.Copy(rw.Header(), w.Header)

	status := w.Status
	if status == 0 {
		status = http.StatusOK
	}
	rw.WriteHeader(status)

	if len(w.Body) == 0 {
		return nil
	}
	_, err := rw.Write(w.Body)
	return err
}

// Empty is the response of a slot that has nothing configured. It has no
// descriptors, registers nothing and renders an empty 200 response.
type Empty struct{}

func (Empty) Render() *Wire { return NewWire(http.StatusOK) }

func (Empty) Meta() []Descriptor { return nil }

func (Empty) Register(*openapi.Registry) {}

// internalError is rendered when a response cannot be encoded.
func internalError() *Wire {
	w := NewWire(http.StatusInternalServerError)
	w.Header.Set("Content-Type", "text/plain; charset=utf-8")
	w.Body = []byte(http.StatusText(http.StatusInternalServerError))
	return w
}
