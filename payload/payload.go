package payload

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"reflect"

	"github.com/vitalvas/uniresp/openapi"
)

// Media types written by the payloads in this package.
const (
	ContentTypePlainText = "text/plain; charset=utf-8"
	ContentTypeJSON      = "application/json; charset=utf-8"
	ContentTypeXML       = "application/xml; charset=utf-8"
	ContentTypeBinary    = "application/octet-stream"
)

// Payload is a response body with a fixed media type. ContentType and
// SchemaRef must not depend on the value, only on the type: response
// metadata calls them on zero values.
type Payload interface {
	ContentType() string
	SchemaRef() openapi.SchemaRef
	Register(reg *openapi.Registry)
	Encode() ([]byte, error)
}

// PlainText is a UTF-8 text body.
type PlainText string

func (PlainText) ContentType() string { return ContentTypePlainText }

func (PlainText) SchemaRef() openapi.SchemaRef {
	return openapi.Inline(&openapi.Schema{Type: openapi.TypeString("string")})
}

func (PlainText) Register(*openapi.Registry) {}

func (p PlainText) Encode() ([]byte, error) { return []byte(p), nil }

// Binary is an opaque byte body.
type Binary []byte

func (Binary) ContentType() string { return ContentTypeBinary }

func (Binary) SchemaRef() openapi.SchemaRef {
	return openapi.Inline(&openapi.Schema{Type: openapi.TypeString("string"), Format: "binary"})
}

func (Binary) Register(*openapi.Registry) {}

func (b Binary) Encode() ([]byte, error) { return b, nil }

// JSON encodes Value as a JSON document.
type JSON[T any] struct {
	Value T
}

// NewJSON wraps v in a JSON payload.
func NewJSON[T any](v T) JSON[T] { return JSON[T]{Value: v} }

func (JSON[T]) ContentType() string { return ContentTypeJSON }

func (JSON[T]) SchemaRef() openapi.SchemaRef {
	return openapi.RefOfType(reflect.TypeFor[T]())
}

func (JSON[T]) Register(reg *openapi.Registry) {
	reg.RegisterType(reflect.TypeFor[T]())
}

// Encode marshals Value. The trailing newline written by json.Encoder is
// kept, matching what encoding handlers usually send.
func (p JSON[T]) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(p.Value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// XML encodes Value as an XML document.
type XML[T any] struct {
	Value T
}

// NewXML wraps v in an XML payload.
func NewXML[T any](v T) XML[T] { return XML[T]{Value: v} }

func (XML[T]) ContentType() string { return ContentTypeXML }

func (XML[T]) SchemaRef() openapi.SchemaRef {
	return openapi.RefOfType(reflect.TypeFor[T]())
}

func (XML[T]) Register(reg *openapi.Registry) {
	reg.RegisterType(reflect.TypeFor[T]())
}

func (p XML[T]) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := xml.NewEncoder(&buf).Encode(p.Value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
