package response

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/net/http/httpguts"

	"github.com/vitalvas/uniresp/openapi"
	"github.com/vitalvas/uniresp/payload"
)

// Definer is implemented by struct types declaring a single response.
//
//	// ItemCreated is returned when an item was stored.
//	type ItemCreated struct {
//	    Body     payload.JSON[Item]
//	    Location string  `header:"Location" description:"URL of the new item"`
//	    TraceID  *string `header:"X-Trace-ID" deprecated:"true"`
//	}
//
//	func (ItemCreated) ResponseDefinition() response.Definition {
//	    return response.Definition{Status: http.StatusCreated, Description: "Item created"}
//	}
//
// A struct has at most one payload field, whose type implements
// payload.Payload, and any number of header fields tagged `header:"Name"`.
// Header fields may be strings, booleans, integers, floats or pointers to
// them; a nil pointer omits the header.
//
// Every field counts: an unexported field without a header tag is rejected
// with ErrIncorrectDefinition.
type Definer interface {
	ResponseDefinition() Definition
}

// ParseErrorRecoverer is implemented by response structs that can be built
// from a request parsing failure.
type ParseErrorRecoverer[T any] interface {
	RecoverParseError(err error) T
}

// Definition is the static part of a single response declaration.
type Definition struct {
	Status      int
	Description string

	// ContentType replaces the payload's media type on the wire and in the
	// descriptor.
	ContentType string

	// Headers are documented but never set by Render.
	Headers []ExtraHeader
}

// ExtraHeader documents a header that is set outside the response value,
// by a middleware for instance. Type is a sample value used for the schema;
// a pointer sample makes the header optional. A nil Type documents a string.
type ExtraHeader struct {
	Name        string
	Description string
	Deprecated  bool
	Type        any
}

// headerField is a header-tagged struct field.
type headerField struct {
	index int
	desc  Header
}

// definition is the validated form of a Definer type.
type definition struct {
	typeName    string
	status      int
	description string
	contentType string
	payload     int // field index, -1 without payload
	payloadType reflect.Type
	fields      []headerField
	extra       []Header
	err         error
}

var definitions sync.Map // reflect.Type -> *definition

// Define validates the response declaration of T. The result is cached, so
// it is cheap to call repeatedly.
func Define[T Definer]() error {
	return definitionOf[T]().err
}

func definitionOf[T Definer]() *definition {
	t := reflect.TypeFor[T]()
	if d, ok := definitions.Load(t); ok {
		return d.(*definition)
	}

	var zero T
	d := compileDefinition(t, zero.ResponseDefinition())
	actual, _ := definitions.LoadOrStore(t, d)
	return actual.(*definition)
}

func compileDefinition(t reflect.Type, def Definition) *definition {
	d := &definition{
		typeName:    t.String(),
		status:      def.Status,
		description: def.Description,
		contentType: def.ContentType,
		payload:     -1,
	}

	fail := func(err error) *definition {
		d.err = fmt.Errorf("%s: %w", d.typeName, err)
		return d
	}

	if err := checkStatusRange(def.Status); err != nil {
		return fail(err)
	}

	if t.Kind() != reflect.Struct {
		return fail(fmt.Errorf("%w: %s is not a struct", ErrIncorrectDefinition, t.Kind()))
	}

	seen := make(map[string]struct{})
	addHeader := func(name string) (string, error) {
		if !httpguts.ValidHeaderFieldName(name) {
			return "", fmt.Errorf("%w: %q is not a valid header name", ErrInvalidHeader, name)
		}
		upper := strings.ToUpper(name)
		if _, dup := seen[upper]; dup {
			return "", fmt.Errorf("%w: %s is declared more than once", ErrInvalidHeader, upper)
		}
		seen[upper] = struct{}{}
		return upper, nil
	}

	payloadType := reflect.TypeFor[payload.Payload]()

	for i := range t.NumField() {
		field := t.Field(i)
		name, isHeader := field.Tag.Lookup("header")

		if !field.IsExported() {
			if isHeader {
				return fail(fmt.Errorf("%w: field %s is unexported", ErrInvalidHeader, field.Name))
			}
			return fail(fmt.Errorf("%w: field %s is unexported", ErrIncorrectDefinition, field.Name))
		}

		if isHeader {
			upper, err := addHeader(name)
			if err != nil {
				return fail(err)
			}
			schema, required, ok := headerSchema(field.Type)
			if !ok {
				return fail(fmt.Errorf("%w: field %s has unsupported type %s", ErrInvalidHeader, field.Name, field.Type))
			}
			d.fields = append(d.fields, headerField{
				index: i,
				desc: Header{
					Name:        upper,
					Description: field.Tag.Get("description"),
					Required:    required,
					Deprecated:  field.Tag.Get("deprecated") == "true",
					Schema:      schema,
				},
			})
			continue
		}

		if d.payload >= 0 {
			return fail(fmt.Errorf("%w: fields %s and %s both carry a payload",
				ErrIncorrectDefinition, t.Field(d.payload).Name, field.Name))
		}
		if !field.Type.Implements(payloadType) {
			return fail(fmt.Errorf("%w: field %s has type %s", ErrInvalidPayload, field.Name, field.Type))
		}
		d.payload = i
		d.payloadType = field.Type
	}

	for _, h := range def.Headers {
		upper, err := addHeader(h.Name)
		if err != nil {
			return fail(err)
		}
		var (
			schema   = openapi.Inline(&openapi.Schema{Type: openapi.TypeString("string")})
			required = true
		)
		if h.Type != nil {
			var ok bool
			if schema, required, ok = headerSchema(reflect.TypeOf(h.Type)); !ok {
				return fail(fmt.Errorf("%w: extra header %s has unsupported type %T", ErrInvalidHeader, upper, h.Type))
			}
		}
		d.extra = append(d.extra, Header{
			Name:        upper,
			Description: h.Description,
			Required:    required,
			Deprecated:  h.Deprecated,
			Schema:      schema,
		})
	}

	return d
}

// headerSchema returns the schema of a header field type and whether the
// header is required (non-pointer).
func headerSchema(t reflect.Type) (openapi.SchemaRef, bool, bool) {
	required := true
	if t.Kind() == reflect.Pointer {
		required = false
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return openapi.RefOfType(t), required, true
	}

	return openapi.SchemaRef{}, false, false
}

// headerValue formats a header field. It reports false for nil pointers.
func headerValue(v reflect.Value) (string, bool) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), true
	}

	return "", false
}

func (d *definition) descriptor() Descriptor {
	desc := Descriptor{
		Status:      d.status,
		Description: d.description,
	}

	if d.payload >= 0 {
		p := reflect.Zero(d.payloadType).Interface().(payload.Payload)
		ct := d.contentType
		if ct == "" {
			ct = p.ContentType()
		}
		desc.Content = []MediaType{{ContentType: ct, Schema: p.SchemaRef()}}
	}

	for _, f := range d.fields {
		desc.Headers = append(desc.Headers, f.desc)
	}
	desc.Headers = append(desc.Headers, d.extra...)

	return desc
}

// One is the TypedResponse of a single declared response struct.
type One[T Definer] struct {
	Value T
}

// New wraps v, validating the declaration of T first.
func New[T Definer](v T) (One[T], error) {
	if err := Define[T](); err != nil {
		return One[T]{}, err
	}
	return One[T]{Value: v}, nil
}

// Of wraps v and panics when the declaration of T is invalid. Declarations
// are static, so the panic surfaces on the first call in tests or at start up.
func Of[T Definer](v T) One[T] {
	o, err := New(v)
	if err != nil {
		panic(err)
	}
	return o
}

func (o One[T]) mustDefinition() *definition {
	d := definitionOf[T]()
	if d.err != nil {
		panic(d.err)
	}
	return d
}

// Validate reports the declaration error of T, if any.
func (One[T]) Validate() error {
	return Define[T]()
}

// Status returns the declared status of T.
func (o One[T]) Status() int {
	return o.mustDefinition().status
}

func (o One[T]) Meta() []Descriptor {
	return []Descriptor{o.mustDefinition().descriptor()}
}

func (o One[T]) Register(reg *openapi.Registry) {
	d := o.mustDefinition()
	if d.payload >= 0 {
		reflect.Zero(d.payloadType).Interface().(payload.Payload).Register(reg)
	}
}

func (o One[T]) Render() *Wire {
	d := o.mustDefinition()
	v := reflect.ValueOf(o.Value)
	w := NewWire(d.status)

	if d.payload >= 0 {
		p := v.Field(d.payload).Interface().(payload.Payload)
		body, err := p.Encode()
		if err != nil {
			return internalError()
		}
		ct := d.contentType
		if ct == "" {
			ct = p.ContentType()
		}
		w.Header.Set("Content-Type", ct)
		w.Body = body
	}

	for _, f := range d.fields {
		if value, ok := headerValue(v.Field(f.index)); ok {
			w.Header.Set(f.desc.Name, value)
		}
	}

	return w
}

func (One[T]) HandlesParseErrors() bool {
	var zero T
	_, ok := any(zero).(ParseErrorRecoverer[T])
	return ok
}

// FromParseError builds the response from a request parsing failure. It
// panics when T does not implement ParseErrorRecoverer; check
// HandlesParseErrors first.
func (One[T]) FromParseError(err error) TypedResponse {
	var zero T
	r, ok := any(zero).(ParseErrorRecoverer[T])
	if !ok {
		panic(fmt.Sprintf("%s does not recover from parse errors", reflect.TypeFor[T]()))
	}
	return One[T]{Value: r.RecoverParseError(err)}
}
