package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gopkg.in/yaml.v3"
)

// Version is the OpenAPI version written into every built Document.
const Version = "3.1.0"

// Document represents the root of an OpenAPI v3.1.0 document. Only the
// objects needed to publish response descriptors are modelled.
//
// See: https://spec.openapis.org/oas/v3.1.0#openapi-object
type Document struct {
	OpenAPI    string               `json:"openapi" yaml:"openapi"`
	Info       Info                 `json:"info" yaml:"info"`
	Paths      map[string]*PathItem `json:"paths,omitempty" yaml:"paths,omitempty"`
	Components *Components          `json:"components,omitempty" yaml:"components,omitempty"`
}

// Info provides metadata about the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#info-object
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// PathItem describes the operations available on a single path.
//
// See: https://spec.openapis.org/oas/v3.1.0#path-item-object
type PathItem struct {
	Get     *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put     *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post    *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
	Trace   *Operation `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// SetOperation assigns op to the field matching the HTTP method. It reports
// false for methods a Path Item Object cannot hold.
func (p *PathItem) SetOperation(method string, op *Operation) bool {
	switch method {
	case http.MethodGet:
		p.Get = op
	case http.MethodPut:
		p.Put = op
	case http.MethodPost:
		p.Post = op
	case http.MethodDelete:
		p.Delete = op
	case http.MethodOptions:
		p.Options = op
	case http.MethodHead:
		p.Head = op
	case http.MethodPatch:
		p.Patch = op
	case http.MethodTrace:
		p.Trace = op
	default:
		return false
	}
	return true
}

// Operation describes a single API operation on a path.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
type Operation struct {
	Tags        []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string    `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string    `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Responses   Responses `json:"responses,omitempty" yaml:"responses,omitempty"`
	Deprecated  bool      `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Responses maps a status code key ("200", "404") to its Response Object.
//
// See: https://spec.openapis.org/oas/v3.1.0#responses-object
type Responses map[string]*Response

// Response describes a single response from an API operation.
// The description field is REQUIRED per the specification.
//
// See: https://spec.openapis.org/oas/v3.1.0#response-object
type Response struct {
	Description string                `json:"description" yaml:"description"`
	Headers     map[string]*Header    `json:"headers,omitempty" yaml:"headers,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType describes the schema of one content type.
//
// See: https://spec.openapis.org/oas/v3.1.0#media-type-object
type MediaType struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Header describes a single response header.
//
// See: https://spec.openapis.org/oas/v3.1.0#header-object
type Header struct {
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Deprecated  bool    `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Components holds the named schemas collected by a Registry.
//
// See: https://spec.openapis.org/oas/v3.1.0#components-object
type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// SchemaType represents a JSON Schema type that can be a single string
// or an array of strings.
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.1.1
type SchemaType struct {
	value []string
}

// TypeString creates a SchemaType with a single type.
func TypeString(t string) SchemaType {
	return SchemaType{value: []string{t}}
}

// TypeArray creates a SchemaType with multiple types (e.g., ["string", "null"]).
func TypeArray(types ...string) SchemaType {
	return SchemaType{value: types}
}

// Values returns the underlying type values.
func (st SchemaType) Values() []string {
	return st.value
}

// IsZero implements the yaml.v3 IsZeroer interface so that omitempty
// drops an unset type field.
func (st SchemaType) IsZero() bool {
	return len(st.value) == 0
}

func (st SchemaType) MarshalJSON() ([]byte, error) {
	if len(st.value) == 1 {
		return json.Marshal(st.value[0])
	}
	return json.Marshal(st.value)
}

func (st *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		st.value = []string{single}
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	st.value = arr
	return nil
}

func (st SchemaType) MarshalYAML() (any, error) {
	switch len(st.value) {
	case 0:
		return nil, nil
	case 1:
		return st.value[0], nil
	default:
		return st.value, nil
	}
}

func (st *SchemaType) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		st.value = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}
		st.value = arr
		return nil
	default:
		return fmt.Errorf("unsupported YAML node kind %d for SchemaType", node.Kind)
	}
}

// Schema is the subset of the JSON Schema Draft 2020-12 object produced by
// the Registry.
//
// See: https://spec.openapis.org/oas/v3.1.0#schema-object
type Schema struct {
	Ref         string     `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        SchemaType `json:"type,omitzero" yaml:"type,omitempty"`
	Format      string     `json:"format,omitempty" yaml:"format,omitempty"`
	Title       string     `json:"title,omitempty" yaml:"title,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Example     any        `json:"example,omitempty" yaml:"example,omitempty"`
	Deprecated  bool       `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	ReadOnly    bool       `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	WriteOnly   bool       `json:"writeOnly,omitempty" yaml:"writeOnly,omitempty"`
	Minimum     *float64   `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum     *float64   `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	MinLength   *int       `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int       `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern     string     `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Enum        []any      `json:"enum,omitempty" yaml:"enum,omitempty"`

	Items                *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AnyOf                []*Schema          `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
}

// componentPrefix is the $ref prefix of schemas stored in Components.
const componentPrefix = "#/components/schemas/"

// SchemaRef points at a schema either inline or by component name. The zero
// value is an empty inline reference and marshals to no schema at all.
type SchemaRef struct {
	name   string
	inline *Schema
}

// Ref returns a reference to the named component schema.
func Ref(name string) SchemaRef {
	return SchemaRef{name: name}
}

// Inline wraps s as an inline schema reference.
func Inline(s *Schema) SchemaRef {
	return SchemaRef{inline: s}
}

// IsReference reports whether r names a component schema.
func (r SchemaRef) IsReference() bool {
	return r.name != ""
}

// Name returns the component name for references and "" for inline schemas.
func (r SchemaRef) Name() string {
	return r.name
}

// IsZero reports whether r carries neither a name nor an inline schema.
func (r SchemaRef) IsZero() bool {
	return r.name == "" && r.inline == nil
}

// Schema materializes r as a Schema Object: a $ref wrapper for named schemas,
// the inline schema otherwise.
func (r SchemaRef) Schema() *Schema {
	if r.name != "" {
		return &Schema{Ref: componentPrefix + r.name}
	}
	return r.inline
}

// String is used in configuration error messages.
func (r SchemaRef) String() string {
	if r.name != "" {
		return componentPrefix + r.name
	}
	if r.inline == nil {
		return "<none>"
	}
	return fmt.Sprintf("inline(%v)", r.inline.Type.Values())
}
