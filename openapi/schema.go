package openapi

import (
	"maps"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Exampler can be implemented by types to provide an example value for the
// generated component schema.
//
//	func (u User) OpenAPIExample() any {
//	    return User{ID: "550e8400-e29b-41d4-a716-446655440000", Name: "Alice"}
//	}
type Exampler interface {
	OpenAPIExample() any
}

var timeType = reflect.TypeFor[time.Time]()

// Registry collects named component schemas. Registration is idempotent:
// registering a type again regenerates the same schema under the same name,
// and a later registration of a different type with the same name replaces
// the earlier one.
//
// A Registry is safe for concurrent use.
//
// See: https://spec.openapis.org/oas/v3.1.0#components-object (schemas)
type Registry struct {
	mu      sync.Mutex
	schemas map[string]*Schema
}

// NewRegistry creates an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Register registers the schema of v's type, including every named struct
// it references, and returns the reference to use in descriptors.
// A nil v registers nothing and returns the zero SchemaRef.
func (r *Registry) Register(v any) SchemaRef {
	if v == nil {
		return SchemaRef{}
	}
	return r.RegisterType(reflect.TypeOf(v))
}

// RegisterType is Register for a reflect.Type.
func (r *Registry) RegisterType(t reflect.Type) SchemaRef {
	if t == nil {
		return SchemaRef{}
	}

	g := &generator{store: make(map[string]*Schema), visited: make(map[reflect.Type]bool)}
	ref := g.ref(t)

	r.mu.Lock()
	maps.Copy(r.schemas, g.store)
	r.mu.Unlock()

	return ref
}

// Schemas returns a snapshot of the registered component schemas.
func (r *Registry) Schemas() map[string]*Schema {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.schemas)
}

// Lookup returns the component schema registered under name.
func (r *Registry) Lookup(name string) (*Schema, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schemas[name]
	return s, ok
}

// Len returns the number of registered component schemas.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.schemas)
}

// Components returns the registered schemas as a Components Object, or nil
// when nothing was registered.
func (r *Registry) Components() *Components {
	schemas := r.Schemas()
	if len(schemas) == 0 {
		return nil
	}
	return &Components{Schemas: schemas}
}

// RefOf returns the schema reference of v's type without registering
// anything. It is what response metadata uses, so that metadata stays a pure
// function of the type.
func RefOf(v any) SchemaRef {
	if v == nil {
		return SchemaRef{}
	}
	return RefOfType(reflect.TypeOf(v))
}

// RefOfType is RefOf for a reflect.Type.
func RefOfType(t reflect.Type) SchemaRef {
	if t == nil {
		return SchemaRef{}
	}
	g := &generator{}
	return g.ref(t)
}

// SchemaName returns the component name used for t, or "" when t is not a
// named struct type and is therefore always inlined. Generic instantiations
// are flattened: "Page[User]" becomes "PageUser" and "Page[[]User]" becomes
// "PageUserList".
func SchemaName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t == timeType || t.PkgPath() == "" {
		return ""
	}
	return sanitizeSchemaName(t.Name())
}

// generator converts Go types to schemas. With a nil store it only computes
// references and never descends into named structs.
type generator struct {
	store   map[string]*Schema
	visited map[reflect.Type]bool
}

func (g *generator) ref(t reflect.Type) SchemaRef {
	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if name := SchemaName(base); name != "" && base == t {
		g.named(base, name)
		return Ref(name)
	}
	return Inline(g.generateType(t))
}

// named generates and stores the component schema of a named struct once.
func (g *generator) named(t reflect.Type, name string) {
	if g.store == nil || g.visited[t] {
		return
	}
	g.visited[t] = true

	schema := g.generateStructSchema(t)
	if ex, ok := reflect.New(t).Interface().(Exampler); ok {
		schema.Example = ex.OpenAPIExample()
	}
	g.store[name] = schema
}

// generateType produces a Schema for t, using $ref for named struct types and
// inline schemas for primitives, slices, maps and anonymous structs.
func (g *generator) generateType(t reflect.Type) *Schema {
	nullable := false
	if t.Kind() == reflect.Pointer {
		nullable = true
		t = t.Elem()
	}

	if name := SchemaName(t); name != "" {
		g.named(t, name)
		ref := &Schema{Ref: componentPrefix + name}
		if nullable {
			return &Schema{AnyOf: []*Schema{ref, {Type: TypeString("null")}}}
		}
		return ref
	}

	schema := g.generateInlineType(t)
	if nullable && schema != nil && schema.Ref == "" && !schema.Type.IsZero() {
		schema.Type = TypeArray(append(schema.Type.Values(), "null")...)
	}
	return schema
}

// generateInlineType maps Go primitive and composite types to JSON Schema types.
//
// See: https://spec.openapis.org/oas/v3.1.0#data-types
func (g *generator) generateInlineType(t reflect.Type) *Schema {
	if t == timeType {
		return &Schema{Type: TypeString("string"), Format: "date-time"}
	}

	switch t.Kind() {
	case reflect.Bool:
		return &Schema{Type: TypeString("boolean")}
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return &Schema{Type: TypeString("integer"), Format: "int32"}
	case reflect.Int, reflect.Int64:
		return &Schema{Type: TypeString("integer"), Format: "int64"}
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return &Schema{Type: TypeString("integer"), Format: "uint32"}
	case reflect.Uint, reflect.Uint64:
		return &Schema{Type: TypeString("integer"), Format: "uint64"}
	case reflect.Float32:
		return &Schema{Type: TypeString("number"), Format: "float"}
	case reflect.Float64:
		return &Schema{Type: TypeString("number"), Format: "double"}
	case reflect.String:
		return &Schema{Type: TypeString("string")}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return &Schema{Type: TypeString("string"), Format: "binary"}
		}
		return &Schema{Type: TypeString("array"), Items: g.generateType(t.Elem())}
	case reflect.Array:
		return &Schema{Type: TypeString("array"), Items: g.generateType(t.Elem())}
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return &Schema{Type: TypeString("object")}
		}
		return &Schema{Type: TypeString("object"), AdditionalProperties: g.generateType(t.Elem())}
	case reflect.Struct:
		return g.generateStructSchema(t)
	case reflect.Interface:
		return &Schema{}
	}

	return nil
}

func (g *generator) generateStructSchema(t reflect.Type) *Schema {
	schema := &Schema{
		Type:       TypeString("object"),
		Properties: make(map[string]*Schema),
	}

	g.collectFields(t, schema, false)

	if len(schema.Properties) == 0 {
		schema.Properties = nil
	}
	return schema
}

// collectFields walks exported fields, inlining untagged embedded structs the
// way encoding/json does. Fields of pointer-embedded structs are optional.
func (g *generator) collectFields(t reflect.Type, schema *Schema, allOptional bool) {
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name, omitempty := parseJSONTag(jsonTag)

		if field.Anonymous && name == "" {
			ft := field.Type
			isPtr := ft.Kind() == reflect.Pointer
			if isPtr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				g.collectFields(ft, schema, allOptional || isPtr)
				continue
			}
		}

		if name == "" {
			name = field.Name
		}

		fieldSchema := g.generateType(field.Type)
		if fieldSchema == nil {
			continue
		}
		applyOpenAPITag(fieldSchema, field.Tag.Get("openapi"))

		schema.Properties[name] = fieldSchema
		if !omitempty && !allOptional {
			schema.Required = append(schema.Required, name)
		}
	}
}

func parseJSONTag(tag string) (string, bool) {
	if tag == "" {
		return "", false
	}
	name, rest, _ := strings.Cut(tag, ",")
	return name, strings.Contains(rest, "omitempty") || strings.Contains(rest, "omitzero")
}

// applyOpenAPITag applies the `openapi` struct tag to a field schema, e.g.
// `openapi:"description=Item title,minLength=1,maxLength=200"`.
func applyOpenAPITag(schema *Schema, tag string) {
	if tag == "" || schema.Ref != "" {
		return
	}

	for part := range strings.SplitSeq(tag, ",") {
		key, value, _ := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "description":
			schema.Description = value
		case "title":
			schema.Title = value
		case "format":
			schema.Format = value
		case "pattern":
			schema.Pattern = value
		case "example":
			schema.Example = parseExampleValue(schema, value)
		case "minimum":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				schema.Minimum = &v
			}
		case "maximum":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				schema.Maximum = &v
			}
		case "minLength":
			if v, err := strconv.Atoi(value); err == nil {
				schema.MinLength = &v
			}
		case "maxLength":
			if v, err := strconv.Atoi(value); err == nil {
				schema.MaxLength = &v
			}
		case "enum":
			for v := range strings.SplitSeq(value, "|") {
				schema.Enum = append(schema.Enum, v)
			}
		case "deprecated":
			schema.Deprecated = true
		case "readOnly":
			schema.ReadOnly = true
		case "writeOnly":
			schema.WriteOnly = true
		}
	}
}

// parseExampleValue converts a tag value to the Go type matching the schema
// type so that examples serialize as numbers and booleans where appropriate.
func parseExampleValue(schema *Schema, value string) any {
	types := schema.Type.Values()
	if len(types) == 0 {
		return value
	}

	switch types[0] {
	case "integer":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	case "number":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	case "boolean":
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return value
}

// sanitizeSchemaName flattens generic type names for use as component keys.
func sanitizeSchemaName(name string) string {
	idx := strings.IndexByte(name, '[')
	if idx < 0 {
		return name
	}

	base := name[:idx]
	inner := name[idx+1 : len(name)-1]

	isList := strings.HasPrefix(inner, "[]")
	inner = strings.TrimPrefix(inner, "[]")

	if dot := strings.LastIndexByte(inner, '.'); dot >= 0 {
		inner = inner[dot+1:]
	}

	result := base + inner
	if isList {
		result += "List"
	}
	return result
}
