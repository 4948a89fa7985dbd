// Package openapi models the parts of an OpenAPI v3.1.0 document that
// response metadata is published into, and generates JSON Schemas for
// payload types using reflection and struct tags.
//
// The package targets the OpenAPI Specification v3.1.0 and uses JSON Schema
// Draft 2020-12 for schema generation.
//
// See: https://spec.openapis.org/oas/v3.1.0
// See: https://json-schema.org/draft/2020-12/json-schema-core
//
// # Schema Registry
//
// A Registry collects the named component schemas referenced by responses.
// Register returns the reference to use in a media type or header:
//
//	reg := openapi.NewRegistry()
//	ref := reg.Register(User{})      // Ref("User"), schemas User and Address
//	doc.Components = reg.Components()
//
// RefOf computes the same reference without registering anything, so that
// response metadata stays a pure function of the type.
//
// # Struct Tags
//
// Use the "openapi" struct tag to enrich JSON Schema output:
//
//	type CreateUserInput struct {
//	    Name  string `json:"name" openapi:"description=User name,minLength=1,maxLength=100"`
//	    Email string `json:"email" openapi:"format=email"`
//	    Age   int    `json:"age,omitempty" openapi:"minimum=0,maximum=150"`
//	    Role  string `json:"role" openapi:"enum=admin|user|guest"`
//	}
//
// Supported tag keys: description, example, format, title, minimum, maximum,
// minLength, maxLength, pattern, enum (pipe-separated), deprecated,
// readOnly, writeOnly.
//
// # JSON Schema Generation
//
// Go types are converted to JSON Schema via reflection:
//
//   - bool -> {type: "boolean"}
//   - int/uint variants -> {type: "integer"}
//   - float32/float64 -> {type: "number"}
//   - string -> {type: "string"}
//   - []byte -> {type: "string", format: "binary"}
//   - time.Time -> {type: "string", format: "date-time"}
//   - *T -> nullable type using type arrays (e.g., ["string", "null"])
//   - []T -> {type: "array", items: schema(T)}
//   - map[string]V -> {type: "object", additionalProperties: schema(V)}
//   - struct -> {type: "object", properties: {...}, required: [...]}
//
// Named struct types are deduplicated into #/components/schemas/{TypeName}
// and referenced via $ref.
//
// # Type-Level Examples
//
// Implement the Exampler interface to provide a complete example value
// for a type's component schema:
//
//	func (User) OpenAPIExample() any {
//	    return User{ID: "550e8400-...", Name: "Alice"}
//	}
//
// # Generic Response Wrappers
//
// Each concrete instantiation of a generic type produces a distinct
// component schema with a sanitized name:
//
//	reg.Register(ResponseData[User]{})   // "ResponseDataUser"
//	reg.Register(ResponseData[[]User]{}) // "ResponseDataUserList"
//
// # Serving the Document
//
// Handle registers GET endpoints on a net/http ServeMux. The document is
// built once, on the first request:
//
//	openapi.Handle(mux, "/docs", build, &openapi.HandleConfig{
//	    JSONFilename: "/api/v1/openapi.json",
//	    YAMLFilename: "-",
//	})
//	// GET /api/v1/openapi.json
package openapi
