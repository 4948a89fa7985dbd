package service

import (
	"net/http"
	"strings"

	"github.com/vitalvas/uniresp/openapi"
	"github.com/vitalvas/uniresp/response"
)

// OperationOption sets documentation fields of an endpoint.
type OperationOption func(*openapi.Operation)

// Summary sets the operation summary.
func Summary(s string) OperationOption {
	return func(op *openapi.Operation) { op.Summary = s }
}

// Description sets the operation description.
func Description(d string) OperationOption {
	return func(op *openapi.Operation) { op.Description = d }
}

// OperationID sets the unique operation identifier.
func OperationID(id string) OperationOption {
	return func(op *openapi.Operation) { op.OperationID = id }
}

// Tags appends operation tags.
func Tags(tags ...string) OperationOption {
	return func(op *openapi.Operation) { op.Tags = append(op.Tags, tags...) }
}

// Deprecated marks the operation as deprecated.
func Deprecated() OperationOption {
	return func(op *openapi.Operation) { op.Deprecated = true }
}

type operation struct {
	method string
	path   string
	proto  response.TypedResponse
	info   openapi.Operation

	// defaults are documented under the operation's own responses, which
	// win for a shared status.
	defaults []response.TypedResponse

	handler func(*Service) http.Handler
}

func (op *operation) pattern() string {
	return op.method + " " + op.path
}

// meta returns the operation's descriptors merged over its defaults and
// registers the schemas of both.
func (op *operation) meta(reg *openapi.Registry) []response.Descriptor {
	var base []response.Descriptor
	for _, d := range op.defaults {
		d.Register(reg)
		base = response.Merge(base, d.Meta())
	}

	op.proto.Register(reg)
	if len(op.defaults) == 0 {
		return op.proto.Meta()
	}
	return response.Merge(base, op.proto.Meta())
}

// Document builds the API document from the registered endpoints, mounted
// groups included: every response prototype registers its schemas and
// contributes its descriptors.
func (s *Service) Document() *openapi.Document {
	s.mu.Lock()
	ops := make([]*operation, len(s.operations))
	copy(ops, s.operations)
	s.mu.Unlock()

	doc := &openapi.Document{
		OpenAPI: openapi.Version,
		Info:    s.info,
		Paths:   make(map[string]*openapi.PathItem),
	}

	reg := openapi.NewRegistry()

	for _, op := range ops {
		built := op.info
		built.Responses = response.ToOpenAPI(op.meta(reg))

		path := documentPath(op.path)
		item, ok := doc.Paths[path]
		if !ok {
			item = &openapi.PathItem{}
			doc.Paths[path] = item
		}
		item.SetOperation(op.method, &built)
	}

	doc.Components = reg.Components()

	return doc
}

// documentPath converts a ServeMux pattern path into an OpenAPI path
// template: "{rest...}" becomes "{rest}" and "{$}" is dropped.
func documentPath(path string) string {
	path = strings.ReplaceAll(path, "{$}", "")
	return strings.ReplaceAll(path, "...}", "}")
}
