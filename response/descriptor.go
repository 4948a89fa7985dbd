package response

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/vitalvas/uniresp/openapi"
)

// Descriptor is the static metadata of one response: what status it is
// sent with, how it is documented and which headers and content it carries.
type Descriptor struct {
	// Status is the HTTP status code. Zero means the descriptor has no
	// status and must never be published.
	Status      int
	Description string
	Content     []MediaType
	Headers     []Header
}

// MediaType is one entry of a descriptor's content.
type MediaType struct {
	ContentType string
	Schema      openapi.SchemaRef
}

// Header documents one response header. Name is upper-case.
type Header struct {
	Name        string
	Description string
	Required    bool
	Deprecated  bool
	Schema      openapi.SchemaRef
}

// Clone returns a copy of d that shares no slices with it.
func (d Descriptor) Clone() Descriptor {
	d.Content = slices.Clone(d.Content)
	d.Headers = slices.Clone(d.Headers)
	return d
}

// OpenAPI converts d into a Response Object.
func (d Descriptor) OpenAPI() *openapi.Response {
	resp := &openapi.Response{Description: d.Description}

	if len(d.Headers) > 0 {
		resp.Headers = make(map[string]*openapi.Header, len(d.Headers))
		for _, h := range d.Headers {
			resp.Headers[h.Name] = &openapi.Header{
				Description: h.Description,
				Required:    h.Required,
				Deprecated:  h.Deprecated,
				Schema:      h.Schema.Schema(),
			}
		}
	}

	if len(d.Content) > 0 {
		resp.Content = make(map[string]*openapi.MediaType, len(d.Content))
		for _, mt := range d.Content {
			resp.Content[mt.ContentType] = &openapi.MediaType{Schema: mt.Schema.Schema()}
		}
	}

	return resp
}

// ToOpenAPI converts a descriptor list into a Responses Object keyed by
// status code. Descriptors without a status are skipped.
func ToOpenAPI(descs []Descriptor) openapi.Responses {
	out := make(openapi.Responses, len(descs))
	for _, d := range descs {
		if d.Status == 0 {
			continue
		}
		out[strconv.Itoa(d.Status)] = d.OpenAPI()
	}
	return out
}

// Statuses returns the status of every descriptor, in order.
func Statuses(descs []Descriptor) []int {
	out := make([]int, len(descs))
	for i, d := range descs {
		out[i] = d.Status
	}
	return out
}

// SortByStatus sorts descs ascending by status. Descriptors sharing a status
// keep their relative order.
func SortByStatus(descs []Descriptor) {
	slices.SortStableFunc(descs, compareStatus)
}

func compareStatus(a, b Descriptor) int {
	return cmp.Compare(a.Status, b.Status)
}
