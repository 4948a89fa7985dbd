// Package response composes independently declared typed responses into
// one response type per endpoint and produces the OpenAPI metadata of the
// result.
//
// # Single Responses
//
// A single response is a struct bound to one status code. It carries at most
// one payload field and any number of header fields:
//
//	type ItemCreated struct {
//	    Body     payload.JSON[Item]
//	    Location string `header:"Location"`
//	}
//
//	func (ItemCreated) ResponseDefinition() response.Definition {
//	    return response.Definition{Status: http.StatusCreated, Description: "Item created"}
//	}
//
// Wrap it with One to obtain a TypedResponse:
//
//	resp := response.Of(ItemCreated{Body: payload.NewJSON(item), Location: "/items/1"})
//
// Declarations are validated once per type by Define; Of panics on an
// invalid declaration, New returns the error.
//
// # Unions
//
// A union holds exactly one of several declared responses, each bound to a
// slot of a closed status catalog:
//
//	var itemResponses = response.MustCompile(
//	    response.Declare(http.StatusOK, response.One[ItemFound]{}),
//	    response.Declare(http.StatusCreated, response.One[ItemCreated]{}),
//	    response.Declare(http.StatusBadGateway, response.One[UpstreamFailed]{}),
//	)
//
//	u, err := itemResponses.New(http.StatusCreated, response.Of(created))
//
// The metadata of a union lists the declared responses in catalog order.
// Slots holding a response without descriptors, such as Empty, are skipped.
//
// # Merging
//
// Merge combines a default descriptor list with user declared descriptors;
// a user declared descriptor replaces the default one of the same status:
//
//	descs := response.Merge(defaults, declared)
//
// # Catalogs
//
// DefaultCatalog lists every status a union may hold. NewCatalog builds
// smaller closed catalogs; Catalog.Validate checks a list of statuses without
// compiling responses.
package response
