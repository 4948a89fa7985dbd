// Package service wires typed responses to net/http.
//
// Endpoints are registered with a prototype of their response type and a
// handler returning a value of that type:
//
//	svc := service.New(openapi.Info{Title: "Items", Version: "1.0.0"},
//	    service.WithLogger(logger),
//	)
//
//	err := service.Handle(svc, http.MethodGet, "/items/{id}",
//	    errresp.Ok(response.One[ItemFound]{}),
//	    func(r *http.Request) (errresp.Either[response.One[ItemFound]], error) {
//	        item, err := store.Get(r.PathValue("id"))
//	        if err != nil {
//	            return errresp.Either[response.One[ItemFound]]{}, err
//	        }
//	        return errresp.Ok(response.Of(ItemFound{Body: payload.NewJSON(item)})), nil
//	    },
//	    service.Summary("Get an item"),
//	)
//
// Handle validates the prototype immediately. Errors returned by a handler
// are turned into responses by the prototype when it recovers from parse
// errors, and by errresp.Classify otherwise.
//
// Endpoints can also be declared on a Group, which carries a path prefix,
// shared tags and default responses. Service.Mount combines groups into the
// service's route set and document.
//
// The OpenAPI document is built from the prototypes' Meta and Register and
// served at /openapi.json and /openapi.yaml unless WithoutDocs is given.
package service
