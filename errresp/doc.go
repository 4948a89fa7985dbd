// Package errresp provides the default error responses of an API and the
// union that combines them with an endpoint's own responses.
//
// # Error Variants
//
// Response is a plain-text error with one of the statuses in Statuses:
// 400, 401, 403, 404, 405, 412, 413, 415, 416 and 500. The 416 variant may
// carry a Content-Range header.
//
//	errresp.NotFound("no such item").Render().Write(w)
//
// # Classification
//
// Classify turns any error into a variant. An error exposing a status, a
// *failure.Error with Status set or any error with a StatusCode() int method,
// is matched by status; statuses without a variant become 500. Other errors
// are matched by their failure.Kind. Classification never fails.
//
//	errresp.Classify(failure.New(failure.NotFound, "no such item")) // 404
//	errresp.Classify(failure.WithStatus(http.StatusConflict, "taken")) // 500
//	errresp.Classify(&http.MaxBytesError{Limit: 1 << 20})            // 413
//
// # Either
//
// Either[T] holds the declared response T or a variant. Its metadata lists
// every variant plus the descriptors of T; when both document a status, the
// one from T is kept:
//
//	type GetItem = errresp.Either[response.One[ItemFound]]
//
//	func getItem(r *http.Request) (GetItem, error) {
//	    item, err := store.Get(r.PathValue("id"))
//	    if err != nil {
//	        return errresp.Fail[response.One[ItemFound]](err), nil
//	    }
//	    return errresp.Ok(response.Of(ItemFound{Body: payload.NewJSON(item)})), nil
//	}
package errresp
