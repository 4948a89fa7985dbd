// Package failure defines the request failure type consumed by the error
// taxonomy in package errresp.
//
// A failure is classified in two stages. When a numeric status is directly
// available (Error.Status, or a StatusCode() method anywhere in the chain)
// it wins. Otherwise the failure's Kind decides:
//
//	return failure.New(failure.NotFound, "item 42 does not exist")
//	return failure.Wrap(failure.ParseJSON, err)
//	return failure.WithStatus(http.StatusPreconditionFailed, "etag mismatch")
//
// Errors from the standard library are normalised by KindOf, so a handler
// can return the error of http.MaxBytesReader or json.Decoder unchanged and
// still get 413 or 400.
package failure
