package errresp

import (
	"github.com/vitalvas/uniresp/openapi"
	"github.com/vitalvas/uniresp/response"
)

// Either is a response that is either the declared response T or an error
// variant. Its metadata is the error taxonomy overridden by the metadata of
// T: a status documented by T replaces the error variant of that status.
//
// Meta and Register use the T value, so the prototype registered with an
// endpoint must be built with Ok. For responses whose metadata depends only
// on the type, such as response.One, Ok of the zero value is enough.
type Either[T response.TypedResponse] struct {
	ok    T
	err   Response
	isErr bool
}

// Ok returns an Either holding v.
func Ok[T response.TypedResponse](v T) Either[T] {
	return Either[T]{ok: v}
}

// Err returns an Either holding the error variant r.
func Err[T response.TypedResponse](r Response) Either[T] {
	return Either[T]{err: r, isErr: true}
}

// Fail returns an Either holding the classification of err.
func Fail[T response.TypedResponse](err error) Either[T] {
	return Err[T](Classify(err))
}

// IsErr reports whether e holds an error variant.
func (e Either[T]) IsErr() bool { return e.isErr }

// Value returns the declared response and whether e holds it.
func (e Either[T]) Value() (T, bool) {
	return e.ok, !e.isErr
}

// Failure returns the error variant and whether e holds one.
func (e Either[T]) Failure() (Response, bool) {
	return e.err, e.isErr
}

func (e Either[T]) Render() *response.Wire {
	if e.isErr {
		return e.err.Render()
	}
	return e.ok.Render()
}

func (e Either[T]) Meta() []response.Descriptor {
	return response.Merge(Response{}.Meta(), e.ok.Meta())
}

func (e Either[T]) Register(reg *openapi.Registry) {
	Response{}.Register(reg)
	e.ok.Register(reg)
}

// Validate validates the declared response.
func (e Either[T]) Validate() error {
	return response.Validate(e.ok)
}

// HandlesParseErrors always reports true: failures T cannot handle are
// classified.
func (Either[T]) HandlesParseErrors() bool { return true }

// FromParseError lets T build the response when it handles parse errors and
// classifies err otherwise.
func (e Either[T]) FromParseError(err error) response.TypedResponse {
	if response.HandlesParseErrors(e.ok) {
		r := any(e.ok).(response.ParseErrorHandler).FromParseError(err)
		if v, ok := r.(T); ok {
			return Ok(v)
		}
		return r
	}
	return Fail[T](err)
}
