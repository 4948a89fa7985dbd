package errresp

import (
	"net/http"
	"reflect"
	"slices"
	"strconv"

	"github.com/vitalvas/uniresp/failure"
	"github.com/vitalvas/uniresp/openapi"
	"github.com/vitalvas/uniresp/payload"
	"github.com/vitalvas/uniresp/response"
)

// Statuses lists the status of every error variant, ascending.
var Statuses = []int{
	http.StatusBadRequest,
	http.StatusUnauthorized,
	http.StatusForbidden,
	http.StatusNotFound,
	http.StatusMethodNotAllowed,
	http.StatusPreconditionFailed,
	http.StatusRequestEntityTooLarge,
	http.StatusUnsupportedMediaType,
	http.StatusRequestedRangeNotSatisfiable,
	http.StatusInternalServerError,
}

// Catalog is the closed catalog of a union holding either a 200 response or
// one of the error variants.
var Catalog = response.MustCatalog(append([]int{http.StatusOK}, Statuses...)...)

// contentRangeHeader is documented and rendered on 416 responses only.
const contentRangeHeader = "Content-Range"

// Response is one error variant: a status from Statuses and a plain-text
// message. The zero value renders as 500 Internal Server Error.
type Response struct {
	status       int
	message      string
	contentRange *uint64
}

func newResponse(status int, msg string) Response {
	return Response{status: status, message: msg}
}

// BadRequest returns a 400 Bad Request response.
func BadRequest(msg string) Response { return newResponse(http.StatusBadRequest, msg) }

// Unauthorized returns a 401 Unauthorized response.
func Unauthorized(msg string) Response { return newResponse(http.StatusUnauthorized, msg) }

// Forbidden returns a 403 Forbidden response.
func Forbidden(msg string) Response { return newResponse(http.StatusForbidden, msg) }

// NotFound returns a 404 Not Found response.
func NotFound(msg string) Response { return newResponse(http.StatusNotFound, msg) }

// MethodNotAllowed returns a 405 Method Not Allowed response.
func MethodNotAllowed(msg string) Response { return newResponse(http.StatusMethodNotAllowed, msg) }

// PreconditionFailed returns a 412 Precondition Failed response.
func PreconditionFailed(msg string) Response {
	return newResponse(http.StatusPreconditionFailed, msg)
}

// PayloadTooLarge returns a 413 Payload Too Large response.
func PayloadTooLarge(msg string) Response {
	return newResponse(http.StatusRequestEntityTooLarge, msg)
}

// UnsupportedMediaType returns a 415 Unsupported Media Type response.
func UnsupportedMediaType(msg string) Response {
	return newResponse(http.StatusUnsupportedMediaType, msg)
}

// RangeNotSatisfiable returns a 416 Range Not Satisfiable response. A non-nil
// contentRange is sent as the Content-Range header.
func RangeNotSatisfiable(msg string, contentRange *uint64) Response {
	r := newResponse(http.StatusRequestedRangeNotSatisfiable, msg)
	r.contentRange = contentRange
	return r
}

// InternalServerError returns a 500 Internal Server Error response.
func InternalServerError(msg string) Response {
	return newResponse(http.StatusInternalServerError, msg)
}

// Status returns the status the response is sent with.
func (r Response) Status() int {
	if r.status == 0 {
		return http.StatusInternalServerError
	}
	return r.status
}

// Message returns the plain-text body.
func (r Response) Message() string { return r.message }

// ContentRange returns the Content-Range value of a 416 response.
func (r Response) ContentRange() (uint64, bool) {
	if r.contentRange == nil {
		return 0, false
	}
	return *r.contentRange, true
}

func (r Response) Render() *response.Wire {
	body := payload.PlainText(r.message)
	encoded, _ := body.Encode()

	w := response.NewWire(r.Status())
	w.Header.Set("Content-Type", body.ContentType())
	w.Body = encoded

	if r.status == http.StatusRequestedRangeNotSatisfiable && r.contentRange != nil {
		w.Header.Set(contentRangeHeader, strconv.FormatUint(*r.contentRange, 10))
	}

	return w
}

// Meta returns one descriptor per variant, ascending by status.
func (Response) Meta() []response.Descriptor {
	var text payload.PlainText

	out := make([]response.Descriptor, 0, len(Statuses))
	for _, status := range Statuses {
		d := response.Descriptor{
			Status:      status,
			Description: http.StatusText(status),
			Content: []response.MediaType{
				{ContentType: text.ContentType(), Schema: text.SchemaRef()},
			},
		}
		if status == http.StatusRequestedRangeNotSatisfiable {
			d.Headers = []response.Header{{
				Name:   "CONTENT-RANGE",
				Schema: openapi.RefOfType(reflect.TypeFor[uint64]()),
			}}
		}
		out = append(out, d)
	}

	return out
}

// Register is a no-op: plain-text bodies have no component schema.
func (Response) Register(*openapi.Registry) {}

// HandlesParseErrors always reports true: any failure can be classified.
func (Response) HandlesParseErrors() bool { return true }

func (Response) FromParseError(err error) response.TypedResponse {
	return Classify(err)
}

// Classify maps a failure to an error variant. A status exposed by err is
// looked up first; a status without a matching variant yields 500. Without
// a status, the failure kind decides. The message is the text of err.
func Classify(err error) Response {
	if err == nil {
		return InternalServerError("")
	}

	if status, ok := failure.StatusOf(err); ok {
		return fromStatus(status, err)
	}

	return fromStatus(failure.KindOf(err).Status(), err)
}

func fromStatus(status int, err error) Response {
	if !slices.Contains(Statuses, status) {
		return InternalServerError(err.Error())
	}

	r := newResponse(status, err.Error())
	if status == http.StatusRequestedRangeNotSatisfiable {
		r.contentRange = failure.ContentRangeOf(err)
	}
	return r
}

// Write classifies err and sends the resulting response.
func Write(w http.ResponseWriter, err error) error {
	return Classify(err).Render().Write(w)
}
