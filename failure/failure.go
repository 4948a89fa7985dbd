package failure

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"net/http"
)

// Kind is the closed set of request failures the error taxonomy knows how to
// classify. Every kind maps to exactly one HTTP status.
type Kind uint8

const (
	// Unknown is the zero Kind. It maps to 500 Internal Server Error.
	Unknown Kind = iota
	ParsePath
	ParseQuery
	ParseHeader
	ParseCookie
	ParseForm
	ParseJSON
	ParseXML
	ParseMultipart
	ParseParam
	ParsePayload
	ReadBody
	Upgrade
	Authorization
	CORS
	NotFound
	StaticFile
	MethodNotAllowed
	Precondition
	SizeLimit
	MissingContentType
	ContentType
	Range
	Internal

	kindCount
)

var kindInfo = [kindCount]struct {
	name   string
	status int
}{
	Unknown:            {"unknown", http.StatusInternalServerError},
	ParsePath:          {"parse path", http.StatusBadRequest},
	ParseQuery:         {"parse query", http.StatusBadRequest},
	ParseHeader:        {"parse header", http.StatusBadRequest},
	ParseCookie:        {"parse cookie", http.StatusBadRequest},
	ParseForm:          {"parse form", http.StatusBadRequest},
	ParseJSON:          {"parse json", http.StatusBadRequest},
	ParseXML:           {"parse xml", http.StatusBadRequest},
	ParseMultipart:     {"parse multipart", http.StatusBadRequest},
	ParseParam:         {"parse parameter", http.StatusBadRequest},
	ParsePayload:       {"parse payload", http.StatusBadRequest},
	ReadBody:           {"read body", http.StatusBadRequest},
	Upgrade:            {"upgrade", http.StatusBadRequest},
	Authorization:      {"authorization", http.StatusUnauthorized},
	CORS:               {"cors", http.StatusForbidden},
	NotFound:           {"not found", http.StatusNotFound},
	StaticFile:         {"static file", http.StatusNotFound},
	MethodNotAllowed:   {"method not allowed", http.StatusMethodNotAllowed},
	Precondition:       {"precondition failed", http.StatusPreconditionFailed},
	SizeLimit:          {"size limit", http.StatusRequestEntityTooLarge},
	MissingContentType: {"missing content type", http.StatusUnsupportedMediaType},
	ContentType:        {"content type", http.StatusUnsupportedMediaType},
	Range:              {"range not satisfiable", http.StatusRequestedRangeNotSatisfiable},
	Internal:           {"internal", http.StatusInternalServerError},
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := range kindCount {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindInfo[k].name
}

// Status returns the HTTP status a failure of this kind is answered with.
// Out-of-range kinds map to 500.
func (k Kind) Status() int {
	if k >= kindCount {
		return http.StatusInternalServerError
	}
	return kindInfo[k].status
}

// Error is a request failure. A non-zero Status takes precedence over Kind
// when the failure is classified.
type Error struct {
	Kind    Kind
	Status  int
	Message string

	// ContentRange is the complete length reported with a 416 failure.
	ContentRange *uint64

	Cause error
}

// New returns a failure of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap returns a failure of the given kind caused by err. The message is the
// text of err.
func Wrap(kind Kind, err error) *Error {
	fe := &Error{Kind: kind, Cause: err}
	if err != nil {
		fe.Message = err.Error()
	}
	return fe
}

// WithStatus returns a failure that carries an explicit HTTP status.
func WithStatus(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

// RangeNotSatisfiable returns a Range failure reporting the complete length
// of the selected representation.
func RangeNotSatisfiable(msg string, completeLength uint64) *Error {
	return &Error{Kind: Range, Message: msg, ContentRange: &completeLength}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	if e.Status != 0 {
		return http.StatusText(e.Status)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// StatusOf returns the numeric status directly exposed by err: the Status of
// a *Error in the chain, or the value of a StatusCode() method. It reports
// false when no status is available.
func StatusOf(err error) (int, bool) {
	if err == nil {
		return 0, false
	}

	var fe *Error
	if errors.As(err, &fe) && fe.Status != 0 {
		return fe.Status, true
	}

	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		if status := sc.StatusCode(); status != 0 {
			return status, true
		}
	}

	return 0, false
}

// KindOf returns the kind of err. Errors produced by net/http and the
// standard decoders are recognised; anything else is Unknown.
func KindOf(err error) Kind {
	if err == nil {
		return Unknown
	}

	var fe *Error
	if errors.As(err, &fe) && fe.Kind != Unknown {
		return fe.Kind
	}

	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return SizeLimit
	}

	var (
		jsonSyntax *json.SyntaxError
		jsonType   *json.UnmarshalTypeError
	)
	if errors.As(err, &jsonSyntax) || errors.As(err, &jsonType) {
		return ParseJSON
	}

	var xmlSyntax *xml.SyntaxError
	if errors.As(err, &xmlSyntax) {
		return ParseXML
	}

	if errors.Is(err, http.ErrMissingFile) {
		return ParseMultipart
	}

	return Unknown
}

// ContentRangeOf returns the complete length carried by a Range failure.
func ContentRangeOf(err error) *uint64 {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.ContentRange
	}
	return nil
}
