package payload

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/vitalvas/uniresp/failure"
)

var (
	errTrailingJSON = errors.New("unexpected trailing data after JSON value")
	errTrailingXML  = errors.New("unexpected trailing data after XML value")
)

// BindJSON decodes the request body as JSON into v.
// By default the decoder rejects unknown fields; pass true to allow them.
// Exactly one JSON value must be present in the body.
//
// Failures are returned as *failure.Error: a missing or foreign Content-Type
// is MissingContentType/ContentType (415), an oversized body is SizeLimit
// (413) and anything else is ParseJSON (400).
func BindJSON(r *http.Request, v any, allowUnknownFields ...bool) error {
	if err := checkContentType(r, "application/json"); err != nil {
		return err
	}

	dec := json.NewDecoder(r.Body)
	if len(allowUnknownFields) == 0 || !allowUnknownFields[0] {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(v); err != nil {
		return decodeFailure(failure.ParseJSON, err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return failure.Wrap(failure.ParseJSON, errTrailingJSON)
	}

	return nil
}

// BindXML decodes the request body as XML into v.
// Exactly one XML element must be present in the body.
func BindXML(r *http.Request, v any) error {
	if err := checkContentType(r, "application/xml", "text/xml"); err != nil {
		return err
	}

	dec := xml.NewDecoder(r.Body)

	if err := dec.Decode(v); err != nil {
		return decodeFailure(failure.ParseXML, err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return failure.Wrap(failure.ParseXML, errTrailingXML)
	}

	return nil
}

func checkContentType(r *http.Request, allowed ...string) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return failure.New(failure.MissingContentType, "missing Content-Type, expected "+strings.Join(allowed, " or "))
	}

	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return failure.Wrap(failure.ContentType, err)
	}

	for _, a := range allowed {
		if strings.EqualFold(mediaType, a) {
			return nil
		}
	}

	return failure.New(failure.ContentType, "unsupported Content-Type "+mediaType)
}

// decodeFailure keeps size-limit errors distinguishable from syntax errors.
func decodeFailure(kind failure.Kind, err error) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return failure.Wrap(failure.SizeLimit, err)
	}
	return failure.Wrap(kind, err)
}
