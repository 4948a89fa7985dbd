package response

import (
	"errors"
	"fmt"
)

// Declaration errors. They describe defects in how responses are declared
// and are reported before any request is served.
var (
	// ErrIncorrectDefinition is returned for a response type that is not a
	// struct or that declares more than one payload field.
	ErrIncorrectDefinition = errors.New("incorrect response definition")

	// ErrInvalidPayload is returned when a non-header field does not
	// implement payload.Payload.
	ErrInvalidPayload = errors.New("response payload field does not implement payload.Payload")

	// ErrInvalidHeader is returned for a malformed, duplicated or
	// unsupported header declaration.
	ErrInvalidHeader = errors.New("invalid response header")

	// ErrInvalidStatus is returned for a status code outside 100-999.
	ErrInvalidStatus = errors.New("invalid status code")

	// ErrNilResponse is returned when a declaration carries no response.
	ErrNilResponse = errors.New("response is nil")

	// ErrSlotNotDeclared is returned when a union value is built for a
	// status that was not declared.
	ErrSlotNotDeclared = errors.New("status slot is not declared")

	// ErrSlotType is returned when a union value is built from a value whose
	// type differs from the declared slot type.
	ErrSlotType = errors.New("value type does not match the slot type")
)

// UnsupportedStatusError lists the declared statuses missing from a catalog
// together with the statuses the catalog supports.
type UnsupportedStatusError struct {
	Unsupported []int
	Supported   []int
}

func (e *UnsupportedStatusError) Error() string {
	return fmt.Sprintf("unsupported status code: %v; supported status code: %v", e.Unsupported, e.Supported)
}

// DuplicateStatusError reports a status declared twice in one declaration.
type DuplicateStatusError struct {
	Status int
}

func (e *DuplicateStatusError) Error() string {
	return fmt.Sprintf("status code %d is declared more than once", e.Status)
}

// SlotMismatchError reports a response type whose first descriptor does not
// carry the status of the slot it was placed in. Got is zero when the
// descriptor has no status.
type SlotMismatchError struct {
	Type     string
	Expected int
	Got      int
}

func (e *SlotMismatchError) Error() string {
	if e.Got == 0 {
		return fmt.Sprintf("status code of the first response in %s responses is none, expected %d", e.Type, e.Expected)
	}
	return fmt.Sprintf("status code of the first response in %s responses is %d, expected %d", e.Type, e.Got, e.Expected)
}
