package response

import (
	"fmt"
	"reflect"
)

// Decl declares the response type of one status slot.
type Decl struct {
	Status   int
	Response TypedResponse
}

// Declare pairs a status with a prototype value of its response type. The
// prototype is only used for its type; a zero value is enough.
func Declare(status int, proto TypedResponse) Decl {
	return Decl{Status: status, Response: proto}
}

// Compile compiles decls against DefaultCatalog.
func Compile(decls ...Decl) (*Layout, error) {
	return DefaultCatalog.Compile(decls...)
}

// MustCompile is Compile that panics on error. It is meant for package level
// layout variables.
func MustCompile(decls ...Decl) *Layout {
	l, err := Compile(decls...)
	if err != nil {
		panic(err)
	}
	return l
}

// Compile validates decls and builds the layout of a union. Every status
// must be part of the catalog and declared once, every prototype must pass
// its own validation and its first descriptor, when it has one, must carry
// the declared status. Undeclared slots hold Empty.
func (c *Catalog) Compile(decls ...Decl) (*Layout, error) {
	statuses := make([]int, len(decls))
	for i, d := range decls {
		statuses[i] = d.Status
	}
	if err := c.Validate(statuses); err != nil {
		return nil, err
	}

	l := &Layout{
		catalog: c,
		slots:   make([]slot, len(c.statuses)),
	}
	for i, s := range c.statuses {
		l.slots[i] = slot{status: s, typ: reflect.TypeFor[Empty](), proto: Empty{}}
	}

	for _, d := range decls {
		if d.Response == nil {
			return nil, fmt.Errorf("status %d: %w", d.Status, ErrNilResponse)
		}
		if err := Validate(d.Response); err != nil {
			return nil, fmt.Errorf("status %d: %w", d.Status, err)
		}

		typ := reflect.TypeOf(d.Response)
		if descs := d.Response.Meta(); len(descs) > 0 && descs[0].Status != d.Status {
			return nil, &SlotMismatchError{Type: typ.String(), Expected: d.Status, Got: descs[0].Status}
		}

		i, _ := c.Index(d.Status)
		l.slots[i] = slot{status: d.Status, typ: typ, proto: d.Response, declared: true}
	}

	return l, nil
}
