package response

import (
	"fmt"
	"reflect"

	"github.com/vitalvas/uniresp/openapi"
)

// slot is one position of a layout. Undeclared slots hold Empty.
type slot struct {
	status   int
	typ      reflect.Type
	proto    TypedResponse
	declared bool
}

// Layout is a compiled union declaration: one slot per catalog status, in
// catalog order. It is immutable and safe for concurrent use.
type Layout struct {
	catalog *Catalog
	slots   []slot
}

// Catalog returns the catalog the layout was compiled against.
func (l *Layout) Catalog() *Catalog {
	return l.catalog
}

// Declared returns the declared statuses in catalog order.
func (l *Layout) Declared() []int {
	var out []int
	for _, s := range l.slots {
		if s.declared {
			out = append(out, s.status)
		}
	}
	return out
}

// SlotType returns the response type held by the slot of status.
func (l *Layout) SlotType(status int) (reflect.Type, bool) {
	i, ok := l.catalog.Index(status)
	if !ok {
		return nil, false
	}
	return l.slots[i].typ, true
}

// Meta returns the descriptors of the union in catalog order. Slots whose
// type has no descriptors are skipped; for the others only the first
// descriptor is kept and its status must be the slot status.
func (l *Layout) Meta() []Descriptor {
	var out []Descriptor

	for _, s := range l.slots {
		descs := s.proto.Meta()
		if len(descs) == 0 {
			continue
		}
		if descs[0].Status != s.status {
			panic(&SlotMismatchError{Type: s.typ.String(), Expected: s.status, Got: descs[0].Status})
		}
		out = append(out, descs[0].Clone())
	}

	return out
}

// Register registers the schemas of every slot type.
func (l *Layout) Register(reg *openapi.Registry) {
	for _, s := range l.slots {
		s.proto.Register(reg)
	}
}

// New builds a union value holding v in the slot of status. The slot must be
// declared and v must have the declared type.
func (l *Layout) New(status int, v TypedResponse) (Union, error) {
	i, ok := l.catalog.Index(status)
	if !ok || !l.slots[i].declared {
		return Union{}, fmt.Errorf("%w: %d", ErrSlotNotDeclared, status)
	}

	s := l.slots[i]
	if got := reflect.TypeOf(v); got != s.typ {
		return Union{}, fmt.Errorf("%w: slot %d holds %s, got %v", ErrSlotType, status, s.typ, got)
	}

	return Union{layout: l, index: i, value: v}, nil
}

// MustNew is New that panics on error.
func (l *Layout) MustNew(status int, v TypedResponse) Union {
	u, err := l.New(status, v)
	if err != nil {
		panic(err)
	}
	return u
}

// Prototype returns a union value that documents the layout but holds no
// response. It is what endpoints are registered with.
func (l *Layout) Prototype() Union {
	return Union{layout: l, index: -1}
}

// Union is a value of a compiled layout: exactly one slot is active.
type Union struct {
	layout *Layout
	index  int
	value  TypedResponse
}

// Layout returns the layout u belongs to.
func (u Union) Layout() *Layout {
	return u.layout
}

// Status returns the status of the active slot, or 0 for a prototype.
func (u Union) Status() int {
	if u.layout == nil || u.index < 0 {
		return 0
	}
	return u.layout.slots[u.index].status
}

// Value returns the response held by the active slot.
func (u Union) Value() TypedResponse {
	return u.value
}

// Render renders the active slot. A union without an active slot renders
// 500.
func (u Union) Render() *Wire {
	if u.value == nil {
		return internalError()
	}
	return u.value.Render()
}

func (u Union) Meta() []Descriptor {
	if u.layout == nil {
		return nil
	}
	return u.layout.Meta()
}

func (u Union) Register(reg *openapi.Registry) {
	if u.layout != nil {
		u.layout.Register(reg)
	}
}
