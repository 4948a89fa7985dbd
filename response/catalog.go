package response

import (
	"fmt"
	"slices"
)

// defaultStatuses is every status the default catalog supports.
var defaultStatuses = []int{
	100, 101, 102,
	200, 201, 202, 203, 204, 205, 206, 207, 208, 226,
	300, 301, 302, 303, 304, 305, 307, 308,
	400, 401, 402, 403, 404, 405, 406, 407, 408, 409, 410, 411, 412, 413,
	414, 415, 416, 417, 418, 421, 422, 423, 424, 426, 428, 429, 431, 451,
	500, 501, 502, 503, 504, 505, 506, 507, 508, 510, 511,
}

// DefaultCatalog is the closed, ordered set of statuses a union can hold
// when no other catalog is given.
var DefaultCatalog = MustCatalog(defaultStatuses...)

// Catalog is a closed, ordered list of status codes. It is immutable once
// created and safe for concurrent use.
type Catalog struct {
	statuses []int
	index    map[int]int
}

// NewCatalog creates a catalog holding statuses in the given order. Every
// status must be within 100-999 and appear once.
func NewCatalog(statuses ...int) (*Catalog, error) {
	c := &Catalog{
		statuses: slices.Clone(statuses),
		index:    make(map[int]int, len(statuses)),
	}

	for i, s := range statuses {
		if err := checkStatusRange(s); err != nil {
			return nil, err
		}
		if _, dup := c.index[s]; dup {
			return nil, &DuplicateStatusError{Status: s}
		}
		c.index[s] = i
	}

	return c, nil
}

// MustCatalog is NewCatalog that panics on error. It is meant for package
// level catalog variables.
func MustCatalog(statuses ...int) *Catalog {
	c, err := NewCatalog(statuses...)
	if err != nil {
		panic(err)
	}
	return c
}

// Statuses returns a copy of the catalog statuses in catalog order.
func (c *Catalog) Statuses() []int {
	return slices.Clone(c.statuses)
}

// Len returns the number of statuses in the catalog.
func (c *Catalog) Len() int {
	return len(c.statuses)
}

// Contains reports whether status is part of the catalog.
func (c *Catalog) Contains(status int) bool {
	_, ok := c.index[status]
	return ok
}

// Index returns the position of status in the catalog.
func (c *Catalog) Index(status int) (int, bool) {
	i, ok := c.index[status]
	return i, ok
}

// Validate checks a declaration's statuses: all must be in the catalog and
// none may repeat. Unsupported statuses are reported together, ascending,
// alongside the full catalog.
func (c *Catalog) Validate(statuses []int) error {
	var unsupported []int
	for _, s := range statuses {
		if !c.Contains(s) && !slices.Contains(unsupported, s) {
			unsupported = append(unsupported, s)
		}
	}
	if len(unsupported) > 0 {
		slices.Sort(unsupported)
		return &UnsupportedStatusError{Unsupported: unsupported, Supported: c.Statuses()}
	}

	seen := make(map[int]struct{}, len(statuses))
	for _, s := range statuses {
		if _, dup := seen[s]; dup {
			return &DuplicateStatusError{Status: s}
		}
		seen[s] = struct{}{}
	}

	return nil
}

// SupportedStatuses returns the statuses of DefaultCatalog.
func SupportedStatuses() []int {
	return DefaultCatalog.Statuses()
}

// IsSupported reports whether status is part of DefaultCatalog.
func IsSupported(status int) bool {
	return DefaultCatalog.Contains(status)
}

func checkStatusRange(status int) error {
	if status < 100 || status > 999 {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, status)
	}
	return nil
}
