package management

import (
	"fmt"
	"strings"
)

// Ordering is a sort direction.
type Ordering int

const (
	Ascending  Ordering = 1
	Descending Ordering = -1
)

// String returns the wire token, "1" or "-1".
func (o Ordering) String() string {
	if o == Descending {
		return "-1"
	}
	return "1"
}

// Sort orders a list endpoint by one field. The zero Sort is empty and is
// omitted from the query.
type Sort struct {
	Field string
	Order Ordering
}

// Sort sets the field and direction.
func (s *Sort) Sort(field string, order Ordering) *Sort {
	s.Field = field
	s.Order = order
	return s
}

// IsEmpty reports whether no sort was requested.
func (s Sort) IsEmpty() bool {
	return s.Field == ""
}

// IsZero lets the query encoder drop an empty sort.
func (s Sort) IsZero() bool {
	return s.IsEmpty()
}

// String renders the wire form, e.g. "date:1".
func (s Sort) String() string {
	if s.IsEmpty() {
		return ""
	}
	return s.Field + ":" + s.Order.String()
}

// ParseSort parses "field:1", "field:-1", "field:asc" or "field:desc". A
// bare field sorts ascending.
func ParseSort(s string) (Sort, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Sort{}, nil
	}
	field, dir, found := strings.Cut(s, ":")
	if field == "" {
		return Sort{}, fmt.Errorf("invalid sort %q: missing field", s)
	}
	if !found {
		return Sort{Field: field, Order: Ascending}, nil
	}
	switch strings.ToLower(dir) {
	case "1", "asc":
		return Sort{Field: field, Order: Ascending}, nil
	case "-1", "desc":
		return Sort{Field: field, Order: Descending}, nil
	default:
		return Sort{}, fmt.Errorf("invalid sort %q: direction must be 1, -1, asc or desc", s)
	}
}
