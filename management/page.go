package management

import "github.com/kbukum/mgmtkit/util"

// Server-side pagination limits.
const (
	DefaultPerPage = 50
	MaxPerPage     = 100
)

// Page selects a page of a list endpoint. Nil fields are omitted from the
// query. Bounds are not checked client-side.
type Page struct {
	Number *uint `schema:"page,omitempty"`
	Size   *uint `schema:"per_page,omitempty"`
	Totals *bool `schema:"include_totals,omitempty"`
}

// Page sets the zero-based page index.
func (p *Page) Page(n uint) *Page {
	p.Number = &n
	return p
}

// PerPage sets the page size.
func (p *Page) PerPage(n uint) *Page {
	p.Size = &n
	return p
}

// IncludeTotals asks the server to wrap the result in a totals envelope.
func (p *Page) IncludeTotals(b bool) *Page {
	p.Totals = &b
	return p
}

// IsZero reports whether no field was set.
func (p Page) IsZero() bool {
	return p.Number == nil && p.Size == nil && p.Totals == nil
}

// WantsTotals reports whether include_totals was set to true.
func (p Page) WantsTotals() bool {
	return util.Deref(p.Totals)
}
