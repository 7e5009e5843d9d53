package users

import (
	"net/http"

	"github.com/kbukum/mgmtkit/httpclient"
	"github.com/kbukum/mgmtkit/management"
)

// UserList is the response of a list request. Totals is set only when
// include_totals was requested.
type UserList[A, U any] struct {
	Users  []User[A, U] `validate:"dive"`
	Totals *Totals
}

func (l *UserList[A, U]) UnmarshalJSON(data []byte) error {
	t, err := decodeList(data, "users", &l.Users)
	if err != nil {
		return err
	}
	l.Totals = t
	return nil
}

func (l UserList[A, U]) MarshalJSON() ([]byte, error) {
	return encodeList("users", l.Users, l.Totals)
}

// ListRequest searches users.
type ListRequest[A, U any] struct {
	management.Returns[UserList[A, U]] `schema:"-"`

	Paging     management.Page
	Order      management.Sort      `schema:"sort,omitempty"`
	Q          string               `schema:"q,omitempty"`
	Engine     string               `schema:"search_engine,omitempty"`
	FieldNames management.FieldList `schema:"fields,omitempty"`
	Include    *bool                `schema:"include_fields,omitempty"`
}

// List starts a user search.
func List[A, U any]() *ListRequest[A, U] {
	return &ListRequest[A, U]{}
}

// Search sets the query string, e.g. `email:"jane@example.com"`.
func (r *ListRequest[A, U]) Search(q string) *ListRequest[A, U] {
	r.Q = q
	return r
}

// SearchEngine selects the search engine version, e.g. "v3".
func (r *ListRequest[A, U]) SearchEngine(v string) *ListRequest[A, U] {
	r.Engine = v
	return r
}

// Fields limits each user to the named fields. user_id is always included.
func (r *ListRequest[A, U]) Fields(names ...string) *ListRequest[A, U] {
	r.FieldNames = append(r.FieldNames, names...)
	return r
}

// IncludeFields selects whether Fields are included (true) or excluded.
func (r *ListRequest[A, U]) IncludeFields(b bool) *ListRequest[A, U] {
	r.Include = &b
	return r
}

// Page sets the zero-based page index.
func (r *ListRequest[A, U]) Page(n uint) *ListRequest[A, U] {
	r.Paging.Page(n)
	return r
}

// PerPage sets the page size.
func (r *ListRequest[A, U]) PerPage(n uint) *ListRequest[A, U] {
	r.Paging.PerPage(n)
	return r
}

// IncludeTotals asks for the paging totals with the users.
func (r *ListRequest[A, U]) IncludeTotals(b bool) *ListRequest[A, U] {
	r.Paging.IncludeTotals(b)
	return r
}

// Sort orders the results by field.
func (r *ListRequest[A, U]) Sort(field string, order management.Ordering) *ListRequest[A, U] {
	r.Order.Sort(field, order)
	return r
}

// Pagination and Sorting expose the paging and order for callers that
// handle any Pageable or Sortable request.
func (r *ListRequest[A, U]) Pagination() *management.Page { return &r.Paging }
func (r *ListRequest[A, U]) Sorting() *management.Sort    { return &r.Order }

// Build prepares GET api/v2/users.
func (r *ListRequest[A, U]) Build(f management.Factory) *httpclient.Request {
	q := *r
	q.FieldNames = projection(r.FieldNames, r.Include)
	return management.WithQuery(f(http.MethodGet, basePath), &q)
}
