package users

import (
	"net/http"

	"github.com/kbukum/mgmtkit/httpclient"
	"github.com/kbukum/mgmtkit/management"
	"github.com/kbukum/mgmtkit/util"
)

// GetRequest fetches one user.
type GetRequest[A, U any] struct {
	management.Returns[User[A, U]] `schema:"-"`

	FieldNames management.FieldList `schema:"fields,omitempty"`
	Include    *bool                `schema:"include_fields,omitempty"`

	id string `schema:"-"`
}

// Get starts a request for the user with id.
func Get[A, U any](id string) *GetRequest[A, U] {
	return &GetRequest[A, U]{id: id}
}

// Fields limits the response to the named fields. user_id is always
// included.
func (r *GetRequest[A, U]) Fields(names ...string) *GetRequest[A, U] {
	r.FieldNames = append(r.FieldNames, names...)
	return r
}

// IncludeFields selects whether Fields are included (true) or excluded.
func (r *GetRequest[A, U]) IncludeFields(b bool) *GetRequest[A, U] {
	r.Include = &b
	return r
}

// Build prepares GET api/v2/users/{id}.
func (r *GetRequest[A, U]) Build(f management.Factory) *httpclient.Request {
	req := f(http.MethodGet, userPath(r.id))
	if err := util.ValidateNonEmpty("user id", r.id); err != nil {
		return req.Fail(err)
	}
	q := *r
	q.FieldNames = projection(r.FieldNames, r.Include)
	return management.WithQuery(req, &q)
}
