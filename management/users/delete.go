package users

import (
	"net/http"

	"github.com/kbukum/mgmtkit/httpclient"
	"github.com/kbukum/mgmtkit/management"
	"github.com/kbukum/mgmtkit/util"
)

// DeleteRequest removes one user.
type DeleteRequest struct {
	management.Bound
	management.ReturnsEmpty

	id string
}

// Delete starts a delete of the user with id on c.
func Delete(c *management.Client, id string) *DeleteRequest {
	return &DeleteRequest{Bound: management.BindTo(c), id: id}
}

// Build prepares DELETE api/v2/users/{id}.
func (r *DeleteRequest) Build(f management.Factory) *httpclient.Request {
	req := f(http.MethodDelete, userPath(r.id))
	if err := util.ValidateNonEmpty("user id", r.id); err != nil {
		return req.Fail(err)
	}
	return req
}
