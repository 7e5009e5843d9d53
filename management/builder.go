package management

import (
	"encoding/json"

	"github.com/kbukum/mgmtkit/httpclient"
	"github.com/kbukum/mgmtkit/validation"
)

// Factory prepares a call for a method and a path relative to the API base.
type Factory func(method, path string) *httpclient.Request

// RequestBuilder is implemented by every endpoint request. Build describes the
// call without performing I/O; Decode turns a 2xx body into the response.
type RequestBuilder[R any] interface {
	Build(f Factory) *httpclient.Request
	Decode(body []byte) (R, error)
}

// ClientRequestBuilder is a request created from a client, so it can run
// without one being passed in. See Send.
type ClientRequestBuilder[R any] interface {
	RequestBuilder[R]
	Client() *Client
}

// Pageable is implemented by requests that carry a Page.
type Pageable interface {
	Pagination() *Page
}

// Sortable is implemented by requests that carry a Sort.
type Sortable interface {
	Sorting() *Sort
}

// Returns supplies the JSON Decode half of RequestBuilder. Embed it with
// the response type:
//
//	type GetRequest struct {
//	    management.Returns[User] `schema:"-"`
//	    ...
//	}
type Returns[R any] struct{}

// Decode unmarshals body into R and checks R's validate tags, so a body of
// the wrong shape fails even when it is valid JSON.
func (Returns[R]) Decode(body []byte) (R, error) {
	var out, zero R
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, err
	}
	if err := validation.ValidateValue(out); err != nil {
		return zero, err
	}
	return out, nil
}

// Empty is the response of endpoints that return no content.
type Empty struct{}

// ReturnsEmpty supplies a Decode that ignores the body.
type ReturnsEmpty struct{}

// Decode discards body.
func (ReturnsEmpty) Decode([]byte) (Empty, error) {
	return Empty{}, nil
}

// Bound ties a request to the client that created it.
type Bound struct {
	client *Client
}

// BindTo returns a Bound for c.
func BindTo(c *Client) Bound {
	return Bound{client: c}
}

// Client returns the client the request was created from.
func (b Bound) Client() *Client {
	return b.client
}
