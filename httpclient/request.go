package httpclient

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// Request describes an outbound HTTP request.
//
// Preparation errors (for example a body that cannot be JSON-encoded) are
// recorded on the request and reported by Adapter.Do, so the fluent setters
// never need to return an error.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, etc).
	Method string
	// Path is resolved against the adapter's BaseURL. Can be a full URL if BaseURL is empty.
	Path string
	// Headers are request-specific headers (merged with adapter defaults).
	Headers map[string]string
	// Query are URL query parameters.
	Query url.Values
	// Body is the request body. Accepts io.Reader, []byte, string, or any value
	// that will be JSON-encoded.
	Body any
	// Auth overrides the adapter-level auth for this request.
	Auth *AuthConfig

	err error
}

// NewRequest prepares a request for the given method and path.
func NewRequest(method, path string) *Request {
	return &Request{Method: method, Path: path}
}

// SetQuery merges params into the request's query parameters.
func (r *Request) SetQuery(params url.Values) *Request {
	if len(params) == 0 {
		return r
	}
	if r.Query == nil {
		r.Query = make(url.Values, len(params))
	}
	for k, vs := range params {
		r.Query[k] = append([]string(nil), vs...)
	}
	return r
}

// AddQuery appends a single query parameter.
func (r *Request) AddQuery(key, value string) *Request {
	if r.Query == nil {
		r.Query = make(url.Values)
	}
	r.Query.Add(key, value)
	return r
}

// SetJSON encodes body as JSON and sets the Content-Type header.
func (r *Request) SetJSON(body any) *Request {
	data, err := json.Marshal(body)
	if err != nil {
		return r.Fail(fmt.Errorf("encode json body: %w", err))
	}
	r.Body = data
	return r.SetHeader("Content-Type", "application/json")
}

// SetHeader sets a request-specific header.
func (r *Request) SetHeader(key, value string) *Request {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
	return r
}

// SetAuth overrides authentication for this request.
func (r *Request) SetAuth(auth *AuthConfig) *Request {
	r.Auth = auth
	return r
}

// Fail records a preparation error. The first error wins.
func (r *Request) Fail(err error) *Request {
	if r.err == nil {
		r.err = err
	}
	return r
}

// Err returns the first preparation error recorded on the request.
func (r *Request) Err() error {
	return r.err
}

// Response is the result of an HTTP request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}
