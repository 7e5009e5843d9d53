// Package httpclient is the HTTP transport used by the management client.
//
// An Adapter owns the underlying *http.Client and applies base URL resolution,
// default headers and authentication. Requests are prepared fluently and sent
// exactly once: the adapter never retries, caches or rate-limits.
//
// # Basic Usage
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://tenant.example.com/",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	req := httpclient.NewRequest(http.MethodGet, "api/v2/users/123").
//	    AddQuery("fields", "email")
//	resp, err := adapter.Do(ctx, *req)
//
// Non-2xx responses are returned together with a classified *Error so callers
// can inspect both the status and the raw body.
package httpclient
