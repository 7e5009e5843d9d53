// Package management is a typed client for an identity-management REST API.
//
// Every endpoint is a request object implementing RequestBuilder: it turns a
// (method, path) factory into a prepared httpclient.Request and declares the
// type its response decodes into. One generic execution path serves them all:
//
//	c, err := management.New(management.Config{Domain: "tenant.example.com", Token: tok})
//	logs, err := management.Query(ctx, c, users.Logs("auth0|U123").PerPage(100).
//	    Sort("date", management.Ascending))
//
// Requests that are created from a client (updates, deletes) implement
// ClientRequestBuilder and run with Send.
//
// Page and Sort are the shared query parameters. Unset fields never reach the
// wire so the server's defaults apply.
//
// Query returns either the decoded response or a *Error whose Kind tells
// transport failures, non-2xx statuses, undecodable bodies and unencodable
// requests apart. Nothing is retried and nothing is logged.
package management
