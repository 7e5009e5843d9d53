// Package users holds the user entities and endpoints of the management API.
//
// Reads are plain request values run with management.Query:
//
//	u, err := management.Query(ctx, c, users.Get[AppMeta, UserMeta]("auth0|U123"))
//	logs, err := management.Query(ctx, c, users.Logs("auth0|U123").PerPage(100))
//
// Writes are created from a client and run with management.Send:
//
//	_, err := management.Send(ctx, users.Update[AppMeta, UserMeta](c, id).Blocked(true))
//
// A and U are the caller's app_metadata and user_metadata types. They are
// shipped and returned as-is.
package users
