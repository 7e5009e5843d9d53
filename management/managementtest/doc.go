// Package managementtest runs an in-memory fake of the users API for tests.
//
//	srv := managementtest.NewServer()
//	testutil.T(t).Setup(srv)
//	c, _ := management.New(srv.Config())
//
// The server is seeded with the user and logs fixtures, checks bearer tokens,
// serves the client_credentials grant, and records every request it receives.
// It implements testutil.TestComponent, so state can be reset, snapshotted and
// restored between test cases.
package managementtest
