// Package testutil provides test helpers for components used by mgmtkit
// tests, chiefly the in-memory management API in managementtest.
//
//	func TestLogs(t *testing.T) {
//	    srv := managementtest.NewServer()
//	    testutil.T(t).Setup(srv)
//	    // srv is stopped when the test ends
//	}
//
// Shared JSON payloads live in the fixtures subpackage.
package testutil
