// Package fixtures holds JSON payloads shaped like management API responses
// for use in tests.
//
//	body := fixtures.Load("user.json")
package fixtures
