// Package component defines lifecycle interfaces shared by the management
// client, its HTTP transport and the in-memory test server.
//
// # Interfaces
//
//   - Component: Start/Stop/Health lifecycle
//   - Describable: one-line summary used by the CLI's debug output
//
// A Registry starts components in registration order and stops them in
// reverse order.
package component
