// Package util provides small generic helpers shared across mgmtkit:
// pointer construction for optional wire fields, zero-value coalescing,
// secret masking and input checks.
package util
