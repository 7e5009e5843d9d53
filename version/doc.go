// Package version exposes build information for mgmtkit binaries and the
// User-Agent sent with every management API call.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/mgmtkit/version.Version=1.0.0"
package version
