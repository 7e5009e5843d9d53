package testutil

import (
	"context"

	"github.com/kbukum/mgmtkit/component"
)

// TestComponent is a component.Component that tests can also reset,
// snapshot and restore. The in-memory management API server is one.
type TestComponent interface {
	component.Component

	// Reset restores the component to its initial state.
	Reset(ctx context.Context) error

	// Snapshot captures the current state of the component.
	Snapshot(ctx context.Context) (any, error)

	// Restore returns the component to a state captured by Snapshot.
	Restore(ctx context.Context, snapshot any) error
}
