package auth

import (
	"context"
	"errors"
)

// ErrNoToken is returned by a TokenSource that has nothing to offer.
var ErrNoToken = errors.New("auth: no token available")

// TokenSource produces the current bearer credential for an outbound call.
// Implementations must be safe for concurrent use.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts an ordinary function to the TokenSource interface.
type TokenSourceFunc func(ctx context.Context) (string, error)

// Token implements TokenSource.
func (f TokenSourceFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken is a pre-issued token that never refreshes.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", ErrNoToken
	}
	return string(t), nil
}
