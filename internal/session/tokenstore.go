package session

import (
	"context"
	"errors"
)

// ErrNoToken is returned by TokenStore.Load when no token is persisted.
var ErrNoToken = errors.New("no persisted token")

// TokenStore persists the opaque bearer token between process runs. It is the
// single source of truth for "is a session claimed" across restarts. The
// Controller is the only writer during the session lifecycle.
type TokenStore interface {
	// Load returns the persisted token, or ErrNoToken when absent.
	Load(ctx context.Context) (string, error)
	// Save persists the token, replacing any previous value.
	Save(ctx context.Context, token string) error
	// Clear removes the persisted token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
