package httpx

import (
	"context"

	"github.com/volunteerhub/webclient/internal/session"
)

// snapshotKey is an unexported context key type to avoid collisions across
// packages. The guard middleware stores the snapshot it decided on so
// handlers render against the same state, not a re-read one.
type snapshotKey struct{}

// SetSnapshotInContext returns a child context carrying the session snapshot.
func SetSnapshotInContext(ctx context.Context, snap session.Snapshot) context.Context {
	return context.WithValue(ctx, snapshotKey{}, snap)
}

// SnapshotFromContext returns the session snapshot from context and whether
// one is present.
func SnapshotFromContext(ctx context.Context) (session.Snapshot, bool) {
	if snap, ok := ctx.Value(snapshotKey{}).(session.Snapshot); ok {
		return snap, true
	}
	return session.Snapshot{}, false
}
