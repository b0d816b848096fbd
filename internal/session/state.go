package session

import "github.com/volunteerhub/webclient/internal/domain/auth"

// Phase is the tagged state of the session lifecycle. Using an explicit
// enumeration instead of parallel ready/user fields makes illegal states
// (ready with an unsettled user) unrepresentable.
type Phase string

const (
	// PhaseBootstrapping means the one-time session recovery has not settled yet.
	PhaseBootstrapping Phase = "bootstrapping"
	// PhaseAnonymous means no validated session exists.
	PhaseAnonymous Phase = "anonymous"
	// PhaseAuthenticated means a validated session with a resolved user exists.
	PhaseAuthenticated Phase = "authenticated"
)

// Snapshot is an immutable view of session state at one point in time.
// Guard decisions and page rendering consume snapshots, never live state.
type Snapshot struct {
	Phase Phase
	// User is non-nil iff Phase is PhaseAuthenticated.
	User *auth.User
	// TokenArmed reports whether a bearer token is currently attached to
	// outgoing requests. Checked together with User by the route guard so a
	// stale token without a resolved profile is treated as logged out.
	TokenArmed bool
}

// Ready reports whether bootstrap has settled. It flips false to true exactly
// once per process run and never reverts.
func (s Snapshot) Ready() bool {
	return s.Phase != PhaseBootstrapping
}

// Authenticated reports whether both a token and a resolved user exist.
func (s Snapshot) Authenticated() bool {
	return s.Phase == PhaseAuthenticated && s.User != nil && s.TokenArmed
}
