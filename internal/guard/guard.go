// Package guard implements the per-navigation access decision. Decide is a
// pure function of session state, the requested path, and the route table, so
// every outcome is table-testable without a server.
package guard

import (
	"net/url"

	"github.com/volunteerhub/webclient/internal/domain/auth"
	"github.com/volunteerhub/webclient/internal/session"
)

// Action is the outcome of a guard evaluation.
type Action string

const (
	// ActionPending means bootstrap has not settled; render a neutral loading
	// state, never a flash of redirected content.
	ActionPending Action = "pending"
	// ActionRender means the requested content may be served.
	ActionRender Action = "render"
	// ActionRedirectLogin sends the visitor to the login page, preserving the
	// requested location for a post-login bounce-back.
	ActionRedirectLogin Action = "redirect_login"
	// ActionRedirectRoleHome sends an authenticated visitor on the login page
	// to their role's landing page.
	ActionRedirectRoleHome Action = "redirect_role_home"
	// ActionRedirectUnauthorized sends a visitor whose role is not allowed to
	// the unauthorized page.
	ActionRedirectUnauthorized Action = "redirect_unauthorized"
)

// Decision is a guard outcome plus the redirect target when applicable.
type Decision struct {
	Action   Action
	Location string
}

const (
	loginPath        = "/login"
	unauthorizedPath = "/unauthorized"
)

// Decide evaluates one navigation. Token presence and user presence are
// always checked together: a stale token without a resolved profile is
// treated the same as logged out.
func Decide(snap session.Snapshot, path string, table *Table) Decision {
	if !snap.Ready() {
		return Decision{Action: ActionPending}
	}

	authed := snap.Authenticated()

	if authed && path == loginPath {
		return Decision{Action: ActionRedirectRoleHome, Location: snap.User.Role.HomePath()}
	}

	route, matched := table.Match(path)

	// Unregistered paths fall through to the not-found page for everyone;
	// only registered protected paths demand a login first.
	if !matched || route.Public {
		return Decision{Action: ActionRender}
	}

	if !authed {
		return Decision{
			Action:   ActionRedirectLogin,
			Location: loginPath + "?redirect_uri=" + url.QueryEscape(path),
		}
	}

	// A protected route whose allow-list does not admit the role, including a
	// misconfigured empty allow-list, decides as "role not allowed" rather
	// than crashing.
	if !roleAllowed(snap.User.Role, route.Allow) {
		return Decision{Action: ActionRedirectUnauthorized, Location: unauthorizedPath}
	}

	return Decision{Action: ActionRender}
}

func roleAllowed(role auth.Role, allow []auth.Role) bool {
	for _, a := range allow {
		if a == role {
			return true
		}
	}
	return false
}
