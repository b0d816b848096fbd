package guard

import (
	"sort"
	"strings"

	"github.com/volunteerhub/webclient/internal/domain/auth"
)

// Route attaches a role allow-list to a navigable path prefix.
type Route struct {
	// Prefix matches the path itself and everything below it.
	Prefix string
	// Allow lists the roles admitted to the route. Ignored when Public.
	Allow []auth.Role
	// Public routes render for everyone, authenticated or not.
	Public bool
}

// Table is the registered route surface, matched by longest prefix.
type Table struct {
	routes []Route
}

// NewTable builds a table from the given routes, ordered for longest-prefix
// matching.
func NewTable(routes ...Route) *Table {
	t := &Table{routes: append([]Route(nil), routes...)}
	sort.SliceStable(t.routes, func(i, j int) bool {
		return len(t.routes[i].Prefix) > len(t.routes[j].Prefix)
	})
	return t
}

// Match returns the most specific route covering path.
func (t *Table) Match(path string) (Route, bool) {
	for _, r := range t.routes {
		if path == r.Prefix || strings.HasPrefix(path, r.Prefix+"/") {
			return r, true
		}
	}
	return Route{}, false
}

// DefaultTable is the platform's route surface: public auth pages, one
// role-gated subtree per role, and the unauthorized page open to any
// authenticated role.
func DefaultTable() *Table {
	allRoles := []auth.Role{auth.RoleStudent, auth.RoleStaff, auth.RoleAdmin}
	return NewTable(
		Route{Prefix: "/login", Public: true},
		Route{Prefix: "/register", Public: true},
		Route{Prefix: "/student", Allow: []auth.Role{auth.RoleStudent}},
		Route{Prefix: "/staff", Allow: []auth.Role{auth.RoleStaff}},
		Route{Prefix: "/admin", Allow: []auth.Role{auth.RoleAdmin}},
		Route{Prefix: "/unauthorized", Allow: allRoles},
		Route{Prefix: "/", Allow: allRoles},
	)
}
