package httpx

import (
	"net/http"
)

// RootRedirect sends "/" to the session's home: the role home when
// authenticated, login otherwise. The guard has already held the request
// while bootstrap was still settling.
func (h *Handlers) RootRedirect(w http.ResponseWriter, r *http.Request) {
	snap, _ := SnapshotFromContext(r.Context())
	if snap.Authenticated() {
		http.Redirect(w, r, snap.User.Role.HomePath(), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// UnauthorizedPage renders the role-mismatch page. It is reachable by any
// authenticated role; the guard sends anonymous sessions to login instead.
func (h *Handlers) UnauthorizedPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Unauthorized", CurrentPage: PageError}).Build()
	h.renderStatus(w, "page-unauthorized", data, http.StatusForbidden)
}

// NotFound renders the catch-all 404 page.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFoundPage(w, r)
}

func (h *Handlers) notFoundPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Page not found", CurrentPage: PageError}).
		With("Path", r.URL.Path).
		Build()
	h.renderStatus(w, "page-notfound", data, http.StatusNotFound)
}

// Health reports process liveness. It carries no session state and is not
// guarded.
func Health(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
