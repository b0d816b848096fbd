package httpx

import (
	"net/http"

	"github.com/volunteerhub/webclient/internal/domain/activity"
)

// AdminDashboard renders the admin home tiles.
func (h *Handlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Activities.AdminSummary(r.Context())
	if err != nil {
		h.renderUpstreamError(w, r, err)
		return
	}

	data := NewTemplateData(r, PageMeta{Title: "Admin dashboard", CurrentPage: PageDashboard}).
		With("Summary", summary).
		Build()
	h.render(w, "page-admin-dashboard", data)
}

// ApprovalPage lists pending activities awaiting admin review.
func (h *Handlers) ApprovalPage(w http.ResponseWriter, r *http.Request) {
	filters := parseActivityFilters(r)
	filters.Status = activity.StatusPending
	page, err := h.Activities.ListActivities(r.Context(), filters)
	if err != nil {
		h.renderUpstreamError(w, r, err)
		return
	}

	data := NewTemplateData(r, PageMeta{Title: "Approval center", CurrentPage: PageApproval}).
		WithPagination(PaginationData{
			Page:       filters.Page,
			PageSize:   filters.Limit,
			TotalCount: page.Total,
			BasePath:   "/admin/approval",
		}).
		With("Activities", page.Items).
		Build()
	h.render(w, "page-approval", data)
}

// ActivityReviewSubmit approves or rejects one pending activity.
func (h *Handlers) ActivityReviewSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFoundPage(w, r)
		return
	}
	verdict := r.PathValue("verdict")
	if verdict != "approve" && verdict != "reject" {
		h.notFoundPage(w, r)
		return
	}

	if err := h.Activities.ReviewActivity(r.Context(), id, verdict == "approve"); err != nil {
		h.renderUpstreamError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/approval", http.StatusSeeOther)
}

// UsersPage lists platform users for ban management.
func (h *Handlers) UsersPage(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUsers(r.Context())
	if err != nil {
		h.renderUpstreamError(w, r, err)
		return
	}

	data := NewTemplateData(r, PageMeta{Title: "Users", CurrentPage: PageUsers}).
		With("Users", users).
		Build()
	h.render(w, "page-users", data)
}

// UserBanSubmit flips one user's ban status and returns to the user list.
func (h *Handlers) UserBanSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFoundPage(w, r)
		return
	}
	banned := r.PostFormValue("banned") == "true"

	if _, err := h.Users.SetBanStatus(r.Context(), id, banned); err != nil {
		h.renderUpstreamError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}
