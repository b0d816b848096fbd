package httpx

import (
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/volunteerhub/webclient/internal/errors"
	"github.com/volunteerhub/webclient/internal/upstream"
)

// StudentDashboard renders the student home: accumulated totals plus the
// student's upcoming registrations.
func (h *Handlers) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Activities.MySummary(r.Context())
	if err != nil {
		h.renderUpstreamError(w, r, err)
		return
	}
	mine, err := h.Activities.MyActivities(r.Context())
	if err != nil {
		h.renderUpstreamError(w, r, err)
		return
	}

	data := NewTemplateData(r, PageMeta{Title: "Dashboard", CurrentPage: PageDashboard}).
		With("Summary", summary).
		With("Activities", mine).
		Build()
	h.render(w, "page-student-dashboard", data)
}

// ActivitiesPage renders the filtered, paginated activity browser.
func (h *Handlers) ActivitiesPage(w http.ResponseWriter, r *http.Request) {
	filters := parseActivityFilters(r)
	page, err := h.Activities.ListActivities(r.Context(), filters)
	if err != nil {
		h.renderUpstreamError(w, r, err)
		return
	}

	data := NewTemplateData(r, PageMeta{Title: "Activities", CurrentPage: PageActivities}).
		WithPagination(PaginationData{
			Page:       filters.Page,
			PageSize:   filters.Limit,
			TotalCount: page.Total,
			BasePath:   "/student/activities",
		}).
		With("Activities", page.Items).
		With("Search", filters.Search).
		With("Category", string(filters.Category)).
		With("Status", string(filters.Status)).
		Build()
	h.render(w, "page-activities", data)
}

// ActivityDetailPage renders one activity with its join data.
func (h *Handlers) ActivityDetailPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFoundPage(w, r)
		return
	}
	detail, err := h.Activities.GetActivity(r.Context(), id)
	if err != nil {
		h.renderUpstreamError(w, r, err)
		return
	}

	data := NewTemplateData(r, PageMeta{Title: detail.Title, CurrentPage: PageActivities}).
		With("Activity", detail).
		With("Rejected", r.URL.Query().Get("rejected")).
		Build()
	h.render(w, "page-activity-detail", data)
}

// ActivityApplySubmit toggles the student's registration on an activity and
// returns to the detail page.
func (h *Handlers) ActivityApplySubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFoundPage(w, r)
		return
	}
	target := "/student/activities/" + r.PathValue("id")
	if err := h.Activities.ToggleRegistration(r.Context(), id); err != nil {
		if apperrors.IsValidation(err) {
			// Full activity, closed registration, and similar rejections come
			// back as a banner on the detail page.
			http.Redirect(w, r, target+"?rejected="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			return
		}
		h.renderUpstreamError(w, r, err)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// MyActivitiesPage lists the activities the student has applied to.
func (h *Handlers) MyActivitiesPage(w http.ResponseWriter, r *http.Request) {
	mine, err := h.Activities.MyActivities(r.Context())
	if err != nil {
		h.renderUpstreamError(w, r, err)
		return
	}

	data := NewTemplateData(r, PageMeta{Title: "My activities", CurrentPage: PageMyActivities}).
		With("Activities", mine).
		Build()
	h.render(w, "page-my-activities", data)
}

// ProfilePage renders the self-service profile form.
func (h *Handlers) ProfilePage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Profile", CurrentPage: PageProfile}).
		With("Saved", r.URL.Query().Get("saved") == "1").
		Build()
	h.render(w, "page-profile", data)
}

// ProfileSubmit updates the profile upstream and replaces the in-memory user
// record so the nav reflects the change immediately.
func (h *Handlers) ProfileSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	payload := upstream.ProfilePayload{
		FirstName: strings.TrimSpace(r.PostFormValue("firstname")),
		LastName:  strings.TrimSpace(r.PostFormValue("lastname")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
	}

	if err := h.Validate.Struct(payload); err != nil {
		data := NewTemplateData(r, PageMeta{Title: "Profile", CurrentPage: PageProfile}).
			WithError("Please fix the errors below.").
			WithFieldErrors(h.validationErrors(err)).
			Build()
		h.renderStatus(w, "page-profile", data, http.StatusBadRequest)
		return
	}

	user, err := h.Accounts.UpdateProfile(r.Context(), payload)
	if err != nil {
		if apperrors.IsValidation(err) {
			data := NewTemplateData(r, PageMeta{Title: "Profile", CurrentPage: PageProfile}).
				WithError(err.Error()).
				Build()
			h.renderStatus(w, "page-profile", data, http.StatusBadRequest)
			return
		}
		h.renderUpstreamError(w, r, err)
		return
	}

	h.Session.UpdateUser(user)
	http.Redirect(w, r, "/student/profile?saved=1", http.StatusSeeOther)
}
