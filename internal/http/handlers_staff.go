package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/volunteerhub/webclient/internal/domain/activity"
	apperrors "github.com/volunteerhub/webclient/internal/errors"
)

// StaffDashboard renders the staff home tiles.
func (h *Handlers) StaffDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Activities.StaffSummary(r.Context())
	if err != nil {
		h.renderUpstreamError(w, r, err)
		return
	}

	data := NewTemplateData(r, PageMeta{Title: "Staff dashboard", CurrentPage: PageDashboard}).
		With("Summary", summary).
		Build()
	h.render(w, "page-staff-dashboard", data)
}

// StaffActivitiesPage lists activities for management, reusing the same
// filter surface as the browser page.
func (h *Handlers) StaffActivitiesPage(w http.ResponseWriter, r *http.Request) {
	filters := parseActivityFilters(r)
	page, err := h.Activities.ListActivities(r.Context(), filters)
	if err != nil {
		h.renderUpstreamError(w, r, err)
		return
	}

	data := NewTemplateData(r, PageMeta{Title: "Manage activities", CurrentPage: PageActivities}).
		WithPagination(PaginationData{
			Page:       filters.Page,
			PageSize:   filters.Limit,
			TotalCount: page.Total,
			BasePath:   "/staff/activities",
		}).
		With("Activities", page.Items).
		With("Search", filters.Search).
		With("Status", string(filters.Status)).
		Build()
	h.render(w, "page-staff-activities", data)
}

// ActivityFormPage renders the create form, or the edit form when the path
// carries an id.
func (h *Handlers) ActivityFormPage(w http.ResponseWriter, r *http.Request) {
	builder := NewTemplateData(r, PageMeta{Title: "New activity", CurrentPage: PageActivities}).
		With("Form", activity.Payload{})

	if idStr := r.PathValue("id"); idStr != "" {
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
		builder = NewTemplateData(r, PageMeta{Title: "Edit activity", CurrentPage: PageActivities}).
			With("ActivityID", id).
			With("Form", activity.Payload{
				Title:           detail.Title,
				Description:     detail.Description,
				Category:        detail.Category,
				StartTime:       detail.StartTime.Format("2006-01-02T15:04"),
				EndTime:         detail.EndTime.Format("2006-01-02T15:04"),
				MaxParticipants: detail.MaxParticipants,
				CoverImage:      detail.CoverImage,
			})
	}

	h.render(w, "page-activity-form", builder.Build())
}

// ActivityFormSubmit creates or updates an activity from the form body.
func (h *Handlers) ActivityFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	payload := activity.Payload{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Category:    activity.Category(strings.ToUpper(r.PostFormValue("category"))),
		StartTime:   r.PostFormValue("start_time"),
		EndTime:     r.PostFormValue("end_time"),
	}
	if v, err := strconv.Atoi(r.PostFormValue("max_participants")); err == nil {
		payload.MaxParticipants = v
	}
	if img := strings.TrimSpace(r.PostFormValue("cover_image")); img != "" {
		payload.CoverImage = &img
	}

	var actID int64
	if idStr := r.PathValue("id"); idStr != "" {
		id, ok := pathID(r, "id")
		if !ok {
			h.notFoundPage(w, r)
			return
		}
		actID = id
	}

	renderWithErrors := func(fieldErrs map[string]string, msg string) {
		title := "New activity"
		if actID != 0 {
			title = "Edit activity"
		}
		builder := NewTemplateData(r, PageMeta{Title: title, CurrentPage: PageActivities}).
			With("Form", payload).
			WithFieldErrors(fieldErrs).
			WithError(msg)
		if actID != 0 {
			builder.With("ActivityID", actID)
		}
		h.renderStatus(w, "page-activity-form", builder.Build(), http.StatusBadRequest)
	}

	if err := h.Validate.Struct(payload); err != nil {
		renderWithErrors(h.validationErrors(err), "Please fix the errors below.")
		return
	}

	var err error
	if actID != 0 {
		_, err = h.Activities.UpdateActivity(r.Context(), actID, payload)
	} else {
		_, err = h.Activities.CreateActivity(r.Context(), payload)
	}
	if err != nil {
		if apperrors.IsValidation(err) {
			fieldErrs := map[string]string{}
			if f := apperrors.GetField(err); f != "" {
				fieldErrs[f] = err.Error()
			}
			renderWithErrors(fieldErrs, err.Error())
			return
		}
		h.renderUpstreamError(w, r, err)
		return
	}

	http.Redirect(w, r, "/staff/activities", http.StatusSeeOther)
}

// ApplicantsPage lists the applicants of one activity for review.
func (h *Handlers) ApplicantsPage(w http.ResponseWriter, r *http.Request) {
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
	applicants, err := h.Activities.Applicants(r.Context(), id)
	if err != nil {
		h.renderUpstreamError(w, r, err)
		return
	}

	data := NewTemplateData(r, PageMeta{Title: "Applicants", CurrentPage: PageApplicants}).
		With("Activity", detail).
		With("Applicants", applicants).
		Build()
	h.render(w, "page-applicants", data)
}

// ApplicantReviewSubmit approves or rejects one applicant and returns to the
// applicant list.
func (h *Handlers) ApplicantReviewSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFoundPage(w, r)
		return
	}
	applicantID, ok := pathID(r, "applicantID")
	if !ok {
		h.notFoundPage(w, r)
		return
	}
	verdict := r.PathValue("verdict")
	if verdict != "approve" && verdict != "reject" {
		h.notFoundPage(w, r)
		return
	}

	if err := h.Activities.ReviewApplicant(r.Context(), id, applicantID, verdict == "approve"); err != nil {
		h.renderUpstreamError(w, r, err)
		return
	}
	http.Redirect(w, r, "/staff/activities/"+r.PathValue("id")+"/applicants", http.StatusSeeOther)
}
