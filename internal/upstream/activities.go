package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/volunteerhub/webclient/internal/domain/activity"
	apperrors "github.com/volunteerhub/webclient/internal/errors"
)

// Page is one page of a paginated collection.
type Page[T any] struct {
	Items []T
	Total int
}

// encodeFilters turns FilterParams into query values, encoding only set fields.
func encodeFilters(f activity.FilterParams) url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	if f.FacultyID > 0 {
		q.Set("faculty_id", strconv.FormatInt(f.FacultyID, 10))
	}
	if f.MajorID > 0 {
		q.Set("major_id", strconv.FormatInt(f.MajorID, 10))
	}
	return q
}

// ListActivities fetches one filtered page of the activity browser.
func (c *Client) ListActivities(ctx context.Context, f activity.FilterParams) (Page[activity.Activity], error) {
	env, err := c.call(ctx, callParams{method: http.MethodGet, path: "/activities", query: encodeFilters(f)})
	if err != nil {
		return Page[activity.Activity]{}, err
	}
	items, err := unwrap[[]activity.Activity](env, apperrors.ErrCodeTransport, "cannot list activities")
	if err != nil {
		return Page[activity.Activity]{}, err
	}
	return Page[activity.Activity]{Items: items, Total: env.Total}, nil
}

// GetActivity fetches one activity's detail page data.
func (c *Client) GetActivity(ctx context.Context, id int64) (activity.Detail, error) {
	env, err := c.call(ctx, callParams{method: http.MethodGet, path: fmt.Sprintf("/activities/%d", id)})
	if err != nil {
		return activity.Detail{}, err
	}
	return unwrap[activity.Detail](env, apperrors.ErrCodeNotFound, "activity not found")
}

// ToggleRegistration applies to, or withdraws from, an activity.
func (c *Client) ToggleRegistration(ctx context.Context, id int64) error {
	env, err := c.call(ctx, callParams{method: http.MethodPost, path: fmt.Sprintf("/activities/%d/apply", id)})
	if err != nil {
		return err
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "registration change rejected"
		}
		return apperrors.Validation(msg)
	}
	return nil
}

// MyActivities lists the activities the current user has applied to.
func (c *Client) MyActivities(ctx context.Context) ([]activity.Activity, error) {
	env, err := c.call(ctx, callParams{method: http.MethodGet, path: "/activities/my"})
	if err != nil {
		return nil, err
	}
	return unwrap[[]activity.Activity](env, apperrors.ErrCodeTransport, "cannot list my activities")
}

// MySummary reports the student's accumulated hours and points. The platform
// serves this off the profile endpoint, with the totals as quoted strings.
func (c *Client) MySummary(ctx context.Context) (activity.Summary, error) {
	env, err := c.call(ctx, callParams{method: http.MethodGet, path: "/auth/me"})
	if err != nil {
		return activity.Summary{}, err
	}
	totals, err := unwrap[struct {
		TotalHours  flexFloat `json:"total_hours"`
		TotalPoints flexFloat `json:"total_points"`
	}](env, apperrors.ErrCodeTransport, "cannot fetch summary")
	if err != nil {
		return activity.Summary{}, err
	}
	return activity.Summary{
		TotalHours:  float64(totals.TotalHours),
		TotalPoints: float64(totals.TotalPoints),
	}, nil
}

// StaffSummary reports the staff dashboard tiles.
func (c *Client) StaffSummary(ctx context.Context) (activity.StaffSummary, error) {
	env, err := c.call(ctx, callParams{method: http.MethodGet, path: "/activities/staff/summary"})
	if err != nil {
		return activity.StaffSummary{}, err
	}
	return unwrap[activity.StaffSummary](env, apperrors.ErrCodeTransport, "cannot fetch staff summary")
}

// AdminSummary reports the admin dashboard tiles.
func (c *Client) AdminSummary(ctx context.Context) (activity.AdminSummary, error) {
	env, err := c.call(ctx, callParams{method: http.MethodGet, path: "/admin/summary"})
	if err != nil {
		return activity.AdminSummary{}, err
	}
	return unwrap[activity.AdminSummary](env, apperrors.ErrCodeTransport, "cannot fetch admin summary")
}

// CreateActivity creates an activity (staff).
func (c *Client) CreateActivity(ctx context.Context, payload activity.Payload) (activity.Detail, error) {
	env, err := c.call(ctx, callParams{method: http.MethodPost, path: "/activities", body: payload})
	if err != nil {
		return activity.Detail{}, err
	}
	return unwrap[activity.Detail](env, apperrors.ErrCodeValidation, "activity creation failed")
}

// UpdateActivity updates an activity (staff).
func (c *Client) UpdateActivity(ctx context.Context, id int64, payload activity.Payload) (activity.Detail, error) {
	env, err := c.call(ctx, callParams{method: http.MethodPut, path: fmt.Sprintf("/activities/%d", id), body: payload})
	if err != nil {
		return activity.Detail{}, err
	}
	return unwrap[activity.Detail](env, apperrors.ErrCodeValidation, "activity update failed")
}

// Applicants lists the applicants of one activity (staff).
func (c *Client) Applicants(ctx context.Context, activityID int64) ([]activity.Applicant, error) {
	env, err := c.call(ctx, callParams{method: http.MethodGet, path: fmt.Sprintf("/activities/%d/applicants", activityID)})
	if err != nil {
		return nil, err
	}
	return unwrap[[]activity.Applicant](env, apperrors.ErrCodeTransport, "cannot list applicants")
}

// ReviewApplicant approves or rejects one applicant (staff).
func (c *Client) ReviewApplicant(ctx context.Context, activityID, applicantID int64, approve bool) error {
	verdict := "reject"
	if approve {
		verdict = "approve"
	}
	path := fmt.Sprintf("/activities/%d/applicants/%d/%s", activityID, applicantID, verdict)
	env, err := c.call(ctx, callParams{method: http.MethodPost, path: path})
	if err != nil {
		return err
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "applicant review rejected"
		}
		return apperrors.Validation(msg)
	}
	return nil
}

// ReviewActivity approves or rejects one pending activity (admin).
func (c *Client) ReviewActivity(ctx context.Context, id int64, approve bool) error {
	verdict := "reject"
	if approve {
		verdict = "approve"
	}
	env, err := c.call(ctx, callParams{method: http.MethodPost, path: fmt.Sprintf("/activities/%d/%s", id, verdict)})
	if err != nil {
		return err
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "activity review rejected"
		}
		return apperrors.Validation(msg)
	}
	return nil
}
