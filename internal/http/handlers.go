package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/volunteerhub/webclient/internal/domain/activity"
	"github.com/volunteerhub/webclient/internal/domain/auth"
	apperrors "github.com/volunteerhub/webclient/internal/errors"
	"github.com/volunteerhub/webclient/internal/session"
	"github.com/volunteerhub/webclient/internal/upstream"
)

// SessionService is the slice of the session controller the handlers drive.
type SessionService interface {
	Snapshot() session.Snapshot
	Login(ctx context.Context, email, password string) (auth.User, error)
	Logout(ctx context.Context) error
	UpdateUser(user auth.User)
}

// ActivityService is a minimal interface for the activity pages.
type ActivityService interface {
	ListActivities(ctx context.Context, f activity.FilterParams) (upstream.Page[activity.Activity], error)
	GetActivity(ctx context.Context, id int64) (activity.Detail, error)
	ToggleRegistration(ctx context.Context, id int64) error
	MyActivities(ctx context.Context) ([]activity.Activity, error)
	MySummary(ctx context.Context) (activity.Summary, error)
	StaffSummary(ctx context.Context) (activity.StaffSummary, error)
	AdminSummary(ctx context.Context) (activity.AdminSummary, error)
	CreateActivity(ctx context.Context, payload activity.Payload) (activity.Detail, error)
	UpdateActivity(ctx context.Context, id int64, payload activity.Payload) (activity.Detail, error)
	Applicants(ctx context.Context, activityID int64) ([]activity.Applicant, error)
	ReviewApplicant(ctx context.Context, activityID, applicantID int64, approve bool) error
	ReviewActivity(ctx context.Context, id int64, approve bool) error
}

// AccountService is a minimal interface for registration and profile pages.
type AccountService interface {
	Register(ctx context.Context, payload upstream.RegisterPayload) (auth.User, error)
	UpdateProfile(ctx context.Context, payload upstream.ProfilePayload) (auth.User, error)
}

// UserAdminService is a minimal interface for the admin user management page.
type UserAdminService interface {
	ListUsers(ctx context.Context) ([]auth.User, error)
	SetBanStatus(ctx context.Context, id int64, banned bool) (auth.User, error)
}

// Compile-time assertions that the platform client satisfies the handler interfaces.
var (
	_ ActivityService  = (*upstream.Client)(nil)
	_ AccountService   = (*upstream.Client)(nil)
	_ UserAdminService = (*upstream.Client)(nil)
)

// Handlers holds the page handlers and their dependencies.
type Handlers struct {
	Session    SessionService
	Activities ActivityService
	Accounts   AccountService
	Users      UserAdminService
	T          *TemplateRenderer
	Validate   *validator.Validate
	Logger     *slog.Logger
}

func (h *Handlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// render executes a page template, logging failures. The renderer itself
// falls back to a plain 500 when execution fails.
func (h *Handlers) render(w http.ResponseWriter, name string, data map[string]any) {
	_ = h.T.Render(w, name, data)
}

func (h *Handlers) renderStatus(w http.ResponseWriter, name string, data map[string]any, status int) {
	_ = h.T.RenderStatus(w, name, data, status)
}

// renderUpstreamError maps an upstream failure onto the generic error page.
// Session errors never land here: the transport already forced a logout, so
// the guard redirects the next navigation to the login page.
func (h *Handlers) renderUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger().Warn("upstream request failed",
		"path", r.URL.Path,
		"code", string(apperrors.GetCode(err)),
		"error", err,
	)

	status := http.StatusBadGateway
	msg := "The platform could not be reached. Please try again."
	switch {
	case apperrors.IsNotFound(err):
		h.notFoundPage(w, r)
		return
	case apperrors.IsAuthentication(err):
		http.Redirect(w, r, loginRedirectURL(r), http.StatusSeeOther)
		return
	case apperrors.IsValidation(err):
		status = http.StatusBadRequest
		msg = err.Error()
	}

	data := NewTemplateData(r, PageMeta{Title: "Error", CurrentPage: PageError}).
		WithError(msg).
		Build()
	h.renderStatus(w, "page-error", data, status)
}

// validationErrors flattens validator output into a field→message map for the
// form templates.
func (h *Handlers) validationErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !asValidationErrors(err, &verrs) {
		out["form"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "This field is required."
		case "email":
			out[fe.Field()] = "Enter a valid email address."
		case "min":
			out[fe.Field()] = "Value is too small or too short."
		case "max":
			out[fe.Field()] = "Value is too large or too long."
		case "oneof":
			out[fe.Field()] = "Choose one of the allowed values."
		default:
			out[fe.Field()] = "Invalid value."
		}
	}
	return out
}
