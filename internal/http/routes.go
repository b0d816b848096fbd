package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/volunteerhub/webclient/internal/guard"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Session    SessionService
	Activities ActivityService
	Accounts   AccountService
	Users      UserAdminService
	Renderer   *TemplateRenderer
	Logger     *slog.Logger
}

// NewRouter wires the page routes behind the route guard and mounts the
// unguarded operational endpoints beside them.
func NewRouter(services RouterServices) http.Handler {
	h := &Handlers{
		Session:    services.Session,
		Activities: services.Activities,
		Accounts:   services.Accounts,
		Users:      services.Users,
		T:          services.Renderer,
		Validate:   validator.New(validator.WithRequiredStructEnabled()),
		Logger:     services.Logger,
	}

	pages := http.NewServeMux()

	pages.HandleFunc("GET /{$}", h.RootRedirect)
	pages.HandleFunc("GET /login", h.LoginPage)
	pages.HandleFunc("POST /login", h.LoginSubmit)
	pages.HandleFunc("GET /register", h.RegisterPage)
	pages.HandleFunc("POST /register", h.RegisterSubmit)
	pages.HandleFunc("POST /logout", h.LogoutSubmit)
	pages.HandleFunc("GET /unauthorized", h.UnauthorizedPage)

	pages.HandleFunc("GET /student", h.StudentDashboard)
	pages.HandleFunc("GET /student/activities", h.ActivitiesPage)
	pages.HandleFunc("GET /student/activities/{id}", h.ActivityDetailPage)
	pages.HandleFunc("POST /student/activities/{id}/apply", h.ActivityApplySubmit)
	pages.HandleFunc("GET /student/my-activities", h.MyActivitiesPage)
	pages.HandleFunc("GET /student/profile", h.ProfilePage)
	pages.HandleFunc("POST /student/profile", h.ProfileSubmit)

	pages.HandleFunc("GET /staff", h.StaffDashboard)
	pages.HandleFunc("GET /staff/activities", h.StaffActivitiesPage)
	pages.HandleFunc("GET /staff/activities/new", h.ActivityFormPage)
	pages.HandleFunc("POST /staff/activities/new", h.ActivityFormSubmit)
	pages.HandleFunc("GET /staff/activities/{id}/edit", h.ActivityFormPage)
	pages.HandleFunc("POST /staff/activities/{id}/edit", h.ActivityFormSubmit)
	pages.HandleFunc("GET /staff/activities/{id}/applicants", h.ApplicantsPage)
	pages.HandleFunc("POST /staff/activities/{id}/applicants/{applicantID}/{verdict}", h.ApplicantReviewSubmit)

	pages.HandleFunc("GET /admin", h.AdminDashboard)
	pages.HandleFunc("GET /admin/approval", h.ApprovalPage)
	pages.HandleFunc("POST /admin/approval/{id}/{verdict}", h.ActivityReviewSubmit)
	pages.HandleFunc("GET /admin/users", h.UsersPage)
	pages.HandleFunc("POST /admin/users/{id}/ban", h.UserBanSubmit)

	// Everything else is the not-found page; unregistered paths render for
	// anyone, so the 404 never leaks whether a protected page exists.
	pages.HandleFunc("/", h.NotFound)

	guarded := Guard(services.Session, guard.DefaultTable(), services.Renderer)(pages)

	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", Health)
	root.HandleFunc("HEAD /healthz", Health)
	root.Handle("GET /metrics", promhttp.Handler())
	root.Handle("/", guarded)

	return root
}
