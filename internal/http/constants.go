package httpx

// CurrentPage values used by the nav partial to highlight the active entry.
const (
	PageLogin        = "login"
	PageRegister     = "register"
	PageDashboard    = "dashboard"
	PageActivities   = "activities"
	PageMyActivities = "my-activities"
	PageProfile      = "profile"
	PageApplicants   = "applicants"
	PageApproval     = "approval"
	PageUsers        = "users"
	PageError        = "error"
)
