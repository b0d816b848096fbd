package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volunteerhub/webclient/internal/domain/activity"
	"github.com/volunteerhub/webclient/internal/domain/auth"
	apperrors "github.com/volunteerhub/webclient/internal/errors"
	"github.com/volunteerhub/webclient/internal/session"
	"github.com/volunteerhub/webclient/internal/upstream"
)

// fakeSessionService scripts the session surface the handlers consume.
type fakeSessionService struct {
	snap       session.Snapshot
	loginUser  auth.User
	loginErr   error
	loginCalls int
	logoutted  bool
	updated    *auth.User
}

func (f *fakeSessionService) Snapshot() session.Snapshot { return f.snap }

func (f *fakeSessionService) Login(_ context.Context, _, _ string) (auth.User, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return auth.User{}, f.loginErr
	}
	return f.loginUser, nil
}

func (f *fakeSessionService) Logout(context.Context) error {
	f.logoutted = true
	return nil
}

func (f *fakeSessionService) UpdateUser(u auth.User) { f.updated = &u }

// fakePlatform scripts the upstream surface.
type fakePlatform struct {
	listPage     upstream.Page[activity.Activity]
	listErr      error
	detail       activity.Detail
	detailErr    error
	toggleErr    error
	mine         []activity.Activity
	summary      activity.Summary
	staff        activity.StaffSummary
	admin        activity.AdminSummary
	users        []auth.User
	banCalls     []int64
	reviewCalls  []string
	applicants   []activity.Applicant
	createdWith  *activity.Payload
	registered   *upstream.RegisterPayload
	profileUser  auth.User
}

func (f *fakePlatform) ListActivities(context.Context, activity.FilterParams) (upstream.Page[activity.Activity], error) {
	return f.listPage, f.listErr
}
func (f *fakePlatform) GetActivity(context.Context, int64) (activity.Detail, error) {
	return f.detail, f.detailErr
}
func (f *fakePlatform) ToggleRegistration(context.Context, int64) error { return f.toggleErr }
func (f *fakePlatform) MyActivities(context.Context) ([]activity.Activity, error) {
	return f.mine, nil
}
func (f *fakePlatform) MySummary(context.Context) (activity.Summary, error) { return f.summary, nil }
func (f *fakePlatform) StaffSummary(context.Context) (activity.StaffSummary, error) {
	return f.staff, nil
}
func (f *fakePlatform) AdminSummary(context.Context) (activity.AdminSummary, error) {
	return f.admin, nil
}
func (f *fakePlatform) CreateActivity(_ context.Context, p activity.Payload) (activity.Detail, error) {
	f.createdWith = &p
	return activity.Detail{}, nil
}
func (f *fakePlatform) UpdateActivity(_ context.Context, _ int64, p activity.Payload) (activity.Detail, error) {
	f.createdWith = &p
	return activity.Detail{}, nil
}
func (f *fakePlatform) Applicants(context.Context, int64) ([]activity.Applicant, error) {
	return f.applicants, nil
}
func (f *fakePlatform) ReviewApplicant(_ context.Context, activityID, applicantID int64, approve bool) error {
	f.reviewCalls = append(f.reviewCalls, "applicant")
	return nil
}
func (f *fakePlatform) ReviewActivity(_ context.Context, id int64, approve bool) error {
	f.reviewCalls = append(f.reviewCalls, "activity")
	return nil
}
func (f *fakePlatform) Register(_ context.Context, p upstream.RegisterPayload) (auth.User, error) {
	f.registered = &p
	return auth.User{ID: 99, Role: auth.RoleStudent}, nil
}
func (f *fakePlatform) UpdateProfile(context.Context, upstream.ProfilePayload) (auth.User, error) {
	return f.profileUser, nil
}
func (f *fakePlatform) ListUsers(context.Context) ([]auth.User, error) { return f.users, nil }
func (f *fakePlatform) SetBanStatus(_ context.Context, id int64, _ bool) (auth.User, error) {
	f.banCalls = append(f.banCalls, id)
	return auth.User{ID: id}, nil
}

func snapFor(role auth.Role) session.Snapshot {
	return session.Snapshot{
		Phase:      session.PhaseAuthenticated,
		User:       &auth.User{ID: 1, FirstName: "Ada", LastName: "Lovelace", Role: role, Email: "ada@example.edu"},
		TokenArmed: true,
	}
}

func anonymousSnap() session.Snapshot {
	return session.Snapshot{Phase: session.PhaseAnonymous}
}

func newTestRouter(t *testing.T, sess *fakeSessionService, platform *fakePlatform) http.Handler {
	t.Helper()
	renderer, err := NewTemplateRenderer(slog.Default())
	require.NoError(t, err)
	return NewRouter(RouterServices{
		Session:    sess,
		Activities: platform,
		Accounts:   platform,
		Users:      platform,
		Renderer:   renderer,
		Logger:     slog.Default(),
	})
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLoginPageRenders(t *testing.T) {
	router := newTestRouter(t, &fakeSessionService{snap: anonymousSnap()}, &fakePlatform{})
	rec := get(router, "/login")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in")
}

func TestLoginSubmitBouncesToRequestedPage(t *testing.T) {
	sess := &fakeSessionService{
		snap:      anonymousSnap(),
		loginUser: auth.User{ID: 1, Role: auth.RoleStudent},
	}
	router := newTestRouter(t, sess, &fakePlatform{})

	rec := postForm(router, "/login", url.Values{
		"email":        {"ada@example.edu"},
		"password":     {"pw"},
		"redirect_uri": {"/student/activities?page=2"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/student/activities?page=2", rec.Header().Get("Location"))
	assert.Equal(t, 1, sess.loginCalls)
}

func TestLoginSubmitDefaultsToRoleHome(t *testing.T) {
	sess := &fakeSessionService{snap: anonymousSnap(), loginUser: auth.User{ID: 1, Role: auth.RoleAdmin}}
	router := newTestRouter(t, sess, &fakePlatform{})

	rec := postForm(router, "/login", url.Values{"email": {"a@b.c"}, "password": {"pw"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestLoginSubmitFailureRerendersForm(t *testing.T) {
	sess := &fakeSessionService{snap: anonymousSnap(), loginErr: apperrors.Authentication("invalid credentials")}
	router := newTestRouter(t, sess, &fakePlatform{})

	rec := postForm(router, "/login", url.Values{"email": {"a@b.c"}, "password": {"bad"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
	assert.Contains(t, rec.Body.String(), "a@b.c", "email survives the round trip")
}

func TestLoginSubmitSanitizesExternalRedirect(t *testing.T) {
	sess := &fakeSessionService{snap: anonymousSnap(), loginUser: auth.User{ID: 1, Role: auth.RoleStudent}}
	router := newTestRouter(t, sess, &fakePlatform{})

	rec := postForm(router, "/login", url.Values{
		"email":        {"a@b.c"},
		"password":     {"pw"},
		"redirect_uri": {"https://evil.example/"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/student", rec.Header().Get("Location"))
}

func TestLogoutRedirectsToLogin(t *testing.T) {
	sess := &fakeSessionService{snap: snapFor(auth.RoleStudent)}
	router := newTestRouter(t, sess, &fakePlatform{})

	rec := postForm(router, "/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.True(t, sess.logoutted)
}

func TestRegisterSubmitCreatesStudentAccount(t *testing.T) {
	platform := &fakePlatform{}
	router := newTestRouter(t, &fakeSessionService{snap: anonymousSnap()}, platform)

	rec := postForm(router, "/register", url.Values{
		"firstname":  {"Ada"},
		"lastname":   {"Lovelace"},
		"student_id": {"650123"},
		"faculty_id": {"2"},
		"major_id":   {"4"},
		"email":      {"ada@example.edu"},
		"password":   {"longenough"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?registered=1", rec.Header().Get("Location"))
	require.NotNil(t, platform.registered)
	assert.Equal(t, "STUDENT", platform.registered.Role)
}

func TestRegisterSubmitValidationFailure(t *testing.T) {
	platform := &fakePlatform{}
	router := newTestRouter(t, &fakeSessionService{snap: anonymousSnap()}, platform)

	rec := postForm(router, "/register", url.Values{
		"firstname": {"Ada"},
		"email":     {"not-an-email"},
		"password":  {"short"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, platform.registered, "invalid form must not reach the platform")
	assert.Contains(t, rec.Body.String(), "fix the errors")
}

func TestStudentDashboardRendersTotals(t *testing.T) {
	platform := &fakePlatform{
		summary: activity.Summary{TotalHours: 12.5, TotalPoints: 30},
		mine: []activity.Activity{
			{ID: 4, Title: "Beach cleanup", StartTime: time.Now(), Status: activity.StatusApproved},
		},
	}
	router := newTestRouter(t, &fakeSessionService{snap: snapFor(auth.RoleStudent)}, platform)

	rec := get(router, "/student")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "12.5")
	assert.Contains(t, rec.Body.String(), "Beach cleanup")
}

func TestActivitiesPagePaginates(t *testing.T) {
	platform := &fakePlatform{
		listPage: upstream.Page[activity.Activity]{
			Items: []activity.Activity{{ID: 1, Title: "Tree planting"}},
			Total: 35,
		},
	}
	router := newTestRouter(t, &fakeSessionService{snap: snapFor(auth.RoleStudent)}, platform)

	rec := get(router, "/student/activities?page=2&page_size=10")
	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "Tree planting")
	assert.Contains(t, body, "page=1", "previous link present")
	assert.Contains(t, body, "page=3", "next link present while under total")
}

func TestActivityDetailUnknownIDIs404(t *testing.T) {
	router := newTestRouter(t, &fakeSessionService{snap: snapFor(auth.RoleStudent)}, &fakePlatform{})
	rec := get(router, "/student/activities/abc")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestActivityApplyRejectionShowsBanner(t *testing.T) {
	platform := &fakePlatform{toggleErr: apperrors.Validation("activity is full")}
	router := newTestRouter(t, &fakeSessionService{snap: snapFor(auth.RoleStudent)}, platform)

	rec := postForm(router, "/student/activities/5/apply", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "rejected=")
}

func TestStaffCreateActivity(t *testing.T) {
	platform := &fakePlatform{}
	router := newTestRouter(t, &fakeSessionService{snap: snapFor(auth.RoleStaff)}, platform)

	rec := postForm(router, "/staff/activities/new", url.Values{
		"title":            {"Orientation support"},
		"description":      {"Help welcome new students"},
		"category":         {"ASSIST"},
		"start_time":       {"2026-09-10T09:00"},
		"end_time":         {"2026-09-10T17:00"},
		"max_participants": {"20"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/staff/activities", rec.Header().Get("Location"))
	require.NotNil(t, platform.createdWith)
	assert.Equal(t, activity.CategoryAssist, platform.createdWith.Category)
	assert.Equal(t, 20, platform.createdWith.MaxParticipants)
}

func TestStaffCreateActivityInvalidForm(t *testing.T) {
	platform := &fakePlatform{}
	router := newTestRouter(t, &fakeSessionService{snap: snapFor(auth.RoleStaff)}, platform)

	rec := postForm(router, "/staff/activities/new", url.Values{"title": {""}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, platform.createdWith)
}

func TestAdminBanUser(t *testing.T) {
	platform := &fakePlatform{}
	router := newTestRouter(t, &fakeSessionService{snap: snapFor(auth.RoleAdmin)}, platform)

	rec := postForm(router, "/admin/users/5/ban", url.Values{"banned": {"true"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []int64{5}, platform.banCalls)
}

func TestAdminApprovalReview(t *testing.T) {
	platform := &fakePlatform{}
	router := newTestRouter(t, &fakeSessionService{snap: snapFor(auth.RoleAdmin)}, platform)

	rec := postForm(router, "/admin/approval/7/approve", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"activity"}, platform.reviewCalls)
}

func TestAdminApprovalBadVerdictIs404(t *testing.T) {
	platform := &fakePlatform{}
	router := newTestRouter(t, &fakeSessionService{snap: snapFor(auth.RoleAdmin)}, platform)

	rec := postForm(router, "/admin/approval/7/maybe", url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, platform.reviewCalls)
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	router := newTestRouter(t, &fakeSessionService{snap: anonymousSnap()}, &fakePlatform{})
	rec := get(router, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestUnauthorizedPageForWrongRole(t *testing.T) {
	router := newTestRouter(t, &fakeSessionService{snap: snapFor(auth.RoleStaff)}, &fakePlatform{})
	rec := get(router, "/unauthorized")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized")
}

func TestHealthzBypassesGuard(t *testing.T) {
	router := newTestRouter(t, &fakeSessionService{snap: session.Snapshot{Phase: session.PhaseBootstrapping}}, &fakePlatform{})
	rec := get(router, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t, &fakeSessionService{snap: anonymousSnap()}, &fakePlatform{})
	rec := get(router, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileSubmitUpdatesSessionUser(t *testing.T) {
	sess := &fakeSessionService{snap: snapFor(auth.RoleStudent)}
	platform := &fakePlatform{profileUser: auth.User{ID: 1, FirstName: "Updated", Role: auth.RoleStudent}}
	router := newTestRouter(t, sess, platform)

	rec := postForm(router, "/student/profile", url.Values{
		"firstname": {"Updated"},
		"lastname":  {"Lovelace"},
		"email":     {"ada@example.edu"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	require.NotNil(t, sess.updated)
	assert.Equal(t, "Updated", sess.updated.FirstName)
}

func TestUpstreamFailureRendersErrorPage(t *testing.T) {
	platform := &fakePlatform{listErr: apperrors.Wrap(errors.New("connection refused"), apperrors.ErrCodeTransport, "upstream down")}
	router := newTestRouter(t, &fakeSessionService{snap: snapFor(auth.RoleStudent)}, platform)

	rec := get(router, "/student/activities")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not be reached")
}
