package httpx

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/volunteerhub/webclient/internal/errors"
	"github.com/volunteerhub/webclient/internal/upstream"
)

// LoginPage renders the login form. The guard already bounces an
// authenticated session to its role home before this handler runs.
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Sign in", CurrentPage: PageLogin}).
		With("RedirectURI", safeRedirectPath(r.URL.Query().Get("redirect_uri"))).
		With("Registered", r.URL.Query().Get("registered") == "1").
		With("Email", "").
		Build()
	h.render(w, "page-login", data)
}

// LoginSubmit authenticates the session. On success it bounces back to the
// page the guard redirected from, or to the role home. On failure the form is
// re-rendered with the server's message and the password dropped.
func (h *Handlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	redirect := safeRedirectPath(r.PostFormValue("redirect_uri"))

	if email == "" || password == "" {
		data := NewTemplateData(r, PageMeta{Title: "Sign in", CurrentPage: PageLogin}).
			WithError("Email and password are required.").
			With("Email", email).
			With("RedirectURI", redirect).
			Build()
		h.renderStatus(w, "page-login", data, http.StatusBadRequest)
		return
	}

	user, err := h.Session.Login(r.Context(), email, password)
	if err != nil {
		msg := "Login failed. Please try again."
		if apperrors.IsAuthentication(err) || apperrors.IsValidation(err) {
			msg = err.Error()
		}
		data := NewTemplateData(r, PageMeta{Title: "Sign in", CurrentPage: PageLogin}).
			WithError(msg).
			With("Email", email).
			With("RedirectURI", redirect).
			Build()
		h.renderStatus(w, "page-login", data, http.StatusUnauthorized)
		return
	}

	if redirect == "/" {
		redirect = user.Role.HomePath()
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// RegisterPage renders the student account creation form.
func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Create account", CurrentPage: PageRegister}).
		With("Form", upstream.RegisterPayload{Role: "STUDENT"}).
		Build()
	h.render(w, "page-register", data)
}

// RegisterSubmit creates an account and bounces to login. Registration never
// logs the session in; the platform hands out tokens only through login.
func (h *Handlers) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	payload := upstream.RegisterPayload{
		FirstName: strings.TrimSpace(r.PostFormValue("firstname")),
		LastName:  strings.TrimSpace(r.PostFormValue("lastname")),
		StudentID: strings.TrimSpace(r.PostFormValue("student_id")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Password:  r.PostFormValue("password"),
		Role:      "STUDENT",
	}
	if v, err := strconv.ParseInt(r.PostFormValue("faculty_id"), 10, 64); err == nil {
		payload.FacultyID = v
	}
	if v, err := strconv.ParseInt(r.PostFormValue("major_id"), 10, 64); err == nil {
		payload.MajorID = v
	}

	renderWithErrors := func(status int, fieldErrs map[string]string, msg string) {
		builder := NewTemplateData(r, PageMeta{Title: "Create account", CurrentPage: PageRegister}).
			With("Form", payload).
			WithFieldErrors(fieldErrs)
		if msg != "" {
			builder.WithError(msg)
		}
		h.renderStatus(w, "page-register", builder.Build(), status)
	}

	if err := h.Validate.Struct(payload); err != nil {
		renderWithErrors(http.StatusBadRequest, h.validationErrors(err), "Please fix the errors below.")
		return
	}

	if _, err := h.Accounts.Register(r.Context(), payload); err != nil {
		if apperrors.IsValidation(err) {
			fieldErrs := map[string]string{}
			if f := apperrors.GetField(err); f != "" {
				fieldErrs[f] = err.Error()
			}
			renderWithErrors(http.StatusBadRequest, fieldErrs, err.Error())
			return
		}
		h.renderUpstreamError(w, r, err)
		return
	}

	http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
}

// LogoutSubmit ends the session and returns to the login page. Logout is
// idempotent, so a stale double submit still lands on login cleanly.
func (h *Handlers) LogoutSubmit(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Logout(r.Context()); err != nil {
		h.logger().Warn("logout failed", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
