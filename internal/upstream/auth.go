package upstream

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/volunteerhub/webclient/internal/domain/auth"
	apperrors "github.com/volunteerhub/webclient/internal/errors"
)

// flexFloat tolerates numeric fields the platform serves as either JSON
// numbers or quoted strings (the accumulated-totals endpoints disagree).
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// wireUser is the platform's user shape before normalization.
type wireUser struct {
	ID           int64      `json:"id"`
	StudentID    *string    `json:"student_id"`
	Email        *string    `json:"email"`
	FirstName    string     `json:"firstname"`
	LastName     string     `json:"lastname"`
	Role         string     `json:"role"`
	IsBanned     bool       `json:"is_banned"`
	FacultyID    *int64     `json:"faculty_id"`
	MajorID      *int64     `json:"major_id"`
	FacultyName  *string    `json:"faculty_name"`
	MajorName    *string    `json:"major_name"`
	ProfileImage *string    `json:"profile_image"`
	TotalHours   *flexFloat `json:"total_hours"`
	TotalPoints  *flexFloat `json:"total_points"`
	CreatedAt    *string    `json:"created_at"`
}

// normalize maps the wire shape into the canonical record: nullable strings
// coalesce to "", totals default to 0, and the role must be a known value.
func (w wireUser) normalize() (auth.User, error) {
	role := auth.Role(strings.ToUpper(strings.TrimSpace(w.Role)))
	if !role.Valid() {
		return auth.User{}, apperrors.Transportf("unexpected role %q for user %d", w.Role, w.ID)
	}

	u := auth.User{
		ID:           w.ID,
		StudentID:    deref(w.StudentID),
		Email:        deref(w.Email),
		FirstName:    w.FirstName,
		LastName:     w.LastName,
		Role:         role,
		IsBanned:     w.IsBanned,
		FacultyID:    w.FacultyID,
		MajorID:      w.MajorID,
		FacultyName:  deref(w.FacultyName),
		MajorName:    deref(w.MajorName),
		ProfileImage: w.ProfileImage,
	}
	if w.TotalHours != nil {
		u.TotalHours = float64(*w.TotalHours)
	}
	if w.TotalPoints != nil {
		u.TotalPoints = float64(*w.TotalPoints)
	}
	if w.CreatedAt != nil {
		if ts, err := time.Parse(time.RFC3339, *w.CreatedAt); err == nil {
			u.CreatedAt = &ts
		}
	}
	return u, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Login authenticates with credentials. A success=false envelope or a missing
// payload fails with an authentication error carrying the server message.
func (c *Client) Login(ctx context.Context, email, password string) (string, auth.User, error) {
	env, err := c.call(ctx, callParams{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"email": email, "password": password},
	})
	if err != nil {
		return "", auth.User{}, err
	}

	payload, err := unwrap[struct {
		User  wireUser `json:"user"`
		Token string   `json:"token"`
	}](env, apperrors.ErrCodeAuthentication, "login failed")
	if err != nil {
		return "", auth.User{}, err
	}
	if payload.Token == "" {
		return "", auth.User{}, apperrors.Authentication("login response carried no token")
	}

	user, err := payload.User.normalize()
	if err != nil {
		return "", auth.User{}, err
	}
	return payload.Token, user, nil
}

// CurrentUser fetches the profile for the currently armed token.
func (c *Client) CurrentUser(ctx context.Context) (auth.User, error) {
	env, err := c.call(ctx, callParams{method: http.MethodGet, path: "/auth/me"})
	if err != nil {
		return auth.User{}, err
	}
	wu, err := unwrap[wireUser](env, apperrors.ErrCodeAuthentication, "cannot fetch current user")
	if err != nil {
		return auth.User{}, err
	}
	return wu.normalize()
}

// Refresh rotates the bearer token. The call bypasses the refresh decorator:
// a rejected refresh must never trigger another refresh.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	env, err := c.call(ctx, callParams{method: http.MethodPost, path: "/auth/refresh", plain: true})
	if err != nil {
		return "", err
	}
	payload, err := unwrap[struct {
		Token string `json:"token"`
	}](env, apperrors.ErrCodeAuthentication, "cannot refresh session")
	if err != nil {
		return "", err
	}
	if payload.Token == "" {
		return "", apperrors.Authentication("refresh response carried no token")
	}
	return payload.Token, nil
}

// RegisterPayload is the student account creation body.
type RegisterPayload struct {
	FirstName string `json:"firstname"  validate:"required,max=100"`
	LastName  string `json:"lastname"   validate:"required,max=100"`
	StudentID string `json:"student_id" validate:"required,max=20"`
	FacultyID int64  `json:"faculty_id" validate:"required,min=1"`
	MajorID   int64  `json:"major_id"   validate:"required,min=1"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	Role      string `json:"role"       validate:"required,oneof=STUDENT STAFF ADMIN"`
}

// Register creates a new account. Registration does not log the session in;
// the register page bounces to login afterwards.
func (c *Client) Register(ctx context.Context, payload RegisterPayload) (auth.User, error) {
	env, err := c.call(ctx, callParams{method: http.MethodPost, path: "/auth/register", body: payload})
	if err != nil {
		return auth.User{}, err
	}
	wu, err := unwrap[wireUser](env, apperrors.ErrCodeValidation, "registration failed")
	if err != nil {
		return auth.User{}, err
	}
	return wu.normalize()
}

// ProfilePayload is the self-service profile update body.
type ProfilePayload struct {
	FirstName    string  `json:"firstname" validate:"required,max=100"`
	LastName     string  `json:"lastname"  validate:"required,max=100"`
	Email        string  `json:"email"     validate:"omitempty,email"`
	FacultyID    *int64  `json:"faculty_id,omitempty"`
	MajorID      *int64  `json:"major_id,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

// UpdateProfile updates the current user's profile and returns the new record.
func (c *Client) UpdateProfile(ctx context.Context, payload ProfilePayload) (auth.User, error) {
	env, err := c.call(ctx, callParams{method: http.MethodPut, path: "/auth/me", body: payload})
	if err != nil {
		return auth.User{}, err
	}
	wu, err := unwrap[wireUser](env, apperrors.ErrCodeValidation, "profile update failed")
	if err != nil {
		return auth.User{}, err
	}
	return wu.normalize()
}
