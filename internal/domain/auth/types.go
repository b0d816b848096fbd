package auth

// Package auth contains domain-level types for the authenticated session.
// It is pure and free of transport/adapter concerns.

import "time"

// Role represents a platform authorization role.
// Kept in its upstream string form for easy persistence and comparison.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleStaff   Role = "STAFF"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether the role is one of the three platform roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// HomePath returns the landing path for the role, e.g. "/student".
func (r Role) HomePath() string {
	switch r {
	case RoleStudent:
		return "/student"
	case RoleStaff:
		return "/staff"
	case RoleAdmin:
		return "/admin"
	}
	return "/login"
}

// User is the canonical user record after upstream normalization.
// Optional string fields coalesce to "" and numeric totals default to 0 so
// consumers never have to re-check presence; fields that are meaningfully
// absent (faculty/major linkage, profile image) stay pointers.
type User struct {
	ID           int64      `json:"id"`
	StudentID    string     `json:"student_id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"firstname"`
	LastName     string     `json:"lastname"`
	Role         Role       `json:"role"`
	IsBanned     bool       `json:"is_banned"`
	FacultyID    *int64     `json:"faculty_id"`
	MajorID      *int64     `json:"major_id"`
	FacultyName  string     `json:"faculty_name,omitempty"`
	MajorName    string     `json:"major_name,omitempty"`
	ProfileImage *string    `json:"profile_image"`
	TotalHours   float64    `json:"total_hours"`
	TotalPoints  float64    `json:"total_points"`
	CreatedAt    *time.Time `json:"created_at"`
}

// FullName returns "First Last" for display.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
