// Package activity contains domain types for volunteer activities,
// applications, and participation tallies.
package activity

import "time"

// Category classifies an activity.
type Category string

const (
	CategoryVolunteer Category = "VOLUNTEER"
	CategoryAssist    Category = "ASSIST"
	CategoryTraining  Category = "TRAINING"
)

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	switch c {
	case CategoryVolunteer, CategoryAssist, CategoryTraining:
		return true
	}
	return false
}

// Status is the lifecycle state of an activity.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is a recognized activity status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ApplicationStatus is the state of a student's application to an activity.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// Activity is a single volunteer activity as listed on the browser page.
type Activity struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Category            Category  `json:"category"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	Status              Status    `json:"status"`
	IsRegistered        bool      `json:"is_registered"`
	CoverImage          *string   `json:"cover_image"`
}

// Detail extends Activity with join data shown on the detail page.
type Detail struct {
	Activity
	FacultyName string `json:"faculty_name,omitempty"`
	MajorName   string `json:"major_name,omitempty"`
	CreatorName string `json:"creator_name,omitempty"`
}

// Applicant is one row on the staff applicant-review page.
type Applicant struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	ActivityID  int64             `json:"activity_id"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"applied_at"`
	FirstName   string            `json:"firstname"`
	LastName    string            `json:"lastname"`
	StudentID   string            `json:"student_id"`
	FacultyName string            `json:"faculty_name,omitempty"`
	MajorName   string            `json:"major_name,omitempty"`
}

// Summary aggregates a student's accumulated participation.
type Summary struct {
	TotalActivities int     `json:"total_activities"`
	TotalHours      float64 `json:"total_hours"`
	TotalPoints     float64 `json:"total_points"`
}

// StaffSummary aggregates the staff dashboard tiles.
type StaffSummary struct {
	TotalActivities    int `json:"total_activities"`
	PendingApprovals   int `json:"pending_approvals"`
	UpcomingActivities int `json:"upcoming_activities"`
}

// AdminSummary aggregates the admin dashboard tiles.
type AdminSummary struct {
	TotalUsers        int `json:"total_users"`
	TotalActivities   int `json:"total_activities"`
	PendingActivities int `json:"pending_activities"`
}

// Payload is the create/update form body for an activity.
type Payload struct {
	Title           string   `json:"title"            validate:"required,max=200"`
	Description     string   `json:"description"      validate:"max=4000"`
	Category        Category `json:"category"         validate:"required,oneof=VOLUNTEER ASSIST TRAINING"`
	StartTime       string   `json:"start_time"       validate:"required"`
	EndTime         string   `json:"end_time"         validate:"required"`
	MaxParticipants int      `json:"max_participants" validate:"required,min=1"`
	CoverImage      *string  `json:"cover_image,omitempty"`
}

// FilterParams narrows the activity browser listing. Zero values mean "no
// constraint"; the upstream client only encodes set fields.
type FilterParams struct {
	Page      int
	Limit     int
	Category  Category
	Status    Status
	Search    string
	StartDate string
	EndDate   string
	FacultyID int64
	MajorID   int64
}
