package models

import "time"

type ApplicationStatus string

const (
	StatusNew         ApplicationStatus = "new"
	StatusReviewing   ApplicationStatus = "reviewing"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusInterview   ApplicationStatus = "interview"
	StatusOffered     ApplicationStatus = "offered"
	StatusRejected    ApplicationStatus = "rejected"
	StatusWithdrawn   ApplicationStatus = "withdrawn"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusNew, StatusReviewing, StatusShortlisted, StatusInterview,
		StatusOffered, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// Transitions is the allowed status adjacency table. It is deliberately
// fully permissive today: staff move applications freely between any of the
// seven statuses. Tightening the pipeline (e.g. making rejected/withdrawn
// terminal) is a data change here, not a code change.
var Transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusNew:         {StatusNew, StatusReviewing, StatusShortlisted, StatusInterview, StatusOffered, StatusRejected, StatusWithdrawn},
	StatusReviewing:   {StatusNew, StatusReviewing, StatusShortlisted, StatusInterview, StatusOffered, StatusRejected, StatusWithdrawn},
	StatusShortlisted: {StatusNew, StatusReviewing, StatusShortlisted, StatusInterview, StatusOffered, StatusRejected, StatusWithdrawn},
	StatusInterview:   {StatusNew, StatusReviewing, StatusShortlisted, StatusInterview, StatusOffered, StatusRejected, StatusWithdrawn},
	StatusOffered:     {StatusNew, StatusReviewing, StatusShortlisted, StatusInterview, StatusOffered, StatusRejected, StatusWithdrawn},
	StatusRejected:    {StatusNew, StatusReviewing, StatusShortlisted, StatusInterview, StatusOffered, StatusRejected, StatusWithdrawn},
	StatusWithdrawn:   {StatusNew, StatusReviewing, StatusShortlisted, StatusInterview, StatusOffered, StatusRejected, StatusWithdrawn},
}

func CanTransition(from, to ApplicationStatus) bool {
	for _, next := range Transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Application struct {
	ID    string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobID string `gorm:"column:job_id;type:uuid;index" json:"job_id"`

	FullName string  `gorm:"column:full_name;type:text" json:"full_name"`
	Email    string  `gorm:"column:email;type:text" json:"email"`
	Phone    *string `gorm:"column:phone;type:text" json:"phone"`

	LinkedinURL  *string `gorm:"column:linkedin_url;type:text" json:"linkedin_url"`
	PortfolioURL *string `gorm:"column:portfolio_url;type:text" json:"portfolio_url"`

	CurrentCompany  *string `gorm:"column:current_company;type:text" json:"current_company"`
	CurrentTitle    *string `gorm:"column:current_title;type:text" json:"current_title"`
	YearsExperience *int    `gorm:"column:years_experience;type:integer" json:"years_experience"`

	CoverLetter *string `gorm:"column:cover_letter;type:text" json:"cover_letter"`
	ResumeURL   *string `gorm:"column:resume_url;type:text" json:"resume_url"`

	Status     ApplicationStatus `gorm:"column:status;type:text" json:"status"`
	AdminNotes *string           `gorm:"column:admin_notes;type:text" json:"admin_notes"`

	// client-supplied de-duplication token; a replayed key returns the
	// original row instead of inserting a second one
	IdempotencyKey *string `gorm:"column:idempotency_key;type:text;uniqueIndex" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Application) TableName() string { return "applications" }
