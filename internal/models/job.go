package models

import (
	"time"

	"github.com/lib/pq"
)

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
	EmploymentConsultant EmploymentType = "consultant"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract,
		EmploymentInternship, EmploymentConsultant:
		return true
	}
	return false
}

type Job struct {
	ID       string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title    string         `gorm:"column:title;type:text" json:"title"`
	Slug     string         `gorm:"column:slug;type:text;uniqueIndex" json:"slug"`
	Location string         `gorm:"column:location;type:text" json:"location"`
	Type     EmploymentType `gorm:"column:type;type:text" json:"type"`

	Department  *string `gorm:"column:department;type:text" json:"department"`
	Level       *string `gorm:"column:level;type:text" json:"level"`
	SalaryRange *string `gorm:"column:salary_range;type:text" json:"salary_range"`

	Description      string         `gorm:"column:description;type:text" json:"description"`
	Requirements     pq.StringArray `gorm:"column:requirements;type:text[]" json:"requirements"`
	Responsibilities pq.StringArray `gorm:"column:responsibilities;type:text[]" json:"responsibilities"`
	Benefits         pq.StringArray `gorm:"column:benefits;type:text[]" json:"benefits"`

	ClosingDate *time.Time `gorm:"column:closing_date;type:timestamptz" json:"closing_date"`
	IsActive    bool       `gorm:"column:is_active" json:"is_active"`
	Featured    bool       `gorm:"column:featured" json:"featured"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Job) TableName() string { return "jobs" }

// Open reports whether the posting currently accepts applications.
func (j *Job) Open(now time.Time) bool {
	if !j.IsActive {
		return false
	}
	if j.ClosingDate != nil && j.ClosingDate.Before(now) {
		return false
	}
	return true
}
