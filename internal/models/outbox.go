package models

import (
	"time"

	"gorm.io/datatypes"
)

type EmailJobStatus string

const (
	EmailPending EmailJobStatus = "pending"
	EmailSent    EmailJobStatus = "sent"
	EmailFailed  EmailJobStatus = "failed"
)

// EmailJob is an outbox row: the durable intent to send one notification.
// It is written in the same transaction as the application it confirms and
// drained later by the outbox worker, so a mail outage never loses or fails
// a submission.
type EmailJob struct {
	ID            string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ApplicationID string `gorm:"column:application_id;type:uuid;index" json:"application_id"`

	Recipient string         `gorm:"column:recipient;type:text" json:"recipient"`
	Subject   string         `gorm:"column:subject;type:text" json:"subject"`
	Payload   datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`

	Status    EmailJobStatus `gorm:"column:status;type:text;index" json:"status"`
	Attempts  int            `gorm:"column:attempts;type:integer" json:"attempts"`
	LastError *string        `gorm:"column:last_error;type:text" json:"last_error"`

	CreatedAt time.Time  `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	SentAt    *time.Time `gorm:"column:sent_at;type:timestamptz" json:"sent_at"`
}

func (EmailJob) TableName() string { return "email_outbox" }

// ConfirmationPayload is the template data stored in an EmailJob's payload.
type ConfirmationPayload struct {
	ApplicantName string `json:"applicant_name"`
	JobTitle      string `json:"job_title"`
	Deadline      string `json:"deadline"`
}
