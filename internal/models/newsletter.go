package models

import "time"

type NewsletterSignup struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (NewsletterSignup) TableName() string { return "newsletter_signups" }
