package postgres

import (
	"context"
	"time"

	"github.com/unedp/careers/internal/models"
	"gorm.io/gorm"
)

type OutboxRepository interface {
	// ClaimPending returns up to limit pending jobs, oldest first.
	ClaimPending(ctx context.Context, limit int) ([]models.EmailJob, error)
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
	// MarkAttempt records a failed delivery attempt; once attempts reach
	// maxAttempts the job is parked as failed.
	MarkAttempt(ctx context.Context, id string, attempts int, maxAttempts int, lastError string) error
}

type outboxRepo struct {
	db *gorm.DB
}

func NewOutboxRepo(db *gorm.DB) OutboxRepository {
	return &outboxRepo{db: db}
}

func (r *outboxRepo) ClaimPending(ctx context.Context, limit int) ([]models.EmailJob, error) {
	var jobs []models.EmailJob
	err := r.db.WithContext(ctx).
		Where("status = ?", models.EmailPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

func (r *outboxRepo) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.EmailJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  models.EmailSent,
			"sent_at": sentAt,
		}).Error
}

func (r *outboxRepo) MarkAttempt(ctx context.Context, id string, attempts int, maxAttempts int, lastError string) error {
	status := models.EmailPending
	if attempts >= maxAttempts {
		status = models.EmailFailed
	}
	return r.db.WithContext(ctx).
		Model(&models.EmailJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"attempts":   attempts,
			"last_error": lastError,
		}).Error
}
