package postgres

import (
	"context"
	"errors"

	"github.com/unedp/careers/internal/models"
	"github.com/unedp/careers/internal/utils"
	"gorm.io/gorm"
)

type ApplicationFilter struct {
	JobID string // optional
}

type ApplicationRepository interface {
	// InsertWithOutbox persists the application and its notification intent
	// in one transaction.
	InsertWithOutbox(ctx context.Context, a *models.Application, job *models.EmailJob) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*models.Application, error)
	List(ctx context.Context, f ApplicationFilter) ([]models.Application, error)
	UpdateStatus(ctx context.Context, a *models.Application) error
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) InsertWithOutbox(ctx context.Context, a *models.Application, job *models.EmailJob) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		if job != nil {
			if err := tx.Create(job).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *applicationRepo) GetByIdempotencyKey(ctx context.Context, key string) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *applicationRepo) List(ctx context.Context, f ApplicationFilter) ([]models.Application, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if f.JobID != "" {
		q = q.Where("job_id = ?", f.JobID)
	}
	var apps []models.Application
	err := q.Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, a *models.Application) error {
	res := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"status":      a.Status,
			"admin_notes": a.AdminNotes,
			"updated_at":  a.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
