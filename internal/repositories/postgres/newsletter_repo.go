package postgres

import (
	"context"
	"errors"

	"github.com/unedp/careers/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrDuplicateEmail = errors.New("email already subscribed")

type NewsletterRepository interface {
	Insert(ctx context.Context, s *models.NewsletterSignup) error
}

type newsletterRepo struct {
	db *gorm.DB
}

func NewNewsletterRepo(db *gorm.DB) NewsletterRepository {
	return &newsletterRepo{db: db}
}

func (r *newsletterRepo) Insert(ctx context.Context, s *models.NewsletterSignup) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDuplicateEmail
	}
	return nil
}
