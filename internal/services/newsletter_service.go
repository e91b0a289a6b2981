package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unedp/careers/internal/models"
	pgrepo "github.com/unedp/careers/internal/repositories/postgres"
	"github.com/unedp/careers/internal/utils"
)

type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (*models.NewsletterSignup, error)
}

type newsletterService struct {
	signups pgrepo.NewsletterRepository
}

func NewNewsletterService(signups pgrepo.NewsletterRepository) NewsletterService {
	return &newsletterService{signups: signups}
}

func (s *newsletterService) Subscribe(ctx context.Context, email string) (*models.NewsletterSignup, error) {
	const op = "NewsletterService.Subscribe"

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is not a valid address", err)
	}

	row := &models.NewsletterSignup{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.signups.Insert(ctx, row); err != nil {
		if errors.Is(err, pgrepo.ErrDuplicateEmail) {
			return nil, utils.E(utils.CodeConflict, op, "email is already subscribed", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to save signup", err)
	}
	return row, nil
}
