package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/unedp/careers/internal/mailer"
	"github.com/unedp/careers/internal/models"
	mongorepo "github.com/unedp/careers/internal/repositories/mongo"
	pgrepo "github.com/unedp/careers/internal/repositories/postgres"
	"github.com/unedp/careers/internal/utils"
	"gorm.io/datatypes"
)

// ResumeVerifier proves that a résumé reference was issued by the upload
// broker rather than supplied as an arbitrary URL.
type ResumeVerifier interface {
	VerifyClaim(token string) (resumeURL string, err error)
}

type SubmitInput struct {
	JobID string `json:"job_id"`

	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`

	LinkedinURL  *string `json:"linkedin_url"`
	PortfolioURL *string `json:"portfolio_url"`

	CurrentCompany  *string `json:"current_company"`
	CurrentTitle    *string `json:"current_title"`
	YearsExperience *int    `json:"years_experience"`

	CoverLetter *string `json:"cover_letter"`

	// claim token from the upload broker; optional
	ResumeClaimToken string `json:"resume_claim_token"`

	// optional client token closing the double-submit gap
	IdempotencyKey string `json:"idempotency_key"`
}

type ApplicationService interface {
	Submit(ctx context.Context, in SubmitInput) (*models.Application, error)
	// UpdateStatus is staff-only; actorID must identify a caller that passed
	// the authorization gate.
	UpdateStatus(ctx context.Context, actorID, actorEmail, id string, status models.ApplicationStatus, notes string) (*models.Application, error)
	Get(ctx context.Context, id string) (*models.Application, error)
	List(ctx context.Context, f pgrepo.ApplicationFilter) ([]models.Application, error)
}

type applicationService struct {
	apps    pgrepo.ApplicationRepository
	jobs    pgrepo.JobRepository
	resumes ResumeVerifier
	events  mongorepo.EventRepository
	log     *logrus.Logger
}

func NewApplicationService(apps pgrepo.ApplicationRepository, jobs pgrepo.JobRepository, resumes ResumeVerifier, events mongorepo.EventRepository, log *logrus.Logger) ApplicationService {
	if log == nil {
		log = logrus.New()
	}
	return &applicationService{apps: apps, jobs: jobs, resumes: resumes, events: events, log: log}
}

func (s *applicationService) Submit(ctx context.Context, in SubmitInput) (*models.Application, error) {
	const op = "ApplicationService.Submit"

	// local validation first: no partial state is ever created on a reject
	if strings.TrimSpace(in.FullName) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "full_name is required", nil)
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is not a valid address", err)
	}
	if in.YearsExperience != nil && *in.YearsExperience < 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "years_experience must be a non-negative integer", nil)
	}
	if in.JobID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job_id is required", nil)
	}

	var resumeURL *string
	if in.ResumeClaimToken != "" {
		if s.resumes == nil {
			return nil, utils.E(utils.CodeInternal, op, "resume verifier is not configured", nil)
		}
		url, err := s.resumes.VerifyClaim(in.ResumeClaimToken)
		if err != nil {
			return nil, err
		}
		resumeURL = &url
	}

	// a replayed idempotency key returns the original submission
	if in.IdempotencyKey != "" {
		existing, err := s.apps.GetByIdempotencyKey(ctx, in.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeInternal, op, "failed to check idempotency key", err)
		}
	}

	job, err := s.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job posting not found", err)
		}
		return nil, utils.E(utils.CodeUnavailable, op, "failed to load job posting", err)
	}

	now := time.Now().UTC()
	if !job.Open(now) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job posting is closed and no longer accepts applications", nil)
	}

	app := &models.Application{
		ID:              uuid.NewString(),
		JobID:           job.ID,
		FullName:        strings.TrimSpace(in.FullName),
		Email:           email,
		Phone:           in.Phone,
		LinkedinURL:     in.LinkedinURL,
		PortfolioURL:    in.PortfolioURL,
		CurrentCompany:  in.CurrentCompany,
		CurrentTitle:    in.CurrentTitle,
		YearsExperience: in.YearsExperience,
		CoverLetter:     in.CoverLetter,
		ResumeURL:       resumeURL,
		Status:          models.StatusNew, // forced, whatever the caller sent
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		app.IdempotencyKey = &key
	}

	payload, err := json.Marshal(models.ConfirmationPayload{
		ApplicantName: app.FullName,
		JobTitle:      job.Title,
		Deadline:      mailer.Deadline(now),
	})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to build notification payload", err)
	}

	outbox := &models.EmailJob{
		ID:            uuid.NewString(),
		ApplicationID: app.ID,
		Recipient:     app.Email,
		Subject:       mailer.ConfirmationSubject(job.Title),
		Payload:       datatypes.JSON(payload),
		Status:        models.EmailPending,
		CreatedAt:     now,
	}

	if err := s.apps.InsertWithOutbox(ctx, app, outbox); err != nil {
		// a concurrent replay of the same key loses the insert race; hand
		// back the row that won
		if in.IdempotencyKey != "" {
			if existing, lerr := s.apps.GetByIdempotencyKey(ctx, in.IdempotencyKey); lerr == nil {
				return existing, nil
			}
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to persist application", err)
	}

	s.log.WithFields(logrus.Fields{
		"application_id": app.ID,
		"job_id":         job.ID,
	}).Info("application submitted")

	return app, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, actorID, actorEmail, id string, status models.ApplicationStatus, notes string) (*models.Application, error) {
	const op = "ApplicationService.UpdateStatus"

	if actorID == "" {
		return nil, utils.E(utils.CodeForbidden, op, "administrator access required", nil)
	}
	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application id is required", nil)
	}
	if !status.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown status value", nil)
	}

	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}

	if !models.CanTransition(app.Status, status) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "status transition not allowed", nil)
	}

	prev := app.Status
	app.Status = status
	app.AdminNotes = &notes // verbatim, empty string included
	app.UpdatedAt = time.Now().UTC()

	if err := s.apps.UpdateStatus(ctx, app); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update application", err)
	}

	if s.events != nil {
		if aerr := s.events.Append(ctx, &models.AdminEvent{
			ActorID:    actorID,
			ActorEmail: actorEmail,
			Action:     "application.status_changed",
			SubjectID:  app.ID,
			Detail: map[string]any{
				"from": string(prev),
				"to":   string(status),
			},
		}); aerr != nil {
			s.log.WithError(aerr).Warn("failed to append status change event")
		}
	}

	return app, nil
}

func (s *applicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	const op = "ApplicationService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application id is required", nil)
	}
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}
	return app, nil
}

func (s *applicationService) List(ctx context.Context, f pgrepo.ApplicationFilter) ([]models.Application, error) {
	const op = "ApplicationService.List"

	apps, err := s.apps.List(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return apps, nil
}
