package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/unedp/careers/internal/models"
	mongorepo "github.com/unedp/careers/internal/repositories/mongo"
	pgrepo "github.com/unedp/careers/internal/repositories/postgres"
	"github.com/unedp/careers/internal/utils"
)

type JobService interface {
	Create(ctx context.Context, actorID string, j *models.Job) (*models.Job, error)
	Update(ctx context.Context, actorID string, j *models.Job) (*models.Job, error)
	Delete(ctx context.Context, actorID, id string) error
	Get(ctx context.Context, id string) (*models.Job, error)
	GetBySlug(ctx context.Context, slug string) (*models.Job, error)
	// List returns postings newest first; activeOnly narrows to open roles
	// for the public site.
	List(ctx context.Context, activeOnly bool) ([]models.Job, error)
}

type jobService struct {
	jobs   pgrepo.JobRepository
	events mongorepo.EventRepository
	log    *logrus.Logger
}

func NewJobService(jobs pgrepo.JobRepository, events mongorepo.EventRepository, log *logrus.Logger) JobService {
	if log == nil {
		log = logrus.New()
	}
	return &jobService{jobs: jobs, events: events, log: log}
}

func (s *jobService) Create(ctx context.Context, actorID string, j *models.Job) (*models.Job, error) {
	const op = "JobService.Create"

	if err := validateJob(op, j); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	j.ID = uuid.NewString()
	j.CreatedAt = now
	j.UpdatedAt = now

	if err := s.jobs.Insert(ctx, j); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}

	s.appendEvent(ctx, actorID, "job.created", j.ID)
	return j, nil
}

func (s *jobService) Update(ctx context.Context, actorID string, j *models.Job) (*models.Job, error) {
	const op = "JobService.Update"

	if j.ID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job id is required", nil)
	}
	if err := validateJob(op, j); err != nil {
		return nil, err
	}

	j.UpdatedAt = time.Now().UTC()
	if err := s.jobs.Update(ctx, j); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update job", err)
	}

	s.appendEvent(ctx, actorID, "job.updated", j.ID)
	return j, nil
}

func (s *jobService) Delete(ctx context.Context, actorID, id string) error {
	const op = "JobService.Delete"

	if id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "job id is required", nil)
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete job", err)
	}

	s.appendEvent(ctx, actorID, "job.deleted", id)
	return nil
}

func (s *jobService) Get(ctx context.Context, id string) (*models.Job, error) {
	const op = "JobService.Get"

	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	return j, nil
}

func (s *jobService) GetBySlug(ctx context.Context, slug string) (*models.Job, error) {
	const op = "JobService.GetBySlug"

	j, err := s.jobs.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	return j, nil
}

func (s *jobService) List(ctx context.Context, activeOnly bool) ([]models.Job, error) {
	const op = "JobService.List"

	jobs, err := s.jobs.List(ctx, activeOnly)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return jobs, nil
}

func validateJob(op string, j *models.Job) error {
	if j == nil || strings.TrimSpace(j.Title) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "title is required", nil)
	}
	if strings.TrimSpace(j.Slug) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "slug is required", nil)
	}
	if !j.Type.Valid() {
		return utils.E(utils.CodeInvalidArgument, op, "invalid employment type", nil)
	}
	return nil
}

func (s *jobService) appendEvent(ctx context.Context, actorID, action, subjectID string) {
	if s.events == nil || actorID == "" {
		return
	}
	if err := s.events.Append(ctx, &models.AdminEvent{
		ActorID:   actorID,
		Action:    action,
		SubjectID: subjectID,
	}); err != nil {
		s.log.WithError(err).Warn("failed to append job event")
	}
}
