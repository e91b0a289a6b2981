package workers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/unedp/careers/internal/mailer"
	"github.com/unedp/careers/internal/models"
	pgrepo "github.com/unedp/careers/internal/repositories/postgres"
)

// OutboxWorker drains pending notification jobs. Delivery is retried up to
// MaxAttempts; after that a job is parked as failed. The intake path never
// waits on this loop.
type OutboxWorker struct {
	Outbox pgrepo.OutboxRepository
	Mailer mailer.Mailer

	Logger *logrus.Logger

	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
	From        string
}

func (w *OutboxWorker) Start(ctx context.Context) error {
	if w.Outbox == nil || w.Mailer == nil {
		return errors.New("OutboxWorker missing dependency: Outbox/Mailer must be set")
	}
	if w.Interval <= 0 {
		w.Interval = 30 * time.Second
	}
	if w.BatchSize <= 0 {
		w.BatchSize = 20
	}
	if w.MaxAttempts <= 0 {
		w.MaxAttempts = 5
	}
	if w.From == "" {
		w.From = mailer.FromAddress
	}
	if w.Logger == nil {
		w.Logger = logrus.New()
	}

	go w.run(ctx)
	return nil
}

func (w *OutboxWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Drain(ctx)
		}
	}
}

// Drain processes one batch of pending jobs. Exposed so tests and the main
// loop share the same path.
func (w *OutboxWorker) Drain(ctx context.Context) {
	jobs, err := w.Outbox.ClaimPending(ctx, w.BatchSize)
	if err != nil {
		w.Logger.WithError(err).Warn("outbox claim failed")
		return
	}

	for i := range jobs {
		w.deliver(ctx, &jobs[i])
	}
}

func (w *OutboxWorker) deliver(ctx context.Context, job *models.EmailJob) {
	log := w.Logger.WithFields(logrus.Fields{
		"email_job_id":   job.ID,
		"application_id": job.ApplicationID,
		"attempt":        job.Attempts + 1,
	})

	var payload models.ConfirmationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		log.WithError(err).Error("outbox payload unreadable, parking job")
		_ = w.Outbox.MarkAttempt(ctx, job.ID, w.MaxAttempts, w.MaxAttempts, "unreadable payload: "+err.Error())
		return
	}

	html, err := mailer.Confirmation(payload.ApplicantName, payload.JobTitle, payload.Deadline)
	if err != nil {
		log.WithError(err).Error("confirmation render failed, parking job")
		_ = w.Outbox.MarkAttempt(ctx, job.ID, w.MaxAttempts, w.MaxAttempts, "render failed: "+err.Error())
		return
	}

	msgID, err := w.Mailer.Send(ctx, mailer.Message{
		From:    w.From,
		To:      job.Recipient,
		Subject: job.Subject,
		HTML:    html,
	})
	if err != nil {
		log.WithError(err).Warn("confirmation send failed")
		if merr := w.Outbox.MarkAttempt(ctx, job.ID, job.Attempts+1, w.MaxAttempts, err.Error()); merr != nil {
			log.WithError(merr).Error("failed to record send attempt")
		}
		return
	}

	if merr := w.Outbox.MarkSent(ctx, job.ID, time.Now().UTC()); merr != nil {
		log.WithError(merr).Error("failed to mark job sent")
		return
	}
	log.WithField("message_id", msgID).Info("confirmation sent")
}
