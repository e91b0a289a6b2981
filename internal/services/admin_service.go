package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/unedp/careers/internal/cache"
	"github.com/unedp/careers/internal/credstore"
	"github.com/unedp/careers/internal/models"
	mongorepo "github.com/unedp/careers/internal/repositories/mongo"
	pgrepo "github.com/unedp/careers/internal/repositories/postgres"
	"github.com/unedp/careers/internal/utils"
)

// Session is the authenticated caller as seen by this layer: identity plus
// the credential store's metadata bag (a possibly stale cache of the admin
// directory).
type Session struct {
	UserID   string
	Email    string
	Metadata map[string]any
}

func (s *Session) metadataIsAdmin() bool {
	if s == nil || s.Metadata == nil {
		return false
	}
	v, ok := s.Metadata["is_admin"]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// AuthResult carries the gate's decision. RepairWarning is set when the
// caller is a verified admin but the metadata write-back failed; it never
// blocks the request.
type AuthResult struct {
	Status        models.AdminStatus
	RepairWarning string
}

type AdminService interface {
	// Authorize decides whether the session's bearer may use protected
	// routes. Fast path: trusted session metadata. Otherwise the admin
	// directory is authoritative and a positive answer is repaired back
	// into the metadata bag and the cache.
	Authorize(ctx context.Context, sess *Session) (*AuthResult, error)
	// VerifyStatus is the explicit, idempotent sync action: it always
	// consults the directory and repairs, regardless of session state.
	VerifyStatus(ctx context.Context, sess *Session) (*AuthResult, error)
	// Invalidate drops the cached admin status for an identity.
	Invalidate(ctx context.Context, userID string) error
}

type adminService struct {
	directory pgrepo.AdminUserRepository
	creds     credstore.Store
	cache     cache.Cache
	events    mongorepo.EventRepository
	log       *logrus.Logger
}

const adminCacheTTL = 10 * time.Minute

func NewAdminService(directory pgrepo.AdminUserRepository, creds credstore.Store, c cache.Cache, events mongorepo.EventRepository, log *logrus.Logger) AdminService {
	if log == nil {
		log = logrus.New()
	}
	return &adminService{directory: directory, creds: creds, cache: c, events: events, log: log}
}

func cacheKey(userID string) string { return "admin:" + userID }

func (s *adminService) Authorize(ctx context.Context, sess *Session) (*AuthResult, error) {
	const op = "AdminService.Authorize"

	if sess == nil || sess.UserID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "not authenticated, please log in", nil)
	}

	// fast path: the session already asserts admin, no directory call
	if sess.metadataIsAdmin() {
		return &AuthResult{Status: models.AdminStatus{
			IsAdmin: true,
			Email:   sess.Email,
		}}, nil
	}

	// second tier: cached directory answer (positive entries only)
	if s.cache != nil {
		var cached models.AdminStatus
		hit, err := s.cache.GetJSON(ctx, cacheKey(sess.UserID), &cached)
		if err != nil {
			s.log.WithError(err).Warn("admin cache read failed")
		} else if hit && cached.IsAdmin {
			return &AuthResult{Status: cached}, nil
		}
	}

	return s.resolveFromDirectory(ctx, op, sess)
}

func (s *adminService) VerifyStatus(ctx context.Context, sess *Session) (*AuthResult, error) {
	const op = "AdminService.VerifyStatus"

	if sess == nil || sess.UserID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "not authenticated, please log in", nil)
	}

	res, err := s.resolveFromDirectory(ctx, op, sess)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		if aerr := s.events.Append(ctx, &models.AdminEvent{
			ActorID:    sess.UserID,
			ActorEmail: sess.Email,
			Action:     "admin.verified",
			SubjectID:  sess.UserID,
		}); aerr != nil {
			s.log.WithError(aerr).Warn("failed to append admin.verified event")
		}
	}
	return res, nil
}

func (s *adminService) Invalidate(ctx context.Context, userID string) error {
	if s.cache == nil || userID == "" {
		return nil
	}
	return s.cache.Del(ctx, cacheKey(userID))
}

// resolveFromDirectory runs the authoritative lookup and, on a positive
// answer, the best-effort repair of session metadata and cache.
func (s *adminService) resolveFromDirectory(ctx context.Context, op string, sess *Session) (*AuthResult, error) {
	row, err := s.directory.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotRegistered, op,
				"account is not registered as an administrator, contact an administrator", err)
		}
		// transport failure is retryable and must never read as "not admin"
		return nil, utils.E(utils.CodeUnavailable, op, "admin directory unavailable, try again", err)
	}

	status := models.AdminStatus{
		IsAdmin:    row.IsAdmin,
		Email:      row.Email,
		FullName:   row.FullName,
		Department: row.Department,
	}

	if !row.IsAdmin {
		return nil, utils.E(utils.CodeForbidden, op,
			"account does not have administrator access", nil)
	}

	res := &AuthResult{Status: status}

	// repair: write the proven admin flag back into the metadata bag. The
	// write is not transactional with the read; every gate miss re-derives
	// from the directory, so brief staleness is acceptable.
	if !sess.metadataIsAdmin() && s.creds != nil {
		if werr := s.creds.UpdateUserMetadata(ctx, sess.UserID, map[string]any{
			"is_admin":   true,
			"full_name":  row.FullName,
			"department": row.Department,
		}); werr != nil {
			s.log.WithError(werr).WithField("user_id", sess.UserID).
				Warn("admin metadata repair failed")
			res.RepairWarning = "admin verified, but session metadata sync failed"
		}
	}

	if s.cache != nil {
		if cerr := s.cache.SetJSON(ctx, cacheKey(sess.UserID), status, adminCacheTTL); cerr != nil {
			s.log.WithError(cerr).Warn("admin cache write failed")
		}
	}

	return res, nil
}
