package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unedp/careers/internal/credstore"
	"github.com/unedp/careers/internal/models"
	"github.com/unedp/careers/internal/utils"
)

// --- mocks ---

type mockDirectory struct {
	getByIDFn func(ctx context.Context, id string) (*models.AdminUser, error)
	calls     int
}

func (m *mockDirectory) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	m.calls++
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, utils.ErrNotFound
}

type mockCredStore struct {
	updateFn    func(ctx context.Context, userID string, md map[string]any) error
	updateCalls int
	lastUpdate  map[string]any
}

func (m *mockCredStore) SignUp(context.Context, string, string, map[string]any) (*credstore.Session, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCredStore) SignIn(context.Context, string, string) (*credstore.Session, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCredStore) GetUser(context.Context, string) (*credstore.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCredStore) UpdateUserMetadata(ctx context.Context, userID string, md map[string]any) error {
	m.updateCalls++
	m.lastUpdate = md
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, md)
	}
	return nil
}

type memCache struct {
	data map[string]models.AdminStatus
}

func newMemCache() *memCache { return &memCache{data: map[string]models.AdminStatus{}} }

func (c *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if s, ok2 := dst.(*models.AdminStatus); ok2 {
		*s = v
		return true, nil
	}
	return false, nil
}

func (c *memCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	if s, ok := val.(models.AdminStatus); ok {
		c.data[key] = s
	}
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type mockEvents struct {
	appended []*models.AdminEvent
}

func (m *mockEvents) Append(_ context.Context, e *models.AdminEvent) error {
	m.appended = append(m.appended, e)
	return nil
}

func (m *mockEvents) ListRecent(context.Context, int64) ([]models.AdminEvent, error) {
	return nil, nil
}

func adminRow(isAdmin bool) *models.AdminUser {
	return &models.AdminUser{
		ID:         "user-1",
		Email:      "amina@unedp.org",
		FullName:   "Amina K.",
		Department: "Programmes",
		IsAdmin:    isAdmin,
	}
}

// --- Authorize ---

func TestAuthorizeNoSession(t *testing.T) {
	dir := &mockDirectory{}
	svc := NewAdminService(dir, &mockCredStore{}, newMemCache(), nil, nil)

	_, err := svc.Authorize(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	assert.Equal(t, 0, dir.calls)
}

func TestAuthorizeFastPathSkipsDirectory(t *testing.T) {
	dir := &mockDirectory{}
	creds := &mockCredStore{}
	svc := NewAdminService(dir, creds, newMemCache(), nil, nil)

	res, err := svc.Authorize(context.Background(), &Session{
		UserID:   "user-1",
		Email:    "amina@unedp.org",
		Metadata: map[string]any{"is_admin": true},
	})
	require.NoError(t, err)
	assert.True(t, res.Status.IsAdmin)
	assert.Equal(t, 0, dir.calls, "trusted session metadata must not hit the directory")
	assert.Equal(t, 0, creds.updateCalls)
}

func TestAuthorizeRepairPath(t *testing.T) {
	dir := &mockDirectory{
		getByIDFn: func(_ context.Context, id string) (*models.AdminUser, error) {
			return adminRow(true), nil
		},
	}
	creds := &mockCredStore{}
	c := newMemCache()
	svc := NewAdminService(dir, creds, c, nil, nil)

	sess := &Session{UserID: "user-1", Email: "amina@unedp.org"}
	res, err := svc.Authorize(context.Background(), sess)
	require.NoError(t, err)
	assert.True(t, res.Status.IsAdmin)
	assert.Empty(t, res.RepairWarning)
	assert.Equal(t, 1, dir.calls)

	// repair wrote the proven flag plus descriptive fields back
	require.Equal(t, 1, creds.updateCalls)
	assert.Equal(t, true, creds.lastUpdate["is_admin"])
	assert.Equal(t, "Amina K.", creds.lastUpdate["full_name"])
	assert.Equal(t, "Programmes", creds.lastUpdate["department"])

	// a second untrusted check is served from the cache, not the directory
	_, err = svc.Authorize(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 1, dir.calls)
}

func TestAuthorizeRepairedSessionUsesFastPath(t *testing.T) {
	dir := &mockDirectory{
		getByIDFn: func(_ context.Context, id string) (*models.AdminUser, error) {
			return adminRow(true), nil
		},
	}
	svc := NewAdminService(dir, &mockCredStore{}, newMemCache(), nil, nil)

	// session now carries the repaired metadata
	res, err := svc.Authorize(context.Background(), &Session{
		UserID:   "user-1",
		Metadata: map[string]any{"is_admin": true},
	})
	require.NoError(t, err)
	assert.True(t, res.Status.IsAdmin)
	assert.Equal(t, 0, dir.calls)
}

func TestAuthorizeNotRegistered(t *testing.T) {
	dir := &mockDirectory{} // default: not found
	svc := NewAdminService(dir, &mockCredStore{}, newMemCache(), nil, nil)

	_, err := svc.Authorize(context.Background(), &Session{UserID: "user-9"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeNotRegistered))
}

func TestAuthorizeDirectorySaysNo(t *testing.T) {
	dir := &mockDirectory{
		getByIDFn: func(_ context.Context, id string) (*models.AdminUser, error) {
			return adminRow(false), nil
		},
	}
	creds := &mockCredStore{}
	svc := NewAdminService(dir, creds, newMemCache(), nil, nil)

	_, err := svc.Authorize(context.Background(), &Session{UserID: "user-1"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
	assert.Equal(t, 0, creds.updateCalls, "no repair for non-admins")
}

func TestAuthorizeDirectoryUnavailable(t *testing.T) {
	dir := &mockDirectory{
		getByIDFn: func(_ context.Context, id string) (*models.AdminUser, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewAdminService(dir, &mockCredStore{}, newMemCache(), nil, nil)

	_, err := svc.Authorize(context.Background(), &Session{UserID: "user-1"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable),
		"a directory outage must never be reported as not-admin")
	assert.False(t, utils.IsCode(err, utils.CodeForbidden))
}

func TestAuthorizeRepairFailureStillAccepts(t *testing.T) {
	dir := &mockDirectory{
		getByIDFn: func(_ context.Context, id string) (*models.AdminUser, error) {
			return adminRow(true), nil
		},
	}
	creds := &mockCredStore{
		updateFn: func(context.Context, string, map[string]any) error {
			return errors.New("metadata write timed out")
		},
	}
	svc := NewAdminService(dir, creds, newMemCache(), nil, nil)

	res, err := svc.Authorize(context.Background(), &Session{UserID: "user-1"})
	require.NoError(t, err, "a verified admin must not be blocked by a failed repair")
	assert.True(t, res.Status.IsAdmin)
	assert.NotEmpty(t, res.RepairWarning)
}

// --- VerifyStatus ---

func TestVerifyStatusBypassesFastPath(t *testing.T) {
	dir := &mockDirectory{
		getByIDFn: func(_ context.Context, id string) (*models.AdminUser, error) {
			return adminRow(true), nil
		},
	}
	events := &mockEvents{}
	svc := NewAdminService(dir, &mockCredStore{}, newMemCache(), events, nil)

	// trusted metadata, but the sync action still consults the directory
	res, err := svc.VerifyStatus(context.Background(), &Session{
		UserID:   "user-1",
		Metadata: map[string]any{"is_admin": true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, dir.calls)
	assert.Equal(t, "Amina K.", res.Status.FullName)
	assert.Equal(t, "Programmes", res.Status.Department)
	assert.Equal(t, "amina@unedp.org", res.Status.Email)

	require.Len(t, events.appended, 1)
	assert.Equal(t, "admin.verified", events.appended[0].Action)
}

func TestVerifyStatusIdempotent(t *testing.T) {
	dir := &mockDirectory{
		getByIDFn: func(_ context.Context, id string) (*models.AdminUser, error) {
			return adminRow(true), nil
		},
	}
	svc := NewAdminService(dir, &mockCredStore{}, newMemCache(), nil, nil)

	sess := &Session{UserID: "user-1"}
	first, err := svc.VerifyStatus(context.Background(), sess)
	require.NoError(t, err)
	second, err := svc.VerifyStatus(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, 2, dir.calls, "every sync re-reads the directory")
}

func TestInvalidateDropsCache(t *testing.T) {
	dir := &mockDirectory{
		getByIDFn: func(_ context.Context, id string) (*models.AdminUser, error) {
			return adminRow(true), nil
		},
	}
	c := newMemCache()
	svc := NewAdminService(dir, &mockCredStore{}, c, nil, nil)

	sess := &Session{UserID: "user-1"}
	_, err := svc.Authorize(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 1, dir.calls)

	require.NoError(t, svc.Invalidate(context.Background(), "user-1"))

	_, err = svc.Authorize(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 2, dir.calls, "invalidation forces a fresh directory read")
}
