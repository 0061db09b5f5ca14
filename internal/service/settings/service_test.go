package settings

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/service/notification"
	apperrors "github.com/resumehub/notify-api/pkg/errors"
)

type fakeSettingsRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.NotificationSettings
}

func (r *fakeSettingsRepo) Get(_ context.Context, userID uuid.UUID) (*model.NotificationSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[userID]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, settings *model.NotificationSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *settings
	r.rows[settings.UserID] = &copied
	return nil
}

type fakeProfileRepo struct{}

func (fakeProfileRepo) Get(_ context.Context, _ uuid.UUID) (*model.Profile, error) {
	return nil, apperrors.NotFound("profile", nil)
}

func (fakeProfileRepo) GetByEmail(_ context.Context, _ string) (*model.Profile, error) {
	return nil, apperrors.NotFound("profile", nil)
}

func (fakeProfileRepo) ListWithEmail(_ context.Context) ([]*model.Profile, error) {
	return nil, nil
}

func boolptr(b bool) *bool { return &b }

func newService() (Service, *fakeSettingsRepo) {
	repo := &fakeSettingsRepo{rows: make(map[uuid.UUID]*model.NotificationSettings)}
	selector := notification.NewSelector(fakeProfileRepo{}, repo)
	return NewService(repo, selector), repo
}

func TestGetDefaultsToAllTrue(t *testing.T) {
	svc, _ := newService()
	userID := uuid.New()

	settings, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)

	assert.True(t, settings.Newsletters)
	assert.True(t, settings.JobPostings)
	assert.True(t, settings.ApplicationUpdates)
	assert.True(t, settings.DocumentSharing)
	assert.True(t, settings.Reminders)
}

func TestUpdatePersistsAndIsVisibleOnNextGet(t *testing.T) {
	svc, repo := newService()
	userID := uuid.New()

	updated, err := svc.Update(context.Background(), userID, &model.UpdateNotificationSettingsRequest{
		Newsletters:        boolptr(false),
		JobPostings:        boolptr(true),
		ApplicationUpdates: boolptr(true),
		DocumentSharing:    boolptr(false),
		Reminders:          boolptr(true),
	})
	require.NoError(t, err)
	assert.False(t, updated.Newsletters)
	assert.False(t, updated.DocumentSharing)

	stored, err := repo.Get(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.Newsletters)

	// The cached copy from any earlier read must not mask the update
	fresh, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, fresh.Newsletters)
	assert.True(t, fresh.Reminders)
}
