package newsletter

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumehub/notify-api/internal/email"
	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/service/notification"
	apperrors "github.com/resumehub/notify-api/pkg/errors"
	"github.com/resumehub/notify-api/pkg/messaging"
)

type fakeProfileRepo struct {
	profiles  []*model.Profile
	listCalls int
}

func (r *fakeProfileRepo) Get(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	for _, p := range r.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("profile", nil)
}

func (r *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	for _, p := range r.profiles {
		if p.EmailOrEmpty() == email {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("profile", nil)
}

func (r *fakeProfileRepo) ListWithEmail(_ context.Context) ([]*model.Profile, error) {
	r.listCalls++
	var out []*model.Profile
	for _, p := range r.profiles {
		if p.EmailOrEmpty() != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

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

type fakeNewsletterRepo struct {
	mu          sync.Mutex
	newsletters []*model.Newsletter
	recipients  []*model.NewsletterRecipient
}

func (r *fakeNewsletterRepo) Create(_ context.Context, n *model.Newsletter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.newsletters = append(r.newsletters, n)
	return nil
}

func (r *fakeNewsletterRepo) CreateRecipient(_ context.Context, recipient *model.NewsletterRecipient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.recipients {
		if existing.NewsletterID == recipient.NewsletterID && existing.UserID == recipient.UserID {
			return nil
		}
	}
	if recipient.ID == uuid.Nil {
		recipient.ID = uuid.New()
	}
	r.recipients = append(r.recipients, recipient)
	return nil
}

func (r *fakeNewsletterRepo) GetRecipientByToken(_ context.Context, token string) (*model.NewsletterRecipient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, recipient := range r.recipients {
		if recipient.UnsubscribeToken == token {
			return recipient, nil
		}
	}
	return nil, apperrors.NotFound("unsubscribe token", nil)
}

type fixture struct {
	svc      Service
	sender   *email.Recorder
	repo     *fakeNewsletterRepo
	profiles *fakeProfileRepo
	settings *fakeSettingsRepo
}

func newFixture(t *testing.T, profiles ...*model.Profile) *fixture {
	t.Helper()

	sender := email.NewRecorder()
	logger := zerolog.Nop()
	profileRepo := &fakeProfileRepo{profiles: profiles}
	settingsRepo := &fakeSettingsRepo{rows: make(map[uuid.UUID]*model.NotificationSettings)}
	repo := &fakeNewsletterRepo{}
	selector := notification.NewSelector(profileRepo, settingsRepo)

	svc := NewService(
		repo,
		settingsRepo,
		selector,
		notification.NewComposer(),
		notification.NewDispatcher(sender, &logger),
		sender,
		messaging.NewNopBroker(),
		"http://localhost:8080",
		&logger,
	)

	return &fixture{svc: svc, sender: sender, repo: repo, profiles: profileRepo, settings: settingsRepo}
}

func strptr(s string) *string { return &s }

func profile(name, addr string) *model.Profile {
	p := &model.Profile{Name: name, Role: model.RoleUser}
	p.ID = uuid.New()
	if addr != "" {
		p.Email = strptr(addr)
	}
	return p
}

func TestSendTestModeWritesNothing(t *testing.T) {
	f := newFixture(t, profile("Alice", "alice@example.com"))

	result, err := f.svc.Send(context.Background(), &model.SendNewsletterRequest{
		Subject:   "Preview",
		Content:   "<p>Hello</p>",
		IsTest:    true,
		TestEmail: "me@example.com",
	})
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.Empty(t, f.repo.newsletters)
	assert.Empty(t, f.repo.recipients)
	assert.Zero(t, f.profiles.listCalls, "test mode must not query profiles")

	sent := f.sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "me@example.com", sent[0].To)
	assert.Equal(t, "[Test] Preview", sent[0].Subject)
}

func TestSendTestModeRequiresTestEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Send(context.Background(), &model.SendNewsletterRequest{
		Subject: "Preview",
		Content: "<p>Hello</p>",
		IsTest:  true,
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestSendRequiresAnAudienceMode(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Send(context.Background(), &model.SendNewsletterRequest{
		Subject: "Digest",
		Content: "<p>News</p>",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestSendCreatesRecordsAndDelivers(t *testing.T) {
	alice := profile("Alice", "alice@example.com")
	bob := profile("Bob", "bob@example.com")
	f := newFixture(t, alice, bob)

	result, err := f.svc.Send(context.Background(), &model.SendNewsletterRequest{
		Subject:          "Digest",
		Content:          "<p>News</p>",
		SendToSubscribed: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.RecipientCount)
	assert.Equal(t, 2, result.DeliveredCount)
	assert.Equal(t, 0, result.FailedCount)

	require.Len(t, f.repo.newsletters, 1)
	assert.Equal(t, 2, f.repo.newsletters[0].RecipientCount)
	require.Len(t, f.repo.recipients, 2)

	tokens := map[string]bool{}
	for _, r := range f.repo.recipients {
		require.NotEmpty(t, r.UnsubscribeToken)
		tokens[r.UnsubscribeToken] = true
	}
	assert.Len(t, tokens, 2, "tokens must be unique per recipient")

	sent := f.sender.Sent()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[0].HTML, "newsletters/unsubscribe/")
}

func TestSendCountsFailuresWithoutAbortingBatch(t *testing.T) {
	var profiles []*model.Profile
	for i := 0; i < 5; i++ {
		profiles = append(profiles, profile(fmt.Sprintf("User%d", i), fmt.Sprintf("user%d@example.com", i)))
	}
	f := newFixture(t, profiles...)
	f.sender.FailFor["user1@example.com"] = fmt.Errorf("rejected")
	f.sender.FailFor["user3@example.com"] = fmt.Errorf("mailbox full")

	result, err := f.svc.Send(context.Background(), &model.SendNewsletterRequest{
		Subject:          "Digest",
		Content:          "<p>News</p>",
		SendToSubscribed: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.RecipientCount)
	assert.Equal(t, 3, result.DeliveredCount)
	assert.Equal(t, 2, result.FailedCount)

	// Delivery records are written before the send, so failed
	// recipients still have a row.
	assert.Len(t, f.repo.recipients, 5)
}

func TestSendExcludesUnsubscribedUsers(t *testing.T) {
	alice := profile("Alice", "alice@example.com")
	bob := profile("Bob", "bob@example.com")
	f := newFixture(t, alice, bob)

	bobSettings := model.DefaultNotificationSettings(bob.ID)
	bobSettings.Newsletters = false
	bobSettings.JobPostings = false
	bobSettings.Reminders = false
	require.NoError(t, f.settings.Upsert(context.Background(), bobSettings))

	result, err := f.svc.Send(context.Background(), &model.SendNewsletterRequest{
		Subject:          "Digest",
		Content:          "<p>News</p>",
		SendToSubscribed: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.RecipientCount)
	sent := f.sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "alice@example.com", sent[0].To)
}

func TestUnsubscribeDisablesNewsletterFlags(t *testing.T) {
	alice := profile("Alice", "alice@example.com")
	f := newFixture(t, alice)

	_, err := f.svc.Send(context.Background(), &model.SendNewsletterRequest{
		Subject:   "Digest",
		Content:   "<p>News</p>",
		SendToAll: true,
	})
	require.NoError(t, err)
	require.Len(t, f.repo.recipients, 1)

	err = f.svc.Unsubscribe(context.Background(), f.repo.recipients[0].UnsubscribeToken)
	require.NoError(t, err)

	settings, err := f.settings.Get(context.Background(), alice.ID)
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.False(t, settings.Newsletters)
	assert.False(t, settings.JobPostings)
	assert.False(t, settings.Reminders)
	// Non-newsletter categories are untouched
	assert.True(t, settings.ApplicationUpdates)
	assert.True(t, settings.DocumentSharing)
}

func TestUnsubscribeUnknownToken(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Unsubscribe(context.Background(), "nope")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
