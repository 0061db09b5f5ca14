package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/repository"
)

const (
	settingsCacheTTL     = time.Minute
	settingsCacheCleanup = 5 * time.Minute
)

// Recipient is one deliverable target of a notification
type Recipient struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// Selector resolves the recipient set for a notification category.
// Users without an email are skipped even when opted in; settings
// rows are cached briefly to keep broadcast fan-outs off the
// settings table.
type Selector struct {
	profiles repository.ProfileRepository
	settings repository.SettingsRepository
	cache    *gocache.Cache
}

func NewSelector(profiles repository.ProfileRepository, settings repository.SettingsRepository) *Selector {
	return &Selector{
		profiles: profiles,
		settings: settings,
		cache:    gocache.New(settingsCacheTTL, settingsCacheCleanup),
	}
}

// SettingsFor returns the stored settings for a user, falling back
// to the all-true defaults when no row exists
func (s *Selector) SettingsFor(ctx context.Context, userID uuid.UUID) (*model.NotificationSettings, error) {
	key := userID.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.NotificationSettings), nil
	}

	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load notification settings: %w", err)
	}
	if settings == nil {
		settings = model.DefaultNotificationSettings(userID)
	}

	s.cache.Set(key, settings, gocache.DefaultExpiration)
	return settings, nil
}

// InvalidateSettings drops the cached settings row for a user
func (s *Selector) InvalidateSettings(userID uuid.UUID) {
	s.cache.Delete(userID.String())
}

// ForUser is the single-recipient degenerate form: it returns the
// user as a recipient only when the category flag is on and an
// email is present. A missing email is a data-quality condition,
// not an error.
func (s *Selector) ForUser(ctx context.Context, userID uuid.UUID, category model.NotificationCategory) (Recipient, bool, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return Recipient{}, false, err
	}
	if profile.EmailOrEmpty() == "" {
		return Recipient{}, false, nil
	}

	settings, err := s.SettingsFor(ctx, userID)
	if err != nil {
		return Recipient{}, false, err
	}
	if !settings.Enabled(category) {
		return Recipient{}, false, nil
	}

	return Recipient{
		UserID: profile.ID,
		Email:  profile.EmailOrEmpty(),
		Name:   profile.Name,
	}, true, nil
}

// Select returns every user with an email whose flag for the
// category is on
func (s *Selector) Select(ctx context.Context, category model.NotificationCategory) ([]Recipient, error) {
	profiles, err := s.profiles.ListWithEmail(ctx)
	if err != nil {
		return nil, err
	}

	var recipients []Recipient
	for _, profile := range profiles {
		settings, err := s.SettingsFor(ctx, profile.ID)
		if err != nil {
			return nil, err
		}
		if !settings.Enabled(category) {
			continue
		}
		recipients = append(recipients, Recipient{
			UserID: profile.ID,
			Email:  profile.EmailOrEmpty(),
			Name:   profile.Name,
		})
	}
	return recipients, nil
}

// NewsletterAudience resolves the audience of a newsletter send.
// sendToAll takes every user with an email; otherwise the audience
// is users with at least one newsletter-category flag on.
func (s *Selector) NewsletterAudience(ctx context.Context, sendToAll bool) ([]Recipient, error) {
	profiles, err := s.profiles.ListWithEmail(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(profiles))
	var recipients []Recipient
	for _, profile := range profiles {
		if _, dup := seen[profile.ID]; dup {
			continue
		}
		seen[profile.ID] = struct{}{}

		if !sendToAll {
			settings, err := s.SettingsFor(ctx, profile.ID)
			if err != nil {
				return nil, err
			}
			if !settings.SubscribedToNewsletters() {
				continue
			}
		}
		recipients = append(recipients, Recipient{
			UserID: profile.ID,
			Email:  profile.EmailOrEmpty(),
			Name:   profile.Name,
		})
	}
	return recipients, nil
}
