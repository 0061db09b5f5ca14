package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/repository"
	"github.com/resumehub/notify-api/internal/service/notification"
)

// Service reads and writes per-user notification opt-in flags
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.NotificationSettings, error)
	Update(ctx context.Context, userID uuid.UUID, req *model.UpdateNotificationSettingsRequest) (*model.NotificationSettings, error)
}

type service struct {
	repo     repository.SettingsRepository
	selector *notification.Selector
}

func NewService(repo repository.SettingsRepository, selector *notification.Selector) Service {
	return &service{repo: repo, selector: selector}
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*model.NotificationSettings, error) {
	return s.selector.SettingsFor(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, req *model.UpdateNotificationSettingsRequest) (*model.NotificationSettings, error) {
	settings := &model.NotificationSettings{
		UserID:             userID,
		Newsletters:        *req.Newsletters,
		JobPostings:        *req.JobPostings,
		ApplicationUpdates: *req.ApplicationUpdates,
		DocumentSharing:    *req.DocumentSharing,
		Reminders:          *req.Reminders,
	}
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	s.selector.InvalidateSettings(userID)
	return settings, nil
}
