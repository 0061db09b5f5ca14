package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/resumehub/notify-api/internal/model"
)

type ProfileRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	ListWithEmail(ctx context.Context) ([]*model.Profile, error)
}

type SettingsRepository interface {
	// Get returns nil (no error) when the user has no stored row
	Get(ctx context.Context, userID uuid.UUID) (*model.NotificationSettings, error)
	Upsert(ctx context.Context, settings *model.NotificationSettings) error
}

type ApplicationRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.JobApplication, error)
	// UpdateStatusWithActivity persists the status change and its
	// activity entry in one transaction
	UpdateStatusWithActivity(ctx context.Context, id uuid.UUID, status model.ApplicationStatus, feedback *string, entry *model.ActivityLog) error
}

type JobRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.JobPosting, error)
}

type ActivityRepository interface {
	ListForApplication(ctx context.Context, applicationID uuid.UUID) ([]*model.ActivityLog, error)
}

type NewsletterRepository interface {
	Create(ctx context.Context, newsletter *model.Newsletter) error
	CreateRecipient(ctx context.Context, recipient *model.NewsletterRecipient) error
	GetRecipientByToken(ctx context.Context, token string) (*model.NewsletterRecipient, error)
}
