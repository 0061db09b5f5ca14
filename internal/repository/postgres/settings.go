package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/repository"
)

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, userID uuid.UUID) (*model.NotificationSettings, error) {
	var settings model.NotificationSettings
	query := `
		SELECT user_id, newsletters, job_postings, application_updates,
		       document_sharing, reminders, updated_at
		FROM notification_settings
		WHERE user_id = $1
	`
	if err := r.db.GetContext(ctx, &settings, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification settings: %w", err)
	}
	return &settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *model.NotificationSettings) error {
	settings.UpdatedAt = time.Now()
	query := `
		INSERT INTO notification_settings (
			user_id, newsletters, job_postings, application_updates,
			document_sharing, reminders, updated_at
		) VALUES (
			:user_id, :newsletters, :job_postings, :application_updates,
			:document_sharing, :reminders, :updated_at
		)
		ON CONFLICT (user_id) DO UPDATE SET
			newsletters = EXCLUDED.newsletters,
			job_postings = EXCLUDED.job_postings,
			application_updates = EXCLUDED.application_updates,
			document_sharing = EXCLUDED.document_sharing,
			reminders = EXCLUDED.reminders,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("failed to upsert notification settings: %w", err)
	}
	return nil
}
