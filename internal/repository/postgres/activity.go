package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/repository"
)

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) ListForApplication(ctx context.Context, applicationID uuid.UUID) ([]*model.ActivityLog, error) {
	var entries []*model.ActivityLog
	query := `
		SELECT id, user_id, application_id, action, detail, created_at
		FROM activity_logs
		WHERE application_id = $1
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &entries, query, applicationID); err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return entries, nil
}
