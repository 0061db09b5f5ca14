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
	apperrors "github.com/resumehub/notify-api/pkg/errors"
)

type applicationRepository struct {
	*BaseRepository
}

func NewApplicationRepository(db *sqlx.DB) repository.ApplicationRepository {
	return &applicationRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *applicationRepository) Get(ctx context.Context, id uuid.UUID) (*model.JobApplication, error) {
	var app model.JobApplication
	query := `
		SELECT id, user_id, job_id, document_id, status, feedback, created_at, updated_at
		FROM job_applications
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &app, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("application", err)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

// UpdateStatusWithActivity commits the status change and the activity
// entry together, so the history can never disagree with the row.
func (r *applicationRepository) UpdateStatusWithActivity(ctx context.Context, id uuid.UUID, status model.ApplicationStatus, feedback *string, entry *model.ActivityLog) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE job_applications
			SET status = $2, feedback = COALESCE($3, feedback), updated_at = $4
			WHERE id = $1
		`
		result, err := tx.ExecContext(ctx, query, id, status, feedback, time.Now())
		if err != nil {
			return fmt.Errorf("failed to update application status: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check update result: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("application", nil)
		}

		if entry.ID == uuid.Nil {
			entry.ID = uuid.New()
		}
		entry.CreatedAt = time.Now()

		insert := `
			INSERT INTO activity_logs (id, user_id, application_id, action, detail, created_at)
			VALUES (:id, :user_id, :application_id, :action, :detail, :created_at)
		`
		if _, err := tx.NamedExecContext(ctx, insert, entry); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}
		return nil
	})
}
