package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/repository"
	apperrors "github.com/resumehub/notify-api/pkg/errors"
)

type jobRepository struct {
	db *sqlx.DB
}

func NewJobRepository(db *sqlx.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Get(ctx context.Context, id uuid.UUID) (*model.JobPosting, error) {
	var job model.JobPosting
	query := `
		SELECT id, title, company, location, description, created_at, updated_at
		FROM job_postings
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("job posting", err)
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return &job, nil
}
