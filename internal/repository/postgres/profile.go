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

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	query := `
		SELECT id, email, name, password_hash, role, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("profile", err)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var profile model.Profile
	query := `
		SELECT id, email, name, password_hash, role, created_at, updated_at
		FROM profiles
		WHERE email = $1
	`
	if err := r.db.GetContext(ctx, &profile, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("profile", err)
		}
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) ListWithEmail(ctx context.Context) ([]*model.Profile, error) {
	var profiles []*model.Profile
	query := `
		SELECT id, email, name, password_hash, role, created_at, updated_at
		FROM profiles
		WHERE email IS NOT NULL AND email <> ''
		ORDER BY created_at
	`
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}
