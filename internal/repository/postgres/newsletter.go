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

type newsletterRepository struct {
	db *sqlx.DB
}

func NewNewsletterRepository(db *sqlx.DB) repository.NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (r *newsletterRepository) Create(ctx context.Context, newsletter *model.Newsletter) error {
	if newsletter.ID == uuid.Nil {
		newsletter.ID = uuid.New()
	}
	newsletter.SentAt = time.Now()

	query := `
		INSERT INTO newsletters (id, subject, content, recipient_count, sent_at)
		VALUES (:id, :subject, :content, :recipient_count, :sent_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, newsletter); err != nil {
		return fmt.Errorf("failed to create newsletter: %w", err)
	}
	return nil
}

func (r *newsletterRepository) CreateRecipient(ctx context.Context, recipient *model.NewsletterRecipient) error {
	if recipient.ID == uuid.Nil {
		recipient.ID = uuid.New()
	}
	recipient.CreatedAt = time.Now()

	// ON CONFLICT DO NOTHING keeps the one-row-per-(newsletter, user)
	// invariant even if a recipient slips into the batch twice.
	query := `
		INSERT INTO newsletter_recipients (
			id, newsletter_id, user_id, email, unsubscribe_token, created_at
		) VALUES (
			:id, :newsletter_id, :user_id, :email, :unsubscribe_token, :created_at
		)
		ON CONFLICT (newsletter_id, user_id) DO NOTHING
	`
	if _, err := r.db.NamedExecContext(ctx, query, recipient); err != nil {
		return fmt.Errorf("failed to create newsletter recipient: %w", err)
	}
	return nil
}

func (r *newsletterRepository) GetRecipientByToken(ctx context.Context, token string) (*model.NewsletterRecipient, error) {
	var recipient model.NewsletterRecipient
	query := `
		SELECT id, newsletter_id, user_id, email, unsubscribe_token, created_at
		FROM newsletter_recipients
		WHERE unsubscribe_token = $1
	`
	if err := r.db.GetContext(ctx, &recipient, query, token); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("unsubscribe token", err)
		}
		return nil, fmt.Errorf("failed to look up unsubscribe token: %w", err)
	}
	return &recipient, nil
}
