package model

import (
	"time"

	"github.com/google/uuid"
)

// Newsletter is the record of one send, created once per batch
type Newsletter struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Subject        string    `json:"subject" db:"subject"`
	Content        string    `json:"content" db:"content"`
	RecipientCount int       `json:"recipient_count" db:"recipient_count"`
	SentAt         time.Time `json:"sent_at" db:"sent_at"`
}

// NewsletterRecipient is one delivery row per (newsletter, user).
// Immutable once written; the unsubscribe token authorizes removal
// from future sends without a login.
type NewsletterRecipient struct {
	ID               uuid.UUID `json:"id" db:"id"`
	NewsletterID     uuid.UUID `json:"newsletter_id" db:"newsletter_id"`
	UserID           uuid.UUID `json:"user_id" db:"user_id"`
	Email            string    `json:"email" db:"email"`
	UnsubscribeToken string    `json:"-" db:"unsubscribe_token"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// SendNewsletterRequest is the body for POST /newsletters/send
type SendNewsletterRequest struct {
	Subject          string `json:"subject" binding:"required"`
	Content          string `json:"content" binding:"required"`
	IsTest           bool   `json:"is_test"`
	TestEmail        string `json:"test_email" binding:"required_if=IsTest true,omitempty,email"`
	SendToAll        bool   `json:"send_to_all"`
	SendToSubscribed bool   `json:"send_to_subscribed"`
}

// SendNewsletterResult is the aggregate outcome of one send
type SendNewsletterResult struct {
	NewsletterID   uuid.UUID `json:"newsletter_id"`
	RecipientCount int       `json:"recipient_count"`
	DeliveredCount int       `json:"delivered_count"`
	FailedCount    int       `json:"failed_count"`
}
