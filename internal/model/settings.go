package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationCategory identifies a per-user opt-in flag
type NotificationCategory string

const (
	CategoryNewsletters        NotificationCategory = "newsletters"
	CategoryJobPostings        NotificationCategory = "job_postings"
	CategoryApplicationUpdates NotificationCategory = "application_updates"
	CategoryDocumentSharing    NotificationCategory = "document_sharing"
	CategoryReminders          NotificationCategory = "reminders"
)

// NotificationSettings holds the per-user opt-in flags.
// A user without a stored row gets DefaultNotificationSettings.
type NotificationSettings struct {
	UserID             uuid.UUID `json:"user_id" db:"user_id"`
	Newsletters        bool      `json:"newsletters" db:"newsletters"`
	JobPostings        bool      `json:"job_postings" db:"job_postings"`
	ApplicationUpdates bool      `json:"application_updates" db:"application_updates"`
	DocumentSharing    bool      `json:"document_sharing" db:"document_sharing"`
	Reminders          bool      `json:"reminders" db:"reminders"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultNotificationSettings returns the all-true defaults
func DefaultNotificationSettings(userID uuid.UUID) *NotificationSettings {
	return &NotificationSettings{
		UserID:             userID,
		Newsletters:        true,
		JobPostings:        true,
		ApplicationUpdates: true,
		DocumentSharing:    true,
		Reminders:          true,
	}
}

// Enabled reports whether the given category is opted in
func (s *NotificationSettings) Enabled(category NotificationCategory) bool {
	switch category {
	case CategoryNewsletters:
		return s.Newsletters
	case CategoryJobPostings:
		return s.JobPostings
	case CategoryApplicationUpdates:
		return s.ApplicationUpdates
	case CategoryDocumentSharing:
		return s.DocumentSharing
	case CategoryReminders:
		return s.Reminders
	default:
		return false
	}
}

// SubscribedToNewsletters reports whether at least one of the
// newsletter-category flags is on
func (s *NotificationSettings) SubscribedToNewsletters() bool {
	return s.Newsletters || s.JobPostings || s.Reminders
}

// UpdateNotificationSettingsRequest carries the five flags for PUT.
// All fields are required so a partial body cannot silently flip
// unmentioned flags to false.
type UpdateNotificationSettingsRequest struct {
	Newsletters        *bool `json:"newsletters" binding:"required"`
	JobPostings        *bool `json:"job_postings" binding:"required"`
	ApplicationUpdates *bool `json:"application_updates" binding:"required"`
	DocumentSharing    *bool `json:"document_sharing" binding:"required"`
	Reminders          *bool `json:"reminders" binding:"required"`
}
