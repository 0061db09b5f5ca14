package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog records one action against a job application
type ActivityLog struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	ApplicationID uuid.UUID `json:"application_id" db:"application_id"`
	Action        string    `json:"action" db:"action"`
	Detail        string    `json:"detail" db:"detail"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
