package model

import (
	"fmt"

	"github.com/google/uuid"
)

// ApplicationStatus enumerates job application states
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusReviewing ApplicationStatus = "reviewing"
	StatusInterview ApplicationStatus = "interview"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
	StatusWithdrawn ApplicationStatus = "withdrawn"
)

// statusTransitions is the allowed transition table.
// Accepted, rejected and withdrawn are terminal.
var statusTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:   {StatusReviewing, StatusInterview, StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusReviewing: {StatusInterview, StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusInterview: {StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusAccepted:  {},
	StatusRejected:  {},
	StatusWithdrawn: {},
}

// Valid reports whether s is a known status value
func (s ApplicationStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether s -> next is an allowed transition
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// JobApplication links a user, a document and a job posting
type JobApplication struct {
	Base
	UserID     uuid.UUID         `json:"user_id" db:"user_id"`
	JobID      uuid.UUID         `json:"job_id" db:"job_id"`
	DocumentID uuid.UUID         `json:"document_id" db:"document_id"`
	Status     ApplicationStatus `json:"status" db:"status"`
	Feedback   *string           `json:"feedback,omitempty" db:"feedback"`
}

// InterviewDetails carries the schedule attached to an interview transition
type InterviewDetails struct {
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

// UpdateStatusRequest is the body for the admin status-update endpoint
type UpdateStatusRequest struct {
	Status    ApplicationStatus `json:"status" binding:"required"`
	Feedback  string            `json:"feedback"`
	Interview *InterviewDetails `json:"interview"`
}

// ActivityAction builds the activity-log action string for a status
func ActivityAction(status ApplicationStatus) string {
	return fmt.Sprintf("status_%s", status)
}
