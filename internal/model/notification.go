package model

import "github.com/google/uuid"

// NotificationKind identifies a composed email template
type NotificationKind string

const (
	KindApplicationStatusChanged NotificationKind = "application_status_changed"
	KindInterviewScheduled       NotificationKind = "interview_scheduled"
	KindNewJobPosting            NotificationKind = "new_job_posting"
	KindNewsletter               NotificationKind = "newsletter"
)

// StatusChangedPayload feeds the application-status template
type StatusChangedPayload struct {
	ApplicantName string
	JobTitle      string
	Company       string
	Status        ApplicationStatus
	Feedback      string
}

// InterviewPayload feeds the interview-scheduled template
type InterviewPayload struct {
	ApplicantName string
	JobTitle      string
	Company       string
	Date          string
	Time          string
	Location      string
	Notes         string
}

// JobPostingPayload feeds the new-job-posting template
type JobPostingPayload struct {
	RecipientName string
	JobTitle      string
	Company       string
	Location      string
}

// NewsletterPayload feeds the newsletter layout
type NewsletterPayload struct {
	Subject         string
	Content         string
	UnsubscribeLink string
}

// NotifyStatusRequest is the body for POST /notifications/application-status
type NotifyStatusRequest struct {
	ApplicationID uuid.UUID         `json:"application_id" binding:"required"`
	Status        ApplicationStatus `json:"status" binding:"required"`
	Feedback      string            `json:"feedback"`
}

// NotifyInterviewRequest is the body for POST /notifications/interview-scheduled
type NotifyInterviewRequest struct {
	ApplicationID uuid.UUID        `json:"application_id" binding:"required"`
	Interview     InterviewDetails `json:"interview" binding:"required"`
}

// NotifyJobPostingRequest is the body for POST /notifications/job-posting
type NotifyJobPostingRequest struct {
	JobID uuid.UUID `json:"job_id" binding:"required"`
}
