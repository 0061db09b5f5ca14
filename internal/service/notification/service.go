package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/resumehub/notify-api/internal/email"
	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/repository"
)

// Service orchestrates recipient selection, composition and sending
// for the notification endpoints
type Service interface {
	NotifyStatusChanged(ctx context.Context, req *model.NotifyStatusRequest) error
	NotifyInterviewScheduled(ctx context.Context, req *model.NotifyInterviewRequest) error
	NotifyJobPosting(ctx context.Context, jobID uuid.UUID) (BatchResult, error)
}

type service struct {
	apps       repository.ApplicationRepository
	jobs       repository.JobRepository
	selector   *Selector
	composer   *Composer
	dispatcher *Dispatcher
	sender     email.Sender
	logger     *zerolog.Logger
}

func NewService(
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	selector *Selector,
	composer *Composer,
	dispatcher *Dispatcher,
	sender email.Sender,
	logger *zerolog.Logger,
) Service {
	return &service{
		apps:       apps,
		jobs:       jobs,
		selector:   selector,
		composer:   composer,
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger,
	}
}

// applicationContext loads the application, its job posting and the
// applicant as a recipient. ok is false when the applicant has opted
// out or has no email.
func (s *service) applicationContext(ctx context.Context, applicationID uuid.UUID) (*model.JobApplication, *model.JobPosting, Recipient, bool, error) {
	app, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return nil, nil, Recipient{}, false, err
	}

	job, err := s.jobs.Get(ctx, app.JobID)
	if err != nil {
		return nil, nil, Recipient{}, false, err
	}

	recipient, ok, err := s.selector.ForUser(ctx, app.UserID, model.CategoryApplicationUpdates)
	if err != nil {
		return nil, nil, Recipient{}, false, err
	}
	return app, job, recipient, ok, nil
}

func (s *service) NotifyStatusChanged(ctx context.Context, req *model.NotifyStatusRequest) error {
	if !req.Status.Valid() {
		return fmt.Errorf("unknown application status: %s", req.Status)
	}

	_, job, recipient, ok, err := s.applicationContext(ctx, req.ApplicationID)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Debug().
			Str("application_id", req.ApplicationID.String()).
			Msg("applicant opted out of application updates, skipping email")
		return nil
	}

	composed, err := s.composer.StatusChanged(model.StatusChangedPayload{
		ApplicantName: recipient.Name,
		JobTitle:      job.Title,
		Company:       job.Company,
		Status:        req.Status,
		Feedback:      req.Feedback,
	})
	if err != nil {
		return err
	}

	return s.sender.Send(ctx, email.Message{
		To:      recipient.Email,
		Subject: composed.Subject,
		HTML:    composed.HTML,
	})
}

func (s *service) NotifyInterviewScheduled(ctx context.Context, req *model.NotifyInterviewRequest) error {
	_, job, recipient, ok, err := s.applicationContext(ctx, req.ApplicationID)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Debug().
			Str("application_id", req.ApplicationID.String()).
			Msg("applicant opted out of application updates, skipping email")
		return nil
	}

	composed, err := s.composer.InterviewScheduled(model.InterviewPayload{
		ApplicantName: recipient.Name,
		JobTitle:      job.Title,
		Company:       job.Company,
		Date:          req.Interview.Date,
		Time:          req.Interview.Time,
		Location:      req.Interview.Location,
		Notes:         req.Interview.Notes,
	})
	if err != nil {
		return err
	}

	return s.sender.Send(ctx, email.Message{
		To:      recipient.Email,
		Subject: composed.Subject,
		HTML:    composed.HTML,
	})
}

func (s *service) NotifyJobPosting(ctx context.Context, jobID uuid.UUID) (BatchResult, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return BatchResult{}, err
	}

	recipients, err := s.selector.Select(ctx, model.CategoryJobPostings)
	if err != nil {
		return BatchResult{}, err
	}

	location := ""
	if job.Location != nil {
		location = *job.Location
	}

	result := s.dispatcher.Dispatch(ctx, recipients, func(r Recipient) (email.Message, error) {
		composed, err := s.composer.JobPosting(model.JobPostingPayload{
			RecipientName: r.Name,
			JobTitle:      job.Title,
			Company:       job.Company,
			Location:      location,
		})
		if err != nil {
			return email.Message{}, err
		}
		return email.Message{To: r.Email, Subject: composed.Subject, HTML: composed.HTML}, nil
	})
	return result, nil
}
