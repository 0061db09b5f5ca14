package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/repository"
	"github.com/resumehub/notify-api/internal/service/notification"
	apperrors "github.com/resumehub/notify-api/pkg/errors"
	"github.com/resumehub/notify-api/pkg/messaging"
)

// Service mutates job application state. Status transitions are
// validated against the model transition table; each successful
// update appends exactly one activity record and conditionally
// triggers the applicant's status email.
type Service interface {
	UpdateStatus(ctx context.Context, actorID uuid.UUID, applicationID uuid.UUID, req *model.UpdateStatusRequest) (*model.JobApplication, error)
	Activity(ctx context.Context, applicationID uuid.UUID) ([]*model.ActivityLog, error)
}

type service struct {
	apps     repository.ApplicationRepository
	activity repository.ActivityRepository
	notifier notification.Service
	broker   messaging.Broker
	logger   *zerolog.Logger
}

func NewService(
	apps repository.ApplicationRepository,
	activity repository.ActivityRepository,
	notifier notification.Service,
	broker messaging.Broker,
	logger *zerolog.Logger,
) Service {
	return &service{
		apps:     apps,
		activity: activity,
		notifier: notifier,
		broker:   broker,
		logger:   logger,
	}
}

func (s *service) UpdateStatus(ctx context.Context, actorID uuid.UUID, applicationID uuid.UUID, req *model.UpdateStatusRequest) (*model.JobApplication, error) {
	if !req.Status.Valid() {
		return nil, apperrors.BadRequest(fmt.Sprintf("unknown status: %s", req.Status), nil)
	}
	if req.Status == model.StatusInterview && req.Interview == nil {
		return nil, apperrors.BadRequest("interview details are required for the interview status", nil)
	}

	app, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if !app.Status.CanTransitionTo(req.Status) {
		return nil, apperrors.Conflict(
			fmt.Sprintf("cannot transition application from %s to %s", app.Status, req.Status), nil)
	}

	var feedback *string
	if req.Feedback != "" {
		feedback = &req.Feedback
	}

	entry := &model.ActivityLog{
		UserID:        actorID,
		ApplicationID: applicationID,
		Action:        model.ActivityAction(req.Status),
		Detail:        fmt.Sprintf("status changed from %s to %s", app.Status, req.Status),
	}
	if err := s.apps.UpdateStatusWithActivity(ctx, applicationID, req.Status, feedback, entry); err != nil {
		return nil, err
	}

	s.notify(ctx, applicationID, req)
	s.publish(ctx, app, req.Status)

	app.Status = req.Status
	if feedback != nil {
		app.Feedback = feedback
	}
	return app, nil
}

// Activity returns the status history of an application, newest first
func (s *service) Activity(ctx context.Context, applicationID uuid.UUID) ([]*model.ActivityLog, error) {
	if _, err := s.apps.Get(ctx, applicationID); err != nil {
		return nil, err
	}
	return s.activity.ListForApplication(ctx, applicationID)
}

// notify sends the status email as a side effect. Send failures are
// logged and swallowed: the update has already been persisted.
func (s *service) notify(ctx context.Context, applicationID uuid.UUID, req *model.UpdateStatusRequest) {
	var err error
	if req.Status == model.StatusInterview && req.Interview != nil {
		err = s.notifier.NotifyInterviewScheduled(ctx, &model.NotifyInterviewRequest{
			ApplicationID: applicationID,
			Interview:     *req.Interview,
		})
	} else {
		err = s.notifier.NotifyStatusChanged(ctx, &model.NotifyStatusRequest{
			ApplicationID: applicationID,
			Status:        req.Status,
			Feedback:      req.Feedback,
		})
	}
	if err != nil {
		s.logger.Error().Err(err).Str("application_id", applicationID.String()).Msg("failed to send status notification")
	}
}

func (s *service) publish(ctx context.Context, app *model.JobApplication, status model.ApplicationStatus) {
	event := messaging.Event{
		Type: "application.status_changed",
		Payload: map[string]interface{}{
			"application_id": app.ID,
			"user_id":        app.UserID,
			"from":           app.Status,
			"to":             status,
		},
	}
	if err := s.broker.Publish(ctx, messaging.ChannelApplicationEvents, event); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish application event")
	}
}
