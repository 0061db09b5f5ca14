package newsletter

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/resumehub/notify-api/internal/email"
	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/repository"
	"github.com/resumehub/notify-api/internal/service/notification"
	apperrors "github.com/resumehub/notify-api/pkg/errors"
	"github.com/resumehub/notify-api/pkg/messaging"
	"github.com/resumehub/notify-api/pkg/token"
)

// Service implements the newsletter send and unsubscribe flows
type Service interface {
	// Send returns nil result in test mode
	Send(ctx context.Context, req *model.SendNewsletterRequest) (*model.SendNewsletterResult, error)
	Unsubscribe(ctx context.Context, unsubscribeToken string) error
}

type service struct {
	newsletters repository.NewsletterRepository
	settings    repository.SettingsRepository
	selector    *notification.Selector
	composer    *notification.Composer
	dispatcher  *notification.Dispatcher
	sender      email.Sender
	broker      messaging.Broker
	baseURL     string
	logger      *zerolog.Logger
}

func NewService(
	newsletters repository.NewsletterRepository,
	settings repository.SettingsRepository,
	selector *notification.Selector,
	composer *notification.Composer,
	dispatcher *notification.Dispatcher,
	sender email.Sender,
	broker messaging.Broker,
	baseURL string,
	logger *zerolog.Logger,
) Service {
	return &service{
		newsletters: newsletters,
		settings:    settings,
		selector:    selector,
		composer:    composer,
		dispatcher:  dispatcher,
		sender:      sender,
		broker:      broker,
		baseURL:     baseURL,
		logger:      logger,
	}
}

func (s *service) Send(ctx context.Context, req *model.SendNewsletterRequest) (*model.SendNewsletterResult, error) {
	if req.IsTest {
		return nil, s.sendTest(ctx, req)
	}
	if !req.SendToAll && !req.SendToSubscribed {
		return nil, apperrors.BadRequest("either send_to_all or send_to_subscribed must be set", nil)
	}

	recipients, err := s.selector.NewsletterAudience(ctx, req.SendToAll)
	if err != nil {
		return nil, err
	}

	newsletter := &model.Newsletter{
		Subject:        req.Subject,
		Content:        req.Content,
		RecipientCount: len(recipients),
	}
	if err := s.newsletters.Create(ctx, newsletter); err != nil {
		return nil, err
	}

	// The delivery record is written before the send: a token whose
	// email never arrived is harmless, an email whose token does not
	// exist would break the unsubscribe link.
	result := s.dispatcher.Dispatch(ctx, recipients, func(r notification.Recipient) (email.Message, error) {
		unsubToken, err := token.NewUnsubscribeToken()
		if err != nil {
			return email.Message{}, err
		}

		record := &model.NewsletterRecipient{
			NewsletterID:     newsletter.ID,
			UserID:           r.UserID,
			Email:            r.Email,
			UnsubscribeToken: unsubToken,
		}
		if err := s.newsletters.CreateRecipient(ctx, record); err != nil {
			return email.Message{}, err
		}

		composed, err := s.composer.Newsletter(model.NewsletterPayload{
			Subject:         req.Subject,
			Content:         req.Content,
			UnsubscribeLink: s.unsubscribeLink(unsubToken),
		})
		if err != nil {
			return email.Message{}, err
		}
		return email.Message{To: r.Email, Subject: composed.Subject, HTML: composed.HTML}, nil
	})

	s.publishSent(ctx, newsletter, result)

	return &model.SendNewsletterResult{
		NewsletterID:   newsletter.ID,
		RecipientCount: result.Attempted(),
		DeliveredCount: result.Delivered(),
		FailedCount:    result.Failed(),
	}, nil
}

// sendTest delivers a single preview email and touches no tables
func (s *service) sendTest(ctx context.Context, req *model.SendNewsletterRequest) error {
	if req.TestEmail == "" {
		return apperrors.BadRequest("test_email is required for a test send", nil)
	}

	composed, err := s.composer.Newsletter(model.NewsletterPayload{
		Subject: req.Subject,
		Content: req.Content,
	})
	if err != nil {
		return err
	}

	return s.sender.Send(ctx, email.Message{
		To:      req.TestEmail,
		Subject: fmt.Sprintf("[Test] %s", composed.Subject),
		HTML:    composed.HTML,
	})
}

func (s *service) Unsubscribe(ctx context.Context, unsubscribeToken string) error {
	recipient, err := s.newsletters.GetRecipientByToken(ctx, unsubscribeToken)
	if err != nil {
		return err
	}

	settings, err := s.selector.SettingsFor(ctx, recipient.UserID)
	if err != nil {
		return err
	}

	updated := *settings
	updated.Newsletters = false
	updated.JobPostings = false
	updated.Reminders = false

	if err := s.settings.Upsert(ctx, &updated); err != nil {
		return err
	}
	s.selector.InvalidateSettings(recipient.UserID)

	s.logger.Info().Str("user_id", recipient.UserID.String()).Msg("user unsubscribed from newsletters")
	return nil
}

func (s *service) unsubscribeLink(unsubToken string) string {
	return fmt.Sprintf("%s/api/v1/newsletters/unsubscribe/%s", s.baseURL, unsubToken)
}

func (s *service) publishSent(ctx context.Context, newsletter *model.Newsletter, result notification.BatchResult) {
	event := messaging.Event{
		Type: "newsletter.sent",
		Payload: map[string]interface{}{
			"newsletter_id": newsletter.ID,
			"attempted":     result.Attempted(),
			"delivered":     result.Delivered(),
			"failed":        result.Failed(),
		},
	}
	if err := s.broker.Publish(ctx, messaging.ChannelNewsletterEvents, event); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish newsletter event")
	}
}
