package notification

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/resumehub/notify-api/internal/email"
)

// maxConcurrentSends bounds the fan-out so a large broadcast stays
// inside typical SMTP connection limits
const maxConcurrentSends = 16

// Outcome is the per-recipient result of one dispatched send
type Outcome struct {
	Recipient Recipient
	Err       error
}

// BatchResult collects the outcomes of one fan-out
type BatchResult struct {
	Outcomes []Outcome
}

// Attempted returns the number of recipients dispatched to
func (r BatchResult) Attempted() int {
	return len(r.Outcomes)
}

// Delivered returns the number of successful sends
func (r BatchResult) Delivered() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of failed sends
func (r BatchResult) Failed() int {
	return r.Attempted() - r.Delivered()
}

// Dispatcher fans one notification out to many recipients. A single
// recipient's failure never cancels the batch; every outcome is
// reported back to the caller.
type Dispatcher struct {
	sender email.Sender
	logger *zerolog.Logger
}

func NewDispatcher(sender email.Sender, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, logger: logger}
}

// Dispatch invokes build for every recipient and sends the result.
// A build error counts as that recipient's failure.
func (d *Dispatcher) Dispatch(ctx context.Context, recipients []Recipient, build func(Recipient) (email.Message, error)) BatchResult {
	outcomes := make([]Outcome, len(recipients))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentSends)

	for i, recipient := range recipients {
		wg.Add(1)
		go func(i int, recipient Recipient) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcomes[i] = Outcome{Recipient: recipient, Err: d.sendOne(ctx, recipient, build)}
		}(i, recipient)
	}
	wg.Wait()

	result := BatchResult{Outcomes: outcomes}
	d.logger.Info().
		Int("attempted", result.Attempted()).
		Int("delivered", result.Delivered()).
		Int("failed", result.Failed()).
		Msg("notification fan-out complete")
	return result
}

func (d *Dispatcher) sendOne(ctx context.Context, recipient Recipient, build func(Recipient) (email.Message, error)) error {
	msg, err := build(recipient)
	if err != nil {
		d.logger.Error().Err(err).Str("email", recipient.Email).Msg("failed to build notification")
		return err
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		d.logger.Error().Err(err).Str("email", recipient.Email).Msg("failed to send notification")
		return err
	}
	return nil
}
