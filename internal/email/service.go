package email

import (
	"context"
	"fmt"
)

// Message is one outbound transactional email
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Validate checks the message before it reaches a transport
func (m Message) Validate() error {
	if m.To == "" {
		return fmt.Errorf("recipient is required")
	}
	if m.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if m.HTML == "" {
		return fmt.Errorf("body is required")
	}
	return nil
}

// Sender sends transactional email through some transport
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
