package email

import (
	"context"
	"sync"
)

// Recorder is a Sender that keeps sent messages in memory.
// Used in tests and as a transport when SMTP is not configured.
// FailFor can be populated with recipient addresses whose sends
// should be rejected.
type Recorder struct {
	mu      sync.Mutex
	sent    []Message
	FailFor map[string]error
}

func NewRecorder() *Recorder {
	return &Recorder{FailFor: make(map[string]error)}
}

func (r *Recorder) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.FailFor[msg.To]; ok {
		return err
	}
	r.sent = append(r.sent, msg)
	return nil
}

// Sent returns a copy of the messages delivered so far
func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.sent))
	copy(out, r.sent)
	return out
}
