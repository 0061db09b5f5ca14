package messaging

import "context"

// NopBroker drops all events. Used when redis is not configured
// and as a default in tests.
type NopBroker struct{}

func NewNopBroker() Broker {
	return NopBroker{}
}

func (NopBroker) Publish(_ context.Context, _ string, _ interface{}) error {
	return nil
}

func (NopBroker) Subscribe(_ context.Context, _ string) (<-chan []byte, error) {
	ch := make(chan []byte)
	close(ch)
	return ch, nil
}

func (NopBroker) Close() error {
	return nil
}
