package events

import (
	"context"
	"sync"
)

var _ Publisher = (*Mock)(nil)

// Mock is a mock implementation of Publisher for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	PublishFunc func(event EventType, data any) error

	PublishCalls []PublishCall
}

// PublishCall holds the arguments for a call to Publish.
type PublishCall struct {
	Event EventType
	Data  any
}

// NewMock creates a new mock Publisher.
func NewMock() *Mock {
	return &Mock{}
}

// Publish records the call and executes the mock function if provided.
func (m *Mock) Publish(ctx context.Context, event EventType, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = append(m.PublishCalls, PublishCall{Event: event, Data: data})
	if m.PublishFunc != nil {
		return m.PublishFunc(event, data)
	}
	return nil
}

// Decode uses the real msgpack decoding.
func (m *Mock) Decode(data []byte, v any) error {
	return decode(data, v)
}

// Calls returns a copy of the recorded Publish calls.
func (m *Mock) Calls() []PublishCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishCall, len(m.PublishCalls))
	copy(out, m.PublishCalls)
	return out
}
