package events

import "context"

// Publisher sends domain events and decodes inbound payloads.
type Publisher interface {
	Publish(ctx context.Context, event EventType, data any) error
	Decode(data []byte, v any) error
}
