package events

import (
	"context"

	"github.com/charmbracelet/log"
)

type noop struct{}

// NewNoop returns a Publisher that drops events. Inbound payloads are still decoded.
func NewNoop() Publisher {
	return noop{}
}

func (noop) Publish(ctx context.Context, event EventType, data any) error {
	log.Debug("Pub/Sub disabled, dropping event", "event", event)
	return nil
}

func (noop) Decode(data []byte, v any) error {
	return decode(data, v)
}
