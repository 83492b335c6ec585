package events

import (
	"context"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Pub/Sub. Topics are named "<prefix>-<event>".
func New(ctx context.Context, projectID, prefix string) (Publisher, func(), error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	teardown := func() {
		if err := pubSubC.Close(); err != nil {
			log.Error("Failed to close pubsub client", "error", err)
		}
	}
	return &client{client: pubSubC, prefix: prefix}, teardown, nil
}

func (c *client) topic(event EventType) string {
	if c.prefix == "" {
		return string(event)
	}
	return c.prefix + "-" + string(event)
}

func (c *client) Publish(ctx context.Context, event EventType, data any) error {
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{"event": string(event)},
	}
	topic := c.topic(event)
	result := c.client.Topic(topic).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Debug("Published event", "topic", topic, "serverID", serverID)
	return nil
}

func (c *client) Decode(data []byte, v any) error {
	return decode(data, v)
}

func decode(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

// NewMatchRecorded builds the event for a recorded match.
func NewMatchRecorded(label string, res leaderboard.MatchResult, at time.Time) MatchRecorded {
	return MatchRecorded{
		ID:           uuid.NewString(),
		Label:        label,
		Winner:       res.Winner.Name,
		Loser:        res.Loser.Name,
		WinnerRating: res.Winner.Rating,
		LoserRating:  res.Loser.Rating,
		WinnerDelta:  res.WinnerDelta,
		LoserDelta:   res.LoserDelta,
		RecordedAt:   at.UTC(),
	}
}

// NewPlayerChanged builds the event for a registered or removed player.
func NewPlayerChanged(label string, p leaderboard.Player, at time.Time) PlayerChanged {
	return PlayerChanged{
		ID:         uuid.NewString(),
		Label:      label,
		Player:     p,
		OccurredAt: at.UTC(),
	}
}
