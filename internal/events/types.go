package events

import (
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

type client struct {
	client *pubsub.Client
	prefix string
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventPlayerRegistered EventType = "player-registered"
	EventPlayerRemoved    EventType = "player-removed"
	EventMatchRecorded    EventType = "match-recorded"
	// EventMatchResults is consumed through a push subscription, not published.
	EventMatchResults EventType = "match-results"
)

// MatchRecorded is published after a match changed two ratings.
type MatchRecorded struct {
	ID           string    `msgpack:"id"`
	Label        string    `msgpack:"label"`
	Winner       string    `msgpack:"winner"`
	Loser        string    `msgpack:"loser"`
	WinnerRating float64   `msgpack:"winner_rating"`
	LoserRating  float64   `msgpack:"loser_rating"`
	WinnerDelta  float64   `msgpack:"winner_delta"`
	LoserDelta   float64   `msgpack:"loser_delta"`
	RecordedAt   time.Time `msgpack:"recorded_at"`
}

// PlayerChanged is published when a player is registered or removed.
type PlayerChanged struct {
	ID         string             `msgpack:"id"`
	Label      string             `msgpack:"label"`
	Player     leaderboard.Player `msgpack:"player"`
	OccurredAt time.Time          `msgpack:"occurred_at"`
}

// MatchReport is an inbound match result delivered by a push subscription.
type MatchReport struct {
	Winner string `msgpack:"winner" json:"winner"`
	Loser  string `msgpack:"loser" json:"loser"`
}
