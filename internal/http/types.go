package http

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/elo-ladder/internal/config"
	"github.com/mauv0809/elo-ladder/internal/events"
	"github.com/mauv0809/elo-ladder/internal/feed"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
	"github.com/mauv0809/elo-ladder/internal/metrics"
	"github.com/mauv0809/elo-ladder/internal/notifier"
	"github.com/mauv0809/elo-ladder/internal/snapshot"
)

type Server struct {
	Leaderboard    *leaderboard.Leaderboard
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Events         events.Publisher
	// Checkpoints is nil when no database is configured.
	Checkpoints snapshot.Store
	Feed        feed.Feed
	Router      chi.Router

	checkpointMu sync.Mutex
	broadcastMu  sync.Mutex
}

// AddPlayerRequest is the body of POST /add_player.
type AddPlayerRequest struct {
	Name   string   `json:"name"`
	Wins   int      `json:"wins"`
	Losses int      `json:"losses"`
	Rating *float64 `json:"rating,omitempty"`
}

func (r AddPlayerRequest) toNewPlayer() leaderboard.NewPlayer {
	return leaderboard.NewPlayer{Name: r.Name, Wins: r.Wins, Losses: r.Losses, Rating: r.Rating}
}

// Validate checks the request before the leaderboard is touched.
func (r AddPlayerRequest) Validate() error {
	return r.toNewPlayer().Validate()
}

// RecordMatchRequest is the body of POST /record_match.
type RecordMatchRequest struct {
	Winner string `json:"winner"`
	Loser  string `json:"loser"`
}

func (r RecordMatchRequest) Validate() error {
	switch {
	case r.Winner == "":
		return fmt.Errorf("%w: winner is required", leaderboard.ErrInvalidArgument)
	case r.Loser == "":
		return fmt.Errorf("%w: loser is required", leaderboard.ErrInvalidArgument)
	case r.Winner == r.Loser:
		return fmt.Errorf("%w: a player cannot play against themselves", leaderboard.ErrInvalidArgument)
	}
	return nil
}

// RemovePlayerRequest is the body of POST /remove_player.
type RemovePlayerRequest struct {
	Name string `json:"name"`
}

func (r RemovePlayerRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", leaderboard.ErrInvalidArgument)
	}
	return nil
}

// MessageResponse is returned by mutations that have nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
}

// RecordMatchResponse carries the adjusted players.
type RecordMatchResponse struct {
	Message string                  `json:"message"`
	Result  leaderboard.MatchResult `json:"result"`
}

// PlayerResponse is a player together with its current rank.
type PlayerResponse struct {
	leaderboard.Player
	Rank int `json:"rank"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// pubsubPush is the envelope of a Pub/Sub push delivery.
type pubsubPush struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data      string `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
}
