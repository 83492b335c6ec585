package http

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/elo-ladder/internal/events"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

var now = time.Now

// recordMatch applies a match and runs its side effects. Shared by the JSON
// route and the Pub/Sub push route.
func (s *Server) recordMatch(r *http.Request, winner, loser string) (leaderboard.MatchResult, error) {
	result, err := s.Leaderboard.RecordMatch(winner, loser)
	if err != nil {
		return leaderboard.MatchResult{}, err
	}
	log.Info("Match recorded",
		"winner", result.Winner.Name, "winner_rating", result.Winner.Rating,
		"loser", result.Loser.Name, "loser_rating", result.Loser.Rating)

	s.Metrics.IncMatchesRecorded()
	s.afterMutation(r.Context(), events.EventMatchRecorded, events.NewMatchRecorded(s.Leaderboard.Label(), result, now()))
	if err := s.Notifier.SendMatchResult(result, isDryRunFromContext(r)); err != nil {
		log.Error("Failed to send match result notification", "error", err)
	}
	return result, nil
}

// afterMutation runs the side effects shared by every successful mutation.
// Failures are logged; the leaderboard change stands.
func (s *Server) afterMutation(ctx context.Context, event events.EventType, payload any) {
	s.Metrics.SetPlayers(s.Leaderboard.Len())

	if err := s.Events.Publish(ctx, event, payload); err != nil {
		s.Metrics.IncEventsFailed()
		log.Error("Failed to publish event", "event", event, "error", err)
	} else {
		s.Metrics.IncEventsPublished()
	}

	s.broadcast()
	s.checkpoint(ctx)
}

// broadcast pushes the current standings. Reading and sending happen under
// one lock so a slower request cannot overwrite newer standings on the feed.
func (s *Server) broadcast() {
	s.broadcastMu.Lock()
	defer s.broadcastMu.Unlock()
	s.Feed.Broadcast(s.Leaderboard.Label(), s.Leaderboard.Standings())
}

// checkpoint saves the portable form when a store is configured. Saves are
// serialised so an older snapshot never overwrites a newer one.
func (s *Server) checkpoint(ctx context.Context) {
	if s.Checkpoints == nil {
		return
	}
	s.checkpointMu.Lock()
	defer s.checkpointMu.Unlock()

	start := time.Now()
	snap := s.Leaderboard.ToPortable()
	if err := s.Checkpoints.Save(ctx, snap); err != nil {
		log.Error("Failed to checkpoint leaderboard", "label", snap.Label, "error", err)
		return
	}
	s.Metrics.ObserveCheckpointDuration(time.Since(start).Seconds())
	log.Debug("Checkpointed leaderboard", "label", snap.Label, "players", len(snap.Players))
}
