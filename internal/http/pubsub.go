package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/elo-ladder/internal/events"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

// MatchResultsPushHandler records matches delivered by a Pub/Sub push
// subscription. Reports the leaderboard rejects are acknowledged so Pub/Sub
// does not redeliver them; only undecodable envelopes get a 4xx.
func (s *Server) MatchResultsPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var push pubsubPush
		if err := json.NewDecoder(r.Body).Decode(&push); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON"})
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(push.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid base64 data"})
			return
		}

		var report events.MatchReport
		if err := s.Events.Decode(rawData, &report); err != nil {
			log.Error("Failed to decode match report", "error", err, "message_id", push.Message.MessageID)
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid match report"})
			return
		}
		log.Debug("Received match report", "winner", report.Winner, "loser", report.Loser, "message_id", push.Message.MessageID)

		result, err := s.recordMatch(r, report.Winner, report.Loser)
		if err != nil {
			_, reason := errorStatus(err)
			s.Metrics.IncRejected("pubsub_match", reason)
			if !errors.Is(err, leaderboard.ErrNotFound) && !errors.Is(err, leaderboard.ErrInvalidArgument) {
				log.Error("Failed to record pushed match", "error", err)
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
				return
			}
			log.Warn("Dropping pushed match", "error", err, "message_id", push.Message.MessageID)
			writeJSON(w, http.StatusOK, MessageResponse{Message: "dropped: " + err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, RecordMatchResponse{
			Message: result.Winner.Name + " defeated " + result.Loser.Name,
			Result:  result,
		})
	}
}
