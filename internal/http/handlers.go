package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/elo-ladder/internal/events"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

const defaultTopN = 10

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Leaderboard.Standings())
	}
}

func (s *Server) TopHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := defaultTopN
		if raw := r.URL.Query().Get("n"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				s.writeError(w, r, "top", fmt.Errorf("%w: n must be an integer, got %q", leaderboard.ErrInvalidArgument, raw))
				return
			}
			n = parsed
		}
		writeJSON(w, http.StatusOK, s.Leaderboard.TopN(n))
	}
}

func (s *Server) GetPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		p, rank, ok := s.Leaderboard.PlayerWithRank(name)
		if !ok {
			s.writeError(w, r, "get_player", &leaderboard.NotFoundError{Name: name})
			return
		}
		writeJSON(w, http.StatusOK, PlayerResponse{Player: p, Rank: rank})
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddPlayerRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, "add_player", err)
			return
		}
		if err := req.Validate(); err != nil {
			s.writeError(w, r, "add_player", err)
			return
		}

		p, err := s.Leaderboard.AddPlayer(req.toNewPlayer())
		if err != nil {
			s.writeError(w, r, "add_player", err)
			return
		}
		log.Info("Player registered", "name", p.Name, "rating", p.Rating)

		s.Metrics.IncPlayersRegistered()
		s.afterMutation(r.Context(), events.EventPlayerRegistered, events.NewPlayerChanged(s.Leaderboard.Label(), p, now()))
		writeJSON(w, http.StatusCreated, p)
	}
}

func (s *Server) RecordMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RecordMatchRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, "record_match", err)
			return
		}
		if err := req.Validate(); err != nil {
			s.writeError(w, r, "record_match", err)
			return
		}

		result, err := s.recordMatch(r, req.Winner, req.Loser)
		if err != nil {
			s.writeError(w, r, "record_match", err)
			return
		}
		writeJSON(w, http.StatusOK, RecordMatchResponse{
			Message: fmt.Sprintf("%s defeated %s", result.Winner.Name, result.Loser.Name),
			Result:  result,
		})
	}
}

func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RemovePlayerRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, "remove_player", err)
			return
		}
		if err := req.Validate(); err != nil {
			s.writeError(w, r, "remove_player", err)
			return
		}

		p, err := s.Leaderboard.RemovePlayer(req.Name)
		if err != nil {
			s.writeError(w, r, "remove_player", err)
			return
		}
		log.Info("Player removed", "name", req.Name)

		s.Metrics.IncPlayersRemoved()
		s.afterMutation(r.Context(), events.EventPlayerRemoved, events.NewPlayerChanged(s.Leaderboard.Label(), p, now()))
		writeJSON(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("removed %s", req.Name)})
	}
}

func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Leaderboard.ToPortable())
	}
}

// ImportHandler replaces the ladder's players with a previously exported snapshot.
func (s *Server) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var snap leaderboard.Snapshot
		if err := decodeJSON(r, &snap); err != nil {
			s.writeError(w, r, "import", err)
			return
		}
		if err := s.Leaderboard.Restore(snap); err != nil {
			s.writeError(w, r, "import", err)
			return
		}
		log.Info("Leaderboard imported", "label", snap.Label, "players", len(snap.Players))

		s.Metrics.SetPlayers(s.Leaderboard.Len())
		s.broadcast()
		s.checkpoint(r.Context())
		writeJSON(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("imported %d players", len(snap.Players))})
	}
}

// NotifyStandingsHandler posts the current standings to the configured channel.
func (s *Server) NotifyStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings := s.Leaderboard.Standings()
		if err := s.Notifier.SendStandings(s.Leaderboard.Label(), standings, isDryRunFromContext(r)); err != nil {
			s.writeError(w, r, "notify_standings", err)
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("sent standings for %d players", len(standings))})
	}
}
