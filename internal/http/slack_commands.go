package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
)

// LeaderboardCommandHandler answers /leaderboard [n] with the standings, or the top n.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			log.Error("Failed to parse slash command", "error", err)
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid slash command"})
			return
		}
		log.Info("Received leaderboard command", "user", cmd.UserName, "text", cmd.Text)

		standings := s.Leaderboard.Standings()
		if text := strings.TrimSpace(cmd.Text); text != "" {
			if n, err := strconv.Atoi(text); err == nil {
				standings = s.Leaderboard.TopN(n)
			}
		}

		msg, err := s.Notifier.FormatStandingsResponse(s.Leaderboard.Label(), standings)
		if err != nil {
			log.Error("Failed to format leaderboard", "error", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to format leaderboard"})
			return
		}
		writeJSON(w, http.StatusOK, msg)
	}
}

// PlayerCommandHandler answers /player <name> with the player's record and rank.
func (s *Server) PlayerCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			log.Error("Failed to parse slash command", "error", err)
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid slash command"})
			return
		}
		name := strings.TrimSpace(cmd.Text)
		log.Info("Received player command", "user", cmd.UserName, "name", name)

		var msg any
		if p, rank, ok := s.Leaderboard.PlayerWithRank(name); ok {
			msg, err = s.Notifier.FormatPlayerResponse(p, rank)
		} else {
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(name)
		}
		if err != nil {
			log.Error("Failed to format player response", "error", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to format player"})
			return
		}
		writeJSON(w, http.StatusOK, msg)
	}
}
