package notifier

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

var _ Notifier = Noop{}

// Noop is used when no chat integration is configured. Formatting returns
// plain values so slash-command style callers still get an answer.
type Noop struct{}

func (Noop) SendMatchResult(result leaderboard.MatchResult, dryRun bool) error {
	log.Debug("Notifications disabled, skipping match result", "winner", result.Winner.Name, "loser", result.Loser.Name)
	return nil
}

func (Noop) SendStandings(label string, standings []leaderboard.Player, dryRun bool) error {
	log.Debug("Notifications disabled, skipping standings", "label", label)
	return nil
}

func (Noop) FormatStandingsResponse(label string, standings []leaderboard.Player) (any, error) {
	return standings, nil
}

func (Noop) FormatPlayerResponse(player leaderboard.Player, rank int) (any, error) {
	return player, nil
}

func (Noop) FormatPlayerNotFoundResponse(query string) (any, error) {
	return map[string]string{"error": "player '" + query + "' not found"}, nil
}
