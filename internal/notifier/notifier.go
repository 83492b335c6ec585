package notifier

import (
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

// Notifier defines a high-level interface for sending notifications about ladder events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For recorded matches
	SendMatchResult(result leaderboard.MatchResult, dryRun bool) error
	// For posting the current standings to the channel
	SendStandings(label string, standings []leaderboard.Player, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(label string, standings []leaderboard.Player) (any, error)
	FormatPlayerResponse(player leaderboard.Player, rank int) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
