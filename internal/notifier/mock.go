package notifier

import (
	"sync"

	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendMatchResultCalls []struct {
		Result leaderboard.MatchResult
		DryRun bool
	}
	SendStandingsCalls []struct {
		Label     string
		Standings []leaderboard.Player
	}

	// Spies
	SendMatchResultFunc              func(result leaderboard.MatchResult) error
	FormatStandingsResponseFunc      func(label string, standings []leaderboard.Player) (any, error)
	FormatPlayerResponseFunc         func(player leaderboard.Player, rank int) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)

	// Last formatted values
	LastStandingsResponse      []leaderboard.Player
	LastPlayerResponse         *leaderboard.Player
	LastPlayerNotFoundResponse string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.SendStandingsCalls = nil
	m.LastStandingsResponse = nil
	m.LastPlayerResponse = nil
	m.LastPlayerNotFoundResponse = ""
}

func (m *Mock) SendMatchResult(result leaderboard.MatchResult, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, struct {
		Result leaderboard.MatchResult
		DryRun bool
	}{result, dryRun})
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(result)
	}
	return nil
}

func (m *Mock) SendStandings(label string, standings []leaderboard.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, struct {
		Label     string
		Standings []leaderboard.Player
	}{label, standings})
	return nil
}

func (m *Mock) FormatStandingsResponse(label string, standings []leaderboard.Player) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastStandingsResponse = standings
	if m.FormatStandingsResponseFunc != nil {
		return m.FormatStandingsResponseFunc(label, standings)
	}
	return standings, nil
}

func (m *Mock) FormatPlayerResponse(player leaderboard.Player, rank int) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPlayerResponse = &player
	if m.FormatPlayerResponseFunc != nil {
		return m.FormatPlayerResponseFunc(player, rank)
	}
	return player, nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPlayerNotFoundResponse = query
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query)
	}
	return map[string]string{"error": "not found"}, nil
}

// MatchResults returns the number of SendMatchResult calls.
func (m *Mock) MatchResults() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendMatchResultCalls)
}
