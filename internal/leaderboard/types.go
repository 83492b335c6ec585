package leaderboard

import (
	"math"
	"sync"

	"github.com/mauv0809/elo-ladder/internal/rating"
)

// Player is one ranked participant.
type Player struct {
	Name   string  `json:"name" msgpack:"name"`
	Wins   int     `json:"wins" msgpack:"wins"`
	Losses int     `json:"losses" msgpack:"losses"`
	Rating float64 `json:"rating" msgpack:"rating"`
}

// TotalGames is wins plus losses.
func (p Player) TotalGames() int {
	return p.Wins + p.Losses
}

// WinRate is wins divided by total games, or 0 for a player without games.
func (p Player) WinRate() float64 {
	total := p.TotalGames()
	if total == 0 {
		return 0
	}
	return float64(p.Wins) / float64(total)
}

// MaxRatingMagnitude bounds explicit starting ratings.
const MaxRatingMagnitude = 1e9

// NewPlayer is the validated input for AddPlayer. A nil Rating means the
// default rating (or a back-filled one when back-fill is enabled).
type NewPlayer struct {
	Name   string   `json:"name"`
	Wins   int      `json:"wins,omitempty"`
	Losses int      `json:"losses,omitempty"`
	Rating *float64 `json:"rating,omitempty"`
}

// Validate checks the input without touching any leaderboard.
func (n NewPlayer) Validate() error {
	if n.Name == "" {
		return invalidArgument("name is required")
	}
	if n.Wins < 0 {
		return invalidArgument("wins must not be negative, got %d", n.Wins)
	}
	if n.Losses < 0 {
		return invalidArgument("losses must not be negative, got %d", n.Losses)
	}
	if n.Rating != nil && !isFinite(*n.Rating) {
		return invalidArgument("rating must be finite")
	}
	if n.Rating != nil && math.Abs(*n.Rating) > MaxRatingMagnitude {
		return invalidArgument("rating must be within ±%g, got %g", MaxRatingMagnitude, *n.Rating)
	}
	return nil
}

// MatchResult describes a recorded match after ratings were adjusted.
type MatchResult struct {
	Winner      Player  `json:"winner" msgpack:"winner"`
	Loser       Player  `json:"loser" msgpack:"loser"`
	WinnerDelta float64 `json:"winner_delta" msgpack:"winner_delta"`
	LoserDelta  float64 `json:"loser_delta" msgpack:"loser_delta"`
}

// Ordering selects the primary standings key.
type Ordering string

const (
	OrderByRating  Ordering = "rating"
	OrderByWinRate Ordering = "win_rate"
)

// Valid reports whether o is a known ordering.
func (o Ordering) Valid() bool {
	return o == OrderByRating || o == OrderByWinRate
}

// Leaderboard owns a set of uniquely named players. It is safe for concurrent use.
type Leaderboard struct {
	mu       sync.RWMutex
	label    string
	model    rating.Model
	ordering Ordering
	backfill bool

	// players keeps insertion order; index resolves names.
	players []*Player
	index   map[string]*Player
}

// Option configures a Leaderboard.
type Option func(*Leaderboard)

// WithOrdering sets the primary standings key.
func WithOrdering(o Ordering) Option {
	return func(lb *Leaderboard) {
		lb.ordering = o
	}
}

// WithBackfill makes AddPlayer derive a starting rating from the initial
// win/loss record when no explicit rating is given.
func WithBackfill(enabled bool) Option {
	return func(lb *Leaderboard) {
		lb.backfill = enabled
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
