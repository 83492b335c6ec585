package rating

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultRating is the rating every new player starts from.
	DefaultRating = 1500.0
	// DefaultKFactor is the adjustment sensitivity used when none is configured.
	DefaultKFactor = 32.0
	// Scale is the rating gap at which the stronger side is expected to win ten times as often.
	Scale = 400.0
)

// ErrInvalidKFactor is returned by New for a k-factor that is not a positive finite number.
var ErrInvalidKFactor = errors.New("k-factor must be a positive finite number")

// Model applies Elo updates with a fixed k-factor.
type Model struct {
	KFactor float64
}

// New creates a Model with the given k-factor.
func New(kFactor float64) (Model, error) {
	if math.IsNaN(kFactor) || math.IsInf(kFactor, 0) || kFactor <= 0 {
		return Model{}, fmt.Errorf("%w: got %v", ErrInvalidKFactor, kFactor)
	}
	return Model{KFactor: kFactor}, nil
}

// ExpectedScore returns the probability that a player rated ratingA beats one rated ratingB.
func ExpectedScore(ratingA, ratingB float64) float64 {
	return 1 / (1 + math.Pow(10, (ratingB-ratingA)/Scale))
}

// Apply returns the post-match ratings of a winner and a loser.
func (m Model) Apply(winner, loser float64) (float64, float64) {
	expectedWin := ExpectedScore(winner, loser)
	expectedLose := 1 - expectedWin

	winner += m.KFactor * (1 - expectedWin)
	loser += m.KFactor * (0 - expectedLose)

	return Round2(winner), Round2(loser)
}

// UpdateRatings adjusts both ratings in place after winner beat loser.
func (m Model) UpdateRatings(winner, loser *float64) {
	*winner, *loser = m.Apply(*winner, *loser)
}

// Backfill replays a historical record against a baseline opponent fixed at
// DefaultRating: all wins first, then all losses.
func (m Model) Backfill(start float64, wins, losses int) float64 {
	r := start
	for i := 0; i < wins; i++ {
		r, _ = m.Apply(r, DefaultRating)
	}
	for i := 0; i < losses; i++ {
		_, r = m.Apply(DefaultRating, r)
	}
	return r
}

// Round2 rounds to two decimal places, the precision ratings are stored at.
// Magnitudes past 1e15 carry no fractional digits and are returned as is.
func Round2(v float64) float64 {
	if math.Abs(v) >= 1e15 || math.IsNaN(v) {
		return v
	}
	return math.Round(v*100) / 100
}
