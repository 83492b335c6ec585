package main

import (
	"math/rand"
	"testing"

	"github.com/mauv0809/elo-ladder/internal/leaderboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAndSimulate(t *testing.T) {
	lb, err := leaderboard.New("Main", 32)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(42))

	strengths, err := seedPlayers(lb, 6, rng)
	require.NoError(t, err)
	require.Len(t, strengths, 6)
	assert.Equal(t, 6, lb.Len())

	require.NoError(t, simulate(lb, strengths, 300, rng))

	totalWins, totalLosses := 0, 0
	sum := 0.0
	for _, p := range lb.Standings() {
		totalWins += p.Wins
		totalLosses += p.Losses
		sum += p.Rating
	}
	assert.Equal(t, 300, totalWins)
	assert.Equal(t, 300, totalLosses)
	// Every match moves the same amount of rating from loser to winner, up to rounding.
	assert.InDelta(t, 6*1500.0, sum, 300*0.02)
}

func TestSimulateNeedsTwoPlayers(t *testing.T) {
	lb, err := leaderboard.New("Main", 32)
	require.NoError(t, err)
	strengths, err := seedPlayers(lb, 1, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Error(t, simulate(lb, strengths, 10, rand.New(rand.NewSource(1))))
}

func TestSeedPlayersNamesAreUnique(t *testing.T) {
	lb, err := leaderboard.New("Main", 32)
	require.NoError(t, err)
	strengths, err := seedPlayers(lb, 60, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Len(t, strengths, 60)
}
