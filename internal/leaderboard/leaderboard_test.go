package leaderboard

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/mauv0809/elo-ladder/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T, opts ...Option) *Leaderboard {
	t.Helper()
	lb, err := New("TestBoard", 32, opts...)
	require.NoError(t, err)
	return lb
}

func ptr(f float64) *float64 { return &f }

func TestNew_RejectsInvalidKFactor(t *testing.T) {
	for _, k := range []float64{0, -1} {
		_, err := New("Main", k)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}

	_, err := New("Main", 32, WithOrdering("elo"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPlayer_Derived(t *testing.T) {
	tests := []struct {
		name      string
		player    Player
		wantTotal int
		wantRate  float64
	}{
		{"no games", Player{Name: "new"}, 0, 0},
		{"mixed record", Player{Name: "5_3", Wins: 5, Losses: 3}, 8, 5.0 / 8},
		{"all wins", Player{Name: "all_win", Wins: 10}, 10, 1},
		{"all losses", Player{Name: "all_loss", Losses: 7}, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantTotal, tt.player.TotalGames())
			assert.InDelta(t, tt.wantRate, tt.player.WinRate(), 1e-12)
		})
	}
}

func TestAddPlayer(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		lb := newTestBoard(t)
		p, err := lb.AddPlayer(NewPlayer{Name: "test1"})
		require.NoError(t, err)

		assert.Equal(t, "test1", p.Name)
		assert.Equal(t, 0, p.Wins)
		assert.Equal(t, 0, p.Losses)
		assert.Equal(t, rating.DefaultRating, p.Rating)
		assert.Equal(t, 1, lb.Len())
	})

	t.Run("initial record and rating", func(t *testing.T) {
		lb := newTestBoard(t)
		p, err := lb.AddPlayer(NewPlayer{Name: "custom", Wins: 5, Losses: 3, Rating: ptr(1600.5)})
		require.NoError(t, err)

		assert.Equal(t, Player{Name: "custom", Wins: 5, Losses: 3, Rating: 1600.5}, p)
	})

	t.Run("duplicate name", func(t *testing.T) {
		lb := newTestBoard(t)
		_, err := lb.AddPlayer(NewPlayer{Name: "x"})
		require.NoError(t, err)

		_, err = lb.AddPlayer(NewPlayer{Name: "x"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateName)
		var dup *DuplicateNameError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, "x", dup.Name)
		assert.Equal(t, 1, lb.Len())
	})

	t.Run("invalid input", func(t *testing.T) {
		lb := newTestBoard(t)
		inputs := []NewPlayer{
			{Name: ""},
			{Name: "neg_wins", Wins: -1},
			{Name: "neg_losses", Losses: -2},
			{Name: "huge", Rating: ptr(1e307)},
			{Name: "huge_negative", Rating: ptr(-MaxRatingMagnitude - 1)},
		}
		for _, in := range inputs {
			_, err := lb.AddPlayer(in)
			assert.ErrorIs(t, err, ErrInvalidArgument, "input %+v", in)
		}
		assert.Equal(t, 0, lb.Len())
	})

	t.Run("backfill derives rating from record", func(t *testing.T) {
		lb := newTestBoard(t, WithBackfill(true))
		p, err := lb.AddPlayer(NewPlayer{Name: "veteran", Wins: 1})
		require.NoError(t, err)
		assert.Equal(t, 1516.0, p.Rating)
		assert.Equal(t, 1, p.Wins)

		explicit, err := lb.AddPlayer(NewPlayer{Name: "explicit", Wins: 4, Rating: ptr(1400)})
		require.NoError(t, err)
		assert.Equal(t, 1400.0, explicit.Rating, "an explicit rating wins over back-fill")
	})

	t.Run("explicit rating is stored at two decimals", func(t *testing.T) {
		lb := newTestBoard(t)
		p, err := lb.AddPlayer(NewPlayer{Name: "precise", Rating: ptr(1500.123456)})
		require.NoError(t, err)
		assert.Equal(t, 1500.12, p.Rating)
	})

	t.Run("largest accepted rating stays finite through a match", func(t *testing.T) {
		lb := newTestBoard(t)
		_, err := lb.AddPlayer(NewPlayer{Name: "a", Rating: ptr(MaxRatingMagnitude)})
		require.NoError(t, err)
		_, err = lb.AddPlayer(NewPlayer{Name: "b", Rating: ptr(-MaxRatingMagnitude)})
		require.NoError(t, err)

		res, err := lb.RecordMatch("b", "a")
		require.NoError(t, err)
		assert.False(t, math.IsInf(res.Winner.Rating, 0) || math.IsNaN(res.Winner.Rating))
		assert.False(t, math.IsInf(res.Loser.Rating, 0) || math.IsNaN(res.Loser.Rating))

		_, err = json.Marshal(lb.ToPortable())
		assert.NoError(t, err)
	})

	t.Run("backfill disabled keeps the flat rating", func(t *testing.T) {
		lb := newTestBoard(t)
		p, err := lb.AddPlayer(NewPlayer{Name: "veteran", Wins: 10, Losses: 1})
		require.NoError(t, err)
		assert.Equal(t, rating.DefaultRating, p.Rating)
	})
}

func TestGetPlayer(t *testing.T) {
	lb := newTestBoard(t)
	_, err := lb.AddPlayer(NewPlayer{Name: "alice"})
	require.NoError(t, err)

	p, ok := lb.GetPlayer("alice")
	require.True(t, ok)
	assert.Equal(t, "alice", p.Name)

	_, ok = lb.GetPlayer("Alice")
	assert.False(t, ok, "lookup is case sensitive")
	_, ok = lb.GetPlayer("ali")
	assert.False(t, ok, "lookup is exact")
}

func TestGetPlayer_ReturnsCopy(t *testing.T) {
	lb := newTestBoard(t)
	_, err := lb.AddPlayer(NewPlayer{Name: "alice"})
	require.NoError(t, err)

	p, _ := lb.GetPlayer("alice")
	p.Wins = 99

	again, _ := lb.GetPlayer("alice")
	assert.Equal(t, 0, again.Wins)
}

func TestRemovePlayer(t *testing.T) {
	lb := newTestBoard(t)
	for _, name := range []string{"p1", "p2", "p3"} {
		_, err := lb.AddPlayer(NewPlayer{Name: name})
		require.NoError(t, err)
	}

	removed, err := lb.RemovePlayer("p2")
	require.NoError(t, err)
	assert.Equal(t, "p2", removed.Name)
	assert.Equal(t, 2, lb.Len())
	_, ok := lb.GetPlayer("p2")
	assert.False(t, ok)

	names := []string{}
	for _, p := range lb.ToPortable().Players {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"p1", "p3"}, names, "insertion order survives removal")

	_, err = lb.RemovePlayer("p4")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	nf, ok := IsNotFound(err)
	require.True(t, ok)
	assert.Equal(t, "p4", nf.Name)
	assert.Equal(t, RoleNone, nf.Role)

	_, err = lb.AddPlayer(NewPlayer{Name: "p2"})
	assert.NoError(t, err, "a removed name can be registered again")
}

func TestRecordMatch(t *testing.T) {
	t.Run("alice beats bob", func(t *testing.T) {
		lb := newTestBoard(t)
		_, err := lb.AddPlayer(NewPlayer{Name: "alice"})
		require.NoError(t, err)
		_, err = lb.AddPlayer(NewPlayer{Name: "bob"})
		require.NoError(t, err)

		res, err := lb.RecordMatch("alice", "bob")
		require.NoError(t, err)

		alice, _ := lb.GetPlayer("alice")
		bob, _ := lb.GetPlayer("bob")
		assert.Equal(t, 1, alice.Wins)
		assert.Equal(t, 0, alice.Losses)
		assert.Equal(t, 0, bob.Wins)
		assert.Equal(t, 1, bob.Losses)
		assert.Equal(t, 1516.0, alice.Rating)
		assert.Equal(t, 1484.0, bob.Rating)

		assert.Equal(t, alice, res.Winner)
		assert.Equal(t, bob, res.Loser)
		assert.Equal(t, 16.0, res.WinnerDelta)
		assert.Equal(t, -16.0, res.LoserDelta)

		top := lb.TopN(1)
		require.Len(t, top, 1)
		assert.Equal(t, "alice", top[0].Name)
	})

	t.Run("missing winner", func(t *testing.T) {
		lb := newTestBoard(t)
		_, err := lb.AddPlayer(NewPlayer{Name: "alice"})
		require.NoError(t, err)

		_, err = lb.RecordMatch("ghost", "alice")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "'ghost' not found")
		nf, ok := IsNotFound(err)
		require.True(t, ok)
		assert.Equal(t, "ghost", nf.Name)
		assert.Equal(t, RoleWinner, nf.Role)

		alice, _ := lb.GetPlayer("alice")
		assert.Equal(t, Player{Name: "alice", Rating: rating.DefaultRating}, alice)
	})

	t.Run("missing loser", func(t *testing.T) {
		lb := newTestBoard(t)
		_, err := lb.AddPlayer(NewPlayer{Name: "alice"})
		require.NoError(t, err)

		_, err = lb.RecordMatch("alice", "bob")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "'bob' not found")
		nf, ok := IsNotFound(err)
		require.True(t, ok)
		assert.Equal(t, RoleLoser, nf.Role)

		alice, _ := lb.GetPlayer("alice")
		assert.Equal(t, 0, alice.Wins, "a failed match must not touch the winner")
		assert.Equal(t, rating.DefaultRating, alice.Rating)
	})

	t.Run("self match is rejected", func(t *testing.T) {
		lb := newTestBoard(t)
		_, err := lb.AddPlayer(NewPlayer{Name: "alice"})
		require.NoError(t, err)

		_, err = lb.RecordMatch("alice", "alice")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("games are conserved across the pair", func(t *testing.T) {
		lb := newTestBoard(t)
		_, err := lb.AddPlayer(NewPlayer{Name: "a", Wins: 3, Losses: 1})
		require.NoError(t, err)
		_, err = lb.AddPlayer(NewPlayer{Name: "b", Wins: 2, Losses: 2})
		require.NoError(t, err)

		_, err = lb.RecordMatch("b", "a")
		require.NoError(t, err)

		a, _ := lb.GetPlayer("a")
		b, _ := lb.GetPlayer("b")
		assert.Equal(t, 4+4+2, a.TotalGames()+b.TotalGames())
		assert.Equal(t, 3, b.Wins)
		assert.Equal(t, 2, a.Losses)
	})
}

func TestRecordMatch_Concurrent(t *testing.T) {
	lb := newTestBoard(t)
	_, err := lb.AddPlayer(NewPlayer{Name: "a"})
	require.NoError(t, err)
	_, err = lb.AddPlayer(NewPlayer{Name: "b"})
	require.NoError(t, err)

	const rounds = 50
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = lb.RecordMatch("a", "b")
		}()
		go func() {
			defer wg.Done()
			_ = lb.Standings()
		}()
	}
	wg.Wait()

	a, _ := lb.GetPlayer("a")
	b, _ := lb.GetPlayer("b")
	assert.Equal(t, rounds, a.Wins)
	assert.Equal(t, rounds, b.Losses)
	assert.Greater(t, a.Rating, b.Rating)
}
