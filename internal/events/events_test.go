package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestNewMatchRecorded(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	res := leaderboard.MatchResult{
		Winner:      leaderboard.Player{Name: "alice", Wins: 1, Rating: 1516},
		Loser:       leaderboard.Player{Name: "bob", Losses: 1, Rating: 1484},
		WinnerDelta: 16,
		LoserDelta:  -16,
	}

	ev := NewMatchRecorded("Main", res, at)

	_, err := uuid.Parse(ev.ID)
	require.NoError(t, err, "event ID should be a UUID")
	assert.Equal(t, "Main", ev.Label)
	assert.Equal(t, "alice", ev.Winner)
	assert.Equal(t, "bob", ev.Loser)
	assert.Equal(t, 1516.0, ev.WinnerRating)
	assert.Equal(t, -16.0, ev.LoserDelta)
	assert.Equal(t, at, ev.RecordedAt)

	other := NewMatchRecorded("Main", res, at)
	assert.NotEqual(t, ev.ID, other.ID)
}

func TestDecode_MatchReport(t *testing.T) {
	payload, err := msgpack.Marshal(MatchReport{Winner: "alice", Loser: "bob"})
	require.NoError(t, err)

	var report MatchReport
	require.NoError(t, NewNoop().Decode(payload, &report))
	assert.Equal(t, MatchReport{Winner: "alice", Loser: "bob"}, report)

	assert.Error(t, NewNoop().Decode([]byte{0xc1}, &report), "0xc1 is never valid msgpack")
}

func TestNoop_Publish(t *testing.T) {
	assert.NoError(t, NewNoop().Publish(context.Background(), EventMatchRecorded, MatchRecorded{}))
}

func TestClientTopic(t *testing.T) {
	c := &client{prefix: "ladder"}
	assert.Equal(t, "ladder-match-recorded", c.topic(EventMatchRecorded))

	c = &client{}
	assert.Equal(t, "player-removed", c.topic(EventPlayerRemoved))
}
