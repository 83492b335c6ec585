package snapshot

import (
	"context"
	"errors"

	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

// ErrNoSnapshot is returned by Load when nothing was saved under a label.
var ErrNoSnapshot = errors.New("no snapshot stored for label")

// Store checkpoints the portable form of a leaderboard.
type Store interface {
	Save(ctx context.Context, snap leaderboard.Snapshot) error
	Load(ctx context.Context, label string) (leaderboard.Snapshot, error)
}
