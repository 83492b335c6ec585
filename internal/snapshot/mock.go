package snapshot

import (
	"context"
	"sync"

	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

var _ Store = (*Mock)(nil)

// Mock is an in-memory Store for tests. It is safe for concurrent use.
type Mock struct {
	mu        sync.Mutex
	snapshots map[string]leaderboard.Snapshot

	SaveFunc  func(snap leaderboard.Snapshot) error
	SaveCalls []leaderboard.Snapshot
}

// NewMock creates an empty mock store.
func NewMock() *Mock {
	return &Mock{snapshots: make(map[string]leaderboard.Snapshot)}
}

func (m *Mock) Save(ctx context.Context, snap leaderboard.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, snap)
	if m.SaveFunc != nil {
		if err := m.SaveFunc(snap); err != nil {
			return err
		}
	}
	m.snapshots[snap.Label] = snap
	return nil
}

func (m *Mock) Load(ctx context.Context, label string) (leaderboard.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snapshots[label]
	if !ok {
		return leaderboard.Snapshot{}, ErrNoSnapshot
	}
	return snap, nil
}

// Saves returns the number of Save calls.
func (m *Mock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SaveCalls)
}
