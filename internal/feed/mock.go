package feed

import (
	"net/http"
	"sync"

	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

var _ Feed = (*Mock)(nil)

// BroadcastCall records one Broadcast invocation.
type BroadcastCall struct {
	Label     string
	Standings []leaderboard.Player
}

// Mock records broadcasts without any network.
type Mock struct {
	mu    sync.Mutex
	calls []BroadcastCall
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Broadcast(label string, standings []leaderboard.Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, BroadcastCall{Label: label, Standings: standings})
}

func (m *Mock) Handler(lb *leaderboard.Leaderboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "feed disabled", http.StatusNotImplemented)
	}
}

func (m *Mock) Clients() int { return 0 }

func (m *Mock) Close() {}

// Broadcasts returns a copy of the recorded broadcasts.
func (m *Mock) Broadcasts() []BroadcastCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]BroadcastCall, len(m.calls))
	copy(out, m.calls)
	return out
}
