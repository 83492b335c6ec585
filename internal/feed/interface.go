package feed

import (
	"net/http"

	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

// Feed pushes standings to subscribed websocket clients.
type Feed interface {
	Broadcast(label string, standings []leaderboard.Player)
	Handler(lb *leaderboard.Leaderboard) http.HandlerFunc
	Clients() int
	Close()
}
