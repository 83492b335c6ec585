package feed

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

// sendBuffer is how many messages a client may lag behind before it is dropped.
const sendBuffer = 16

// MessageTypeStandings is the only message type the feed emits.
const MessageTypeStandings = "standings"

// Message is the JSON envelope written to every client.
type Message struct {
	Type    string               `json:"type"`
	Label   string               `json:"label"`
	Players []leaderboard.Player `json:"players"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

type hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	closed   bool
}
