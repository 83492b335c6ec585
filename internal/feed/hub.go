package feed

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

const writeWait = 10 * time.Second

// New creates a feed hub.
func New() Feed {
	return &hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 2048,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func encode(label string, standings []leaderboard.Player) ([]byte, error) {
	if standings == nil {
		standings = []leaderboard.Player{}
	}
	return json.Marshal(Message{Type: MessageTypeStandings, Label: label, Players: standings})
}

// Broadcast queues the standings for every client. Clients whose buffer is
// full are disconnected.
func (h *hub) Broadcast(label string, standings []leaderboard.Player) {
	msg, err := encode(label, standings)
	if err != nil {
		log.Error("Failed to encode standings for feed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.Warn("Dropping slow feed client", "remote", c.conn.RemoteAddr().String())
			h.removeLocked(c)
		}
	}
	log.Debug("Broadcast standings", "label", label, "clients", len(h.clients))
}

// Handler upgrades the request and subscribes the connection. The current
// standings of lb are sent first.
func (h *hub) Handler(lb *leaderboard.Leaderboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Websocket upgrade failed", "error", err)
			return
		}

		c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

		// The initial standings are read and queued while registering, so no
		// broadcast can fall between the two.
		h.mu.Lock()
		if h.closed {
			h.mu.Unlock()
			conn.Close()
			return
		}
		initial, err := encode(lb.Label(), lb.Standings())
		if err != nil {
			h.mu.Unlock()
			log.Error("Failed to encode initial standings", "error", err)
			conn.Close()
			return
		}
		c.send <- initial
		h.clients[c] = struct{}{}
		h.mu.Unlock()
		log.Info("Feed client connected", "remote", conn.RemoteAddr().String())

		go c.writer()
		h.reader(c)
	}
}

// reader discards inbound frames and unregisters the client once the
// connection is gone.
func (h *hub) reader(c *client) {
	defer func() {
		h.mu.Lock()
		h.removeLocked(c)
		h.mu.Unlock()
		log.Info("Feed client disconnected", "remote", c.conn.RemoteAddr().String())
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writer() {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func (h *hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}
