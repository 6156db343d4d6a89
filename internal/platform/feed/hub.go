// Package feed broadcasts finished puzzle results to WebSocket watchers.
package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Watchers only send control frames.
	maxMessageSize = 512

	sendBuffer    = 64
	publishBuffer = 64
)

// EventResult is the type of a finished-session event.
const EventResult = "result"

// Event is one message on the feed.
type Event struct {
	Type      string    `json:"type"`
	RunID     string    `json:"run_id"`
	PuzzleID  string    `json:"puzzle_id"`
	Success   bool      `json:"success"`
	Forfeited bool      `json:"forfeited"`
	Message   string    `json:"message"`
	Duration  float64   `json:"duration"`
	Time      time.Time `json:"time"`
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the set of connected watchers and fans events out to them.
// All bookkeeping happens on the Run goroutine.
type Hub struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	clients map[*client]bool

	broadcast  chan Event
	register   chan *client
	unregister chan *client
	count      chan chan int
	done       chan struct{}
}

// NewHub creates a hub. A nil logger uses the default logger.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Read-only feed, any origin may watch
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:    make(map[*client]bool),
		broadcast:  make(chan Event, publishBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		count:      make(chan chan int),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// disconnects every watcher.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.logger.Debug("feed watcher connected", "remote", c.conn.RemoteAddr(), "watchers", len(h.clients))

		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
				h.logger.Debug("feed watcher disconnected", "watchers", len(h.clients))
			}

		case ev := <-h.broadcast:
			h.fanOut(ev)

		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) fanOut(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("cannot marshal feed event", "error", err)
		return
	}
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow watcher
			h.drop(c)
		}
	}
}

// Publish queues ev for every connected watcher. It never blocks the
// caller; events are dropped when the hub is stopped or backed up.
func (h *Hub) Publish(ev Event) {
	if ev.Type == "" {
		ev.Type = EventResult
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	select {
	case <-h.done:
	case h.broadcast <- ev:
	default:
		h.logger.Warn("feed backlog full, dropping event", "run", ev.RunID)
	}
}

// Clients returns the number of connected watchers, or 0 once the hub
// has stopped.
func (h *Hub) Clients() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

// ServeHTTP upgrades the request and registers the connection as a watcher.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("feed upgrade failed", "error", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// Handler returns a mux serving the feed at /feed.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/feed", h)
	return mux
}

// readPump discards anything the watcher sends and notices disconnects.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("feed read error", "error", err)
			}
			return
		}
	}
}

// writePump sends queued events, one WebSocket message per event.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
