// Package ws streams engine snapshots to WebSocket dashboard clients.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tidemarsh/floodwatch/internal/engine"
	"github.com/tidemarsh/floodwatch/internal/observability"
)

const (
	writeTimeout = 5 * time.Second
	sendBuffer   = 4
)

// Hub fans published snapshots out to WebSocket clients. A client that
// cannot keep up is disconnected rather than allowed to stall the feed.
type Hub struct {
	latest   func() engine.Snapshot
	logger   *slog.Logger
	metrics  *observability.Metrics
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan engine.Snapshot
}

// NewHub creates a hub. latest supplies the current snapshot, sent to each
// client on connect so dashboards render without waiting for the next cycle.
func NewHub(latest func() engine.Snapshot, logger *slog.Logger, metrics *observability.Metrics) *Hub {
	return &Hub{
		latest:  latest,
		logger:  logger,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[string]*client),
	}
}

// Run fans frames out to connected clients until the context is cancelled,
// then closes every client.
func (h *Hub) Run(ctx context.Context, frames <-chan engine.Snapshot) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case snap := <-frames:
			h.broadcast(snap)
		}
	}
}

// ServeHTTP upgrades the request and registers the connection for frames.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan engine.Snapshot, sendBuffer),
	}
	c.send <- h.latest()

	h.mu.Lock()
	h.clients[c.id] = c
	count := len(h.clients)
	h.mu.Unlock()
	h.metrics.StreamClients.Set(float64(count))

	h.logger.Info("stream client connected", "client_id", c.id, "clients", count)

	go h.writeLoop(c)
	go h.readLoop(c)
}

// broadcast queues snap on every client. A client whose buffer is full is
// dropped: one stalled reader must not hold frames for the rest.
func (h *Hub) broadcast(snap engine.Snapshot) {
	h.mu.Lock()
	var stalled []string
	for id, c := range h.clients {
		select {
		case c.send <- snap:
		default:
			stalled = append(stalled, id)
		}
	}
	h.mu.Unlock()

	for _, id := range stalled {
		h.remove(id, "not keeping up")
	}
}

// writeLoop drains the client's frame buffer onto the wire. It exits when
// the buffer closes or a write fails.
func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()

	for snap := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)) //nolint:errcheck // best-effort deadline
		if err := c.conn.WriteJSON(snap); err != nil {
			h.remove(c.id, "write failed")
			return
		}
	}

	deadline := time.Now().Add(writeTimeout)
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
	c.conn.WriteControl(websocket.CloseMessage, msg, deadline) //nolint:errcheck // best-effort close notice
}

// readLoop discards inbound messages; the feed is one-way. It unblocks when
// the peer closes or errors and reaps the client.
func (h *Hub) readLoop(c *client) {
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c.id, "connection closed")
			return
		}
	}
}

func (h *Hub) remove(id, reason string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
		close(c.send)
	}
	count := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	h.metrics.StreamClients.Set(float64(count))
	h.logger.Info("stream client disconnected", "client_id", id, "reason", reason, "clients", count)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
	}
	h.metrics.StreamClients.Set(0)
}
