package ws

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidemarsh/floodwatch/internal/engine"
	"github.com/tidemarsh/floodwatch/internal/observability"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHub(latest func() engine.Snapshot) *Hub {
	return NewHub(latest, discardLogger(), observability.NewMetricsForTesting())
}

func dial(t *testing.T, rawURL string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(rawURL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) engine.Snapshot {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var snap engine.Snapshot
	require.NoError(t, conn.ReadJSON(&snap))
	return snap
}

func TestClientReceivesInitialAndBroadcastFrames(t *testing.T) {
	hub := newTestHub(func() engine.Snapshot { return engine.Snapshot{TotalStations: 3} })
	frames := make(chan engine.Snapshot)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx, frames)

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv.URL)

	first := readFrame(t, conn)
	assert.Equal(t, 3, first.TotalStations, "connect must deliver the current snapshot")

	frames <- engine.Snapshot{TotalStations: 5, OnlineCount: 4}
	second := readFrame(t, conn)
	assert.Equal(t, 5, second.TotalStations)
	assert.Equal(t, 4, second.OnlineCount)
}

func TestMultipleClientsShareBroadcast(t *testing.T) {
	hub := newTestHub(func() engine.Snapshot { return engine.Snapshot{} })
	frames := make(chan engine.Snapshot)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx, frames)

	srv := httptest.NewServer(hub)
	defer srv.Close()

	connA := dial(t, srv.URL)
	connB := dial(t, srv.URL)
	readFrame(t, connA)
	readFrame(t, connB)

	frames <- engine.Snapshot{AlertLogSize: 7}
	assert.Equal(t, 7, readFrame(t, connA).AlertLogSize)
	assert.Equal(t, 7, readFrame(t, connB).AlertLogSize)
}

func TestShutdownClosesClients(t *testing.T) {
	hub := newTestHub(func() engine.Snapshot { return engine.Snapshot{} })
	frames := make(chan engine.Snapshot)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx, frames)

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv.URL)
	readFrame(t, conn)

	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var snap engine.Snapshot
		err := conn.ReadJSON(&snap)
		if err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway),
				"expected a going-away close, got %v", err)
			return
		}
	}
}

func TestBroadcastDropsStalledClient(t *testing.T) {
	hub := newTestHub(func() engine.Snapshot { return engine.Snapshot{} })

	stalled := &client{id: "stalled", send: make(chan engine.Snapshot)}
	healthy := &client{id: "healthy", send: make(chan engine.Snapshot, 1)}
	hub.clients[stalled.id] = stalled
	hub.clients[healthy.id] = healthy

	hub.broadcast(engine.Snapshot{TotalStations: 1})

	_, ok := hub.clients["stalled"]
	assert.False(t, ok, "a client with a full buffer must be dropped")
	_, ok = hub.clients["healthy"]
	assert.True(t, ok)

	select {
	case snap := <-healthy.send:
		assert.Equal(t, 1, snap.TotalStations)
	default:
		t.Fatal("healthy client should have the frame queued")
	}

	_, open := <-stalled.send
	assert.False(t, open, "dropped client's buffer must be closed")
}
