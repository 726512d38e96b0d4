package live

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestConn(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestHub_BroadcastReachesRegisteredConnections(t *testing.T) {
	hub := NewHub()
	client := dialTestConn(t, hub)

	require.Eventually(t, func() bool {
		return hub.ConnectionCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast(EventReservationCreated, map[string]string{"id": "abc"})

	require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
	var ev Event
	require.NoError(t, client.ReadJSON(&ev))
	assert.Equal(t, EventReservationCreated, ev.Type)
}

func TestHub_UnregisterClosesConnection(t *testing.T) {
	hub := NewHub()
	dialTestConn(t, hub)

	require.Eventually(t, func() bool {
		return hub.ConnectionCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.mu.RLock()
	var conn *websocket.Conn
	for c := range hub.conns {
		conn = c
	}
	hub.mu.RUnlock()

	hub.Unregister(conn)
	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestHub_NilHubBroadcastIsNoOp(t *testing.T) {
	var hub *Hub
	assert.NotPanics(t, func() {
		hub.Broadcast(EventReservationCancelled, nil)
	})
}
