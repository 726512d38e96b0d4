package live

import (
	"sync"

	"github.com/gorilla/websocket"
)

const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hub fans reservation events out to connected admin dashboards.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[conn] {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}

// Broadcast sends the event to every connection, dropping ones that fail.
// A nil hub is a no-op so wiring stays optional.
func (h *Hub) Broadcast(eventType string, data any) {
	if h == nil {
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	ev := Event{Type: eventType, Data: data}
	for _, c := range conns {
		if err := c.WriteJSON(ev); err != nil {
			h.Unregister(c)
		}
	}
}

func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
