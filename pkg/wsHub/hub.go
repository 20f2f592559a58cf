package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/Temutjin2k/geo-attendance/pkg/logger"
	wrap "github.com/Temutjin2k/geo-attendance/pkg/logger/wrapper"
	"github.com/google/uuid"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// ConnectionHub keeps every open dashboard connection
type ConnectionHub struct {
	clients map[uuid.UUID]*Conn
	l       logger.Logger
	mu      sync.Mutex
}

func NewConnHub(l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		clients: make(map[uuid.UUID]*Conn),
		l:       l,
	}
}

// Add registers a connection.
func (h *ConnectionHub) Add(conn *Conn) error {
	if conn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[conn.id] = conn
	return nil
}

// Delete closes and removes the connection with the given id
func (h *ConnectionHub) Delete(id uuid.UUID) error {
	h.mu.Lock()
	conn, ok := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()

	if !ok {
		return ErrConnIsNotFound
	}

	if err := conn.Close(); err != nil {
		h.l.Debug(wrap.WithAction(context.Background(), "ws_connection_delete"),
			"failed to close conn",
			"conn_id", id,
			"err", err.Error(),
		)
	}
	return nil
}

// Broadcast sends msg to every connection. Connections that fail are dropped.
// It returns the number of successful deliveries.
func (h *ConnectionHub) Broadcast(ctx context.Context, msg any) int {
	ctx = wrap.WithAction(ctx, "ws_broadcast")

	delivered := 0
	for id, conn := range h.Clients() {
		if err := conn.Send(msg); err != nil {
			h.l.Warn(ctx, "dropping websocket connection", "conn_id", id, "err", err.Error())
			_ = h.Delete(id)
			continue
		}
		delivered++
	}
	return delivered
}

// Close closes every websocket connection
func (h *ConnectionHub) Close() {
	for id := range h.Clients() {
		_ = h.Delete(id)
	}

	h.l.Info(wrap.WithAction(context.Background(), "hub_close"), "all websocket connections closed gracefully")
}

// Clients returns a copy of the connection map
func (h *ConnectionHub) Clients() map[uuid.UUID]*Conn {
	h.mu.Lock()
	defer h.mu.Unlock()

	copyMap := make(map[uuid.UUID]*Conn, len(h.clients))
	for id, conn := range h.clients {
		copyMap[id] = conn
	}
	return copyMap
}

// Len returns the number of open connections
func (h *ConnectionHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
