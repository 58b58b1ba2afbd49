package realtime

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

var errNotRegistered = errors.New("connection not registered")

// Hub tracks the open snapshot subscriptions. The websocket package allows
// only one concurrent writer per connection, so every write goes through the
// connection's own lock: a broadcast triggered by one mutation can race
// another mutation's broadcast, the Redis fan-out, or the initial snapshot
// for a fresh subscriber.
type Hub struct {
	connections map[*websocket.Conn]*sync.Mutex
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]*sync.Mutex),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.connections[conn] = &sync.Mutex{}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.connections[conn]; exists {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}

// Send writes the message to one registered connection.
func (h *Hub) Send(conn *websocket.Conn, message interface{}) error {
	h.mutex.RLock()
	writeLock, ok := h.connections[conn]
	h.mutex.RUnlock()

	if !ok {
		return errNotRegistered
	}

	writeLock.Lock()
	defer writeLock.Unlock()
	return conn.WriteJSON(message)
}

// Broadcast writes the message to every subscriber, dropping connections
// that fail.
func (h *Hub) Broadcast(message interface{}) {
	h.mutex.RLock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(h.connections))
	for conn, writeLock := range h.connections {
		conns[conn] = writeLock
	}
	h.mutex.RUnlock()

	for conn, writeLock := range conns {
		writeLock.Lock()
		err := conn.WriteJSON(message)
		writeLock.Unlock()
		if err != nil {
			h.Unregister(conn)
		}
	}
}

func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.connections {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}
