package realtime

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Handler struct {
	hub     *Hub
	watcher *Watcher
}

func NewHandler(hub *Hub, watcher *Watcher) *Handler {
	return &Handler{hub: hub, watcher: watcher}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws", h.Serve)
}

func (h *Handler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("realtime: upgrade failed: %v", err)
		return
	}

	h.hub.Register(conn)

	// a fresh subscriber gets the current state immediately instead of
	// waiting for the next mutation
	if err := h.watcher.SendSnapshot(c.Request.Context(), conn); err != nil {
		h.hub.Unregister(conn)
		return
	}

	go h.readLoop(conn)
}

// readLoop drains the connection so close frames are seen; the feed is
// one-directional.
func (h *Handler) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.hub.Unregister(conn)
			return
		}
	}
}
