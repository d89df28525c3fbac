package realtime

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// NewHandler returns the HTTP handler that upgrades requests to websocket
// connections and registers them with the hub. allowedOrigins follows CORS
// semantics: "*" admits every origin, and requests without an Origin header
// (non-browser clients) are always admitted.
func NewHandler(hub *Hub, allowedOrigins []string) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Error("websocket upgrade failed", "error", err)
			return
		}
		client := &Client{
			id:   uuid.NewString(),
			hub:  hub,
			conn: conn,
			send: make(chan []byte, sendQueueSize),
			done: make(chan struct{}),
		}
		hub.register(client)
		go client.writePump()
		go client.readPump()
	}
}
