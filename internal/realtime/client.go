package realtime

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds a single frame write.
	writeWait = 10 * time.Second
	// pongWait is how long a connection may stay silent before it is
	// considered dead. Pings go out every pingPeriod to keep it alive.
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	maxMessageSize = 512

	// sendQueueSize is the per-client outbound buffer. A client further
	// behind than this gets dropped.
	sendQueueSize = 32
)

// clientCommand is the frame clients send to manage room subscriptions.
type clientCommand struct {
	Type    string `json:"type"`
	EventID string `json:"eventId"`
}

// Inbound frame types.
const (
	cmdJoinEventRoom  = "joinEventRoom"
	cmdLeaveEventRoom = "leaveEventRoom"
)

// Client is one websocket connection. All writes to the connection happen on
// the writePump goroutine; readPump only reads. send is never closed: the hub
// signals shutdown by closing done, so an in-flight broadcast can never hit a
// closed channel.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// readPump consumes room commands until the connection dies, then tears the
// client down.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.hub.logger.Debug("websocket read failed", "client_id", c.id, "error", err)
			}
			return
		}
		var cmd clientCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			c.hub.logger.Debug("ignoring malformed websocket frame", "client_id", c.id)
			continue
		}
		switch cmd.Type {
		case cmdJoinEventRoom:
			if cmd.EventID != "" {
				c.hub.subscribe(c, cmd.EventID)
			}
		case cmdLeaveEventRoom:
			if cmd.EventID != "" {
				c.hub.unsubscribe(c, cmd.EventID)
			}
		default:
			c.hub.logger.Debug("ignoring unknown websocket command", "client_id", c.id, "command", cmd.Type)
		}
	}
}

// writePump drains the send queue onto the connection and keeps it alive
// with pings. It exits when the client is unregistered or a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
