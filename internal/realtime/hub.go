// Package realtime fans membership changes out to websocket subscribers.
//
// Clients subscribe to per-event rooms to hear joins and leaves for that
// event; every connected client hears attendee-count updates for all events.
package realtime

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"eventcheckin/internal/domain"
)

// wsMessage is the wire envelope for every frame the hub sends.
type wsMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Outbound frame types.
const (
	msgUserJoined   = "userJoined"
	msgUserLeft     = "userLeft"
	msgEventUpdated = "eventUpdated"
)

// Hub tracks connected websocket clients and their room subscriptions. It
// implements domain.Broadcaster; Broadcast never blocks on a client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{} // eventID -> subscribers
	logger  *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		rooms:   make(map[string]map[*Client]struct{}),
		logger:  logger,
	}
}

// Broadcast routes a membership change to its audience: joins and leaves go
// to the event's room, attendee-count updates go to every connected client.
func (h *Hub) Broadcast(msg domain.BroadcastMessage) {
	switch m := msg.(type) {
	case domain.MemberJoinedMessage:
		h.toRoom(m.EventID, wsMessage{Type: msgUserJoined, Data: m})
	case domain.MemberLeftMessage:
		h.toRoom(m.EventID, wsMessage{Type: msgUserLeft, Data: m})
	case domain.EventChangedMessage:
		h.toAll(wsMessage{Type: msgEventUpdated, Data: m})
	default:
		h.logger.Warn("dropping broadcast of unknown type", "type", fmt.Sprintf("%T", msg))
	}
}

func (h *Hub) toRoom(eventID string, msg wsMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal broadcast", "type", msg.Type, "error", err)
		return
	}
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.rooms[eventID]))
	for c := range h.rooms[eventID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()
	h.deliver(targets, payload)
}

func (h *Hub) toAll(msg wsMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal broadcast", "type", msg.Type, "error", err)
		return
	}
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()
	h.deliver(targets, payload)
}

// deliver enqueues the payload on each client. A client whose queue is full
// has stopped draining and gets dropped.
func (h *Hub) deliver(targets []*Client, payload []byte) {
	for _, c := range targets {
		select {
		case c.send <- payload:
		default:
			h.logger.Warn("dropping slow websocket client", "client_id", c.id)
			h.unregister(c)
		}
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", "client_id", c.id)
}

// unregister removes the client from the hub and every room, and signals its
// write pump to shut down. Safe to call more than once.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for eventID, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, eventID)
		}
	}
	close(c.done)
	h.logger.Debug("websocket client disconnected", "client_id", c.id)
}

func (h *Hub) subscribe(c *Client, eventID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	if h.rooms[eventID] == nil {
		h.rooms[eventID] = make(map[*Client]struct{})
	}
	h.rooms[eventID][c] = struct{}{}
	h.logger.Debug("websocket client joined room", "client_id", c.id, "event_id", eventID)
}

func (h *Hub) unsubscribe(c *Client, eventID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[eventID]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, eventID)
	}
	h.logger.Debug("websocket client left room", "client_id", c.id, "event_id", eventID)
}
