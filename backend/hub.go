package main

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

const (
	msgStatus   = "status"
	msgHistory  = "history"
	msgReset    = "reset"
	msgSettings = "settings"
	msgPing     = "ping"
)

// Hub fans messages out to every connected websocket client. Slow clients
// drop messages rather than block the broadcaster.
type Hub struct {
	mu        sync.Mutex
	clients   map[*Client]struct{}
	broadcast chan wsMessage
	logger    *zap.Logger
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan wsMessage, 64),
		logger:    logger,
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-h.broadcast:
			data, err := json.Marshal(msg)
			if err != nil {
				h.logger.Warn("drop unencodable message", zap.String("type", msg.Type), zap.Error(err))
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				client.trySend(data)
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues payload for every client without blocking the caller.
func (h *Hub) Publish(msgType string, payload any) {
	select {
	case h.broadcast <- wsMessage{Type: msgType, Payload: mustMarshal(payload)}:
	default:
		h.logger.Warn("hub backlog full, dropping message", zap.String("type", msgType))
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.trySend(data)
}

func (c *Client) trySend(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}
