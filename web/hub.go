package web

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// MessageType identifies a message pushed to dashboard clients
type MessageType string

const (
	MessageTypeStatus MessageType = "status"
	MessageTypeEvent  MessageType = "event"
	MessageTypeMenu   MessageType = "menu"
)

// Message is the envelope of every WebSocket message
type Message struct {
	Type MessageType `json:"type"`
	Data any         `json:"data"`
}

// StatusMessage reports a change of the agent state
type StatusMessage struct {
	Status string `json:"status"`
}

// EventMessage carries one event of the portable event stream
type EventMessage struct {
	Type      string `json:"type"`
	Source    string `json:"source,omitempty"`
	Key       string `json:"key,omitempty"`
	ScanCode  uint32 `json:"scancode,omitempty"`
	Modifiers string `json:"modifiers,omitempty"`
	Pressed   bool   `json:"pressed,omitempty"`
	MenuID    int    `json:"menu_id,omitempty"`
	URL       string `json:"url,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Hub fans messages out to every connected client
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until Stop is called
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// slow client, drop it
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Stop disconnects all clients and ends Run
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// BroadcastMessage encodes msg and queues it for every client
func (h *Hub) BroadcastMessage(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Failed to encode WebSocket message", "error", err, "type", msg.Type)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		slog.Warn("WebSocket broadcast queue full, dropping message", "type", msg.Type)
	}
}

// Client is one WebSocket connection
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// readPump discards client input and detects closed connections
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("WebSocket read error", "error", err)
			}
			return
		}
	}
}

// writePump sends queued messages and keepalive pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
