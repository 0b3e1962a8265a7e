package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lucas/colonysim/internal/colony"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the configured front-end origin once one exists.
		return true
	},
}

// SnapshotProvider supplies a new connection with the colony's current
// full state before it starts receiving incremental tick broadcasts.
type SnapshotProvider interface {
	Snapshot() colony.ColonySnapshot
}

// Handler handles WebSocket connections for colony viewers.
type Handler struct {
	hub      *Hub
	snapshot SnapshotProvider
}

// NewHandler creates a new WebSocket handler.
func NewHandler(hub *Hub, snapshot SnapshotProvider) *Handler {
	return &Handler{hub: hub, snapshot: snapshot}
}

// ServeWS upgrades an HTTP request to a WebSocket connection.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		ID:   uuid.New(),
		Conn: conn,
		Send: make(chan []byte, 256),
		hub:  h.hub,
	}
	h.hub.Register(client)

	if h.snapshot != nil {
		data, err := json.Marshal(struct {
			Type string                `json:"type"`
			Data colony.ColonySnapshot `json:"data"`
		}{Type: "snapshot", Data: h.snapshot.Snapshot()})
		if err == nil {
			client.Send <- data
		}
	}

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}
		c.handleMessage(message)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes incoming messages from a viewer; "ping" is the
// only client-originated message the hub understands today, since every
// colony command goes through the HTTP API instead.
func (c *Client) handleMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("failed to parse client message: %v", err)
		return
	}

	switch msg.Type {
	case "ping":
		response, _ := json.Marshal(map[string]string{"type": "pong"})
		c.Send <- response
	default:
		log.Printf("unknown message type: %s", msg.Type)
	}
}

// ClientMessage represents a message from a WebSocket client.
type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}
