package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lucas/colonysim/internal/colony"
)

// Client represents a WebSocket client connection watching the colony.
type Client struct {
	ID   uuid.UUID
	Conn *websocket.Conn
	Send chan []byte
	hub  *Hub
}

// Hub fans out tick broadcasts to every connected viewer. There is one
// colony per process so, unlike the teacher's per-game Hub rooms, every
// client shares a single broadcast set.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case data := <-h.broadcast:
			h.broadcastAll(data)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	log.Printf("client %s connected", client.ID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
		log.Printf("client %s disconnected", client.ID)
	}
}

func (h *Hub) broadcastAll(data []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.unregister <- client
		}
	}
}

// TickUpdate is the payload broadcast once per tick, the colony-sim
// analogue of the teacher's TickUpdateMessage.
type TickUpdate struct {
	Type          string                `json:"type"`
	Tick          int                   `json:"tick"`
	Notifications []colony.Notification `json:"notifications"`
}

// BroadcastTick implements colony.Broadcaster.
func (h *Hub) BroadcastTick(tick int, notifications []colony.Notification) {
	data, err := json.Marshal(TickUpdate{Type: "tick", Tick: tick, Notifications: notifications})
	if err != nil {
		log.Printf("failed to marshal tick update: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		log.Printf("broadcast channel full, dropping tick %d", tick)
	}
}

// Register adds a new client to the hub.
func (h *Hub) Register(client *Client) { h.register <- client }

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) { h.unregister <- client }

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
