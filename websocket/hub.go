package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client represents a connected WebSocket client
type Client struct {
	Hub  *Hub
	ID   uint
	Conn *websocket.Conn
	Send chan []byte
}

// Hub fans batch events out to connected admin clients
type Hub struct {
	// Registered clients
	Clients map[uint]*Client

	// Broadcast channel for messages to all clients
	Broadcast chan *Message

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex
}

// Message is an event pushed to the admin feed
type Message struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// BatchSubmittedData describes a bulk submission that just committed
type BatchSubmittedData struct {
	TrainNo    string `json:"trainNo"`
	TrainName  string `json:"trainName"`
	ReportDate string `json:"reportDate"`
	Count      int    `json:"count"`
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[uint]*Client),
		Broadcast:  make(chan *Message, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("🔌 Admin client registered: ID=%d", client.ID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client.ID]; ok {
				delete(h.Clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Admin client unregistered: ID=%d", client.ID)

		case message := <-h.Broadcast:
			h.broadcastMessage(message)
		}
	}
}

// NotifyBatchSubmitted queues a batch-submitted event without blocking the
// submitting request
func (h *Hub) NotifyBatchSubmitted(data BatchSubmittedData) {
	message := &Message{
		Type:      "batch_submitted",
		Timestamp: time.Now(),
		Data:      data,
	}
	select {
	case h.Broadcast <- message:
	default:
		log.Printf("⚠️ Admin feed channel is full, dropping batch event for train %s", data.TrainNo)
	}
}

// broadcastMessage sends a message to all connected clients
func (h *Hub) broadcastMessage(message *Message) {
	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Error marshaling broadcast message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, client := range h.Clients {
		select {
		case client.Send <- payload:
		default:
			log.Printf("⚠️ Client %d send buffer full, dropping message", id)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients)
}
