package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"neighborhub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *logger.Logger
}

type Message struct {
	Type      string                 `json:"type"`
	RoomID    string                 `json:"room_id,omitempty"`
	UserID    *primitive.ObjectID    `json:"user_id,omitempty"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		done:       make(chan struct{}),
		logger:     log,
	}
}

// Run serves registrations until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.mutex.Lock()
			h.removeClient(client)
			h.mutex.Unlock()

		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for client := range h.clients {
				h.removeClient(client)
			}
			h.mutex.Unlock()
			return
		}
	}
}

// Register hands client to the running hub. It reports false once the hub has
// stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func UserRoom(userID primitive.ObjectID) string {
	return "user_" + userID.Hex()
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	h.joinRoom(client, UserRoom(client.UserID))
	h.logger.WithUserID(client.UserID).Debug("Websocket client registered")

	h.sendToClient(client, Message{
		Type:      "welcome",
		UserID:    &client.UserID,
		Timestamp: getCurrentTimestamp(),
		Data: map[string]interface{}{
			"message": "Connected successfully",
		},
	})
}

// removeClient must be called with the write lock held.
func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	close(client.send)

	for roomID := range client.rooms {
		if room, exists := h.rooms[roomID]; exists {
			delete(room, client)
			if len(room) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}

	h.logger.WithUserID(client.UserID).Debug("Websocket client unregistered")
}

// Broadcast delivers message to every connected client.
func (h *Hub) Broadcast(message Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to encode websocket message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		h.deliver(client, data)
	}
}

// SendToUser delivers message to every connection of userID and reports
// whether at least one was open.
func (h *Hub) SendToUser(userID primitive.ObjectID, message Message) bool {
	return h.SendToRoom(UserRoom(userID), message)
}

func (h *Hub) SendToRoom(roomID string, message Message) bool {
	message.RoomID = roomID
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to encode websocket message")
		return false
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	room, exists := h.rooms[roomID]
	if !exists {
		return false
	}

	for client := range room {
		h.deliver(client, data)
	}
	return true
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) sendToClient(client *Client, message Message) {
	data, _ := json.Marshal(message)
	h.deliver(client, data)
}

// deliver drops clients whose send buffer is full; write lock held.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		h.removeClient(client)
	}
}

func (h *Hub) joinRoom(client *Client, roomID string) {
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
	client.rooms[roomID] = true
}

func getCurrentTimestamp() int64 {
	return time.Now().Unix()
}
