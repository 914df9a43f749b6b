package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Event types pushed to connected clients.
const (
	EventFollow  = "follow"
	EventLike    = "like"
	EventComment = "comment"
)

// Event is a realtime notification delivered over a websocket.
type Event struct {
	Type          string `json:"type"`
	ActorUsername string `json:"actor_username"`
	PhotoID       string `json:"photo_id,omitempty"`
	Comment       string `json:"comment,omitempty"`
	Timestamp     int64  `json:"timestamp"`
}

// NotificationHub tracks one websocket connection per user and pushes
// follow/like/comment events to them. Users who are not connected simply
// miss events; nothing is queued.
type NotificationHub struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn
}

// NewNotificationHub creates a new notification hub
func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		connections: make(map[string]*websocket.Conn),
	}
}

// Register registers a websocket connection for a user, replacing any
// existing one.
func (h *NotificationHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.connections[userID]; ok {
		existing.Close()
	}
	h.connections[userID] = conn

	log.Info().Str("user_id", userID).Msg("WebSocket connection registered")
}

// Unregister removes a user's websocket connection
func (h *NotificationHub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.connections[userID]; ok {
		conn.Close()
		delete(h.connections, userID)
		log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
	}
}

// IsOnline checks if a user has a live connection
func (h *NotificationHub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.connections[userID]
	return ok
}

// Notify sends an event to a user if they are connected
func (h *NotificationHub) Notify(userID string, event Event) error {
	h.mu.RLock()
	conn, ok := h.connections[userID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user %s is not connected", userID)
	}

	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.Unregister(userID)
		return fmt.Errorf("failed to send event: %w", err)
	}

	return nil
}
