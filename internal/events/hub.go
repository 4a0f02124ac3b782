package events

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/promptduel/promptduel-go/internal/model"
)

// Topic names an event stream. Sessions and queued players each get one.
type Topic string

// SessionTopic returns the topic for a session's events
func SessionTopic(id model.SessionID) Topic {
	return Topic(fmt.Sprintf("session:%s", id))
}

// QueueTopic returns the topic a queued player receives match
// notifications on; it doubles as the queue entry's channel handle
func QueueTopic(playerID model.PlayerID) Topic {
	return Topic(fmt.Sprintf("queue:%s", playerID))
}

// Hub manages SSE clients for a single topic
type Hub struct {
	topic   Topic
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a new Hub for a topic
func NewHub(topic Topic, logger *slog.Logger) *Hub {
	return &Hub{
		topic:      topic,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("topic", string(topic))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client registered",
				slog.String("player_id", string(client.playerID)),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				duration := time.Since(client.connectedAt)
				h.logger.Info("sse client unregistered",
					slog.String("player_id", string(client.playerID)),
					slog.Duration("connection_duration", duration),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			droppedCount := 0
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					droppedCount++
				}
			}
			h.mu.RUnlock()
			if droppedCount > 0 {
				h.logger.Warn("sse message dropped - client buffer full",
					slog.Int("dropped", droppedCount))
			}

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast sends a message to all clients. Delivery is best-effort:
// a full hub or client buffer drops the message rather than blocking.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped - hub buffer full")
	}
}

// BroadcastEvent sends an SSE event with a name and data
func (h *Hub) BroadcastEvent(eventName string, data []byte) {
	h.Broadcast(formatSSEMessage(eventName, string(data)))
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message with event name and data.
// Multi-line data gets a "data: " prefix on each line.
func formatSSEMessage(eventName, data string) []byte {
	msg := "event: " + eventName + "\n"
	for _, line := range splitLines(data) {
		msg += "data: " + line + "\n"
	}
	msg += "\n"
	return []byte(msg)
}

// splitLines splits a string into lines, handling various line endings
func splitLines(s string) []string {
	var lines []string
	var current string
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
		} else if r != '\r' {
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// HubManager manages hubs for all topics
type HubManager struct {
	hubs   map[Topic]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[Topic]*Hub),
		logger: logger.With(slog.String("component", "events")),
	}
}

// GetOrCreateHub returns the hub for a topic, creating one if it doesn't exist
func (m *HubManager) GetOrCreateHub(topic Topic) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[topic]; ok {
		return hub
	}

	hub := NewHub(topic, m.logger)
	m.hubs[topic] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a topic, or nil if it doesn't exist
func (m *HubManager) GetHub(topic Topic) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[topic]
}

// RemoveHub removes and closes a hub
func (m *HubManager) RemoveHub(topic Topic) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[topic]; ok {
		hub.Close()
		delete(m.hubs, topic)
	}
}

// CleanupEmptyHubs removes hubs with no clients
func (m *HubManager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	removedCount := 0
	for topic, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, topic)
			removedCount++
		}
	}
	if removedCount > 0 {
		m.logger.Info("sse empty hubs cleaned up", slog.Int("removed", removedCount))
	}
}
