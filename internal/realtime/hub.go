package realtime

import (
	"sync"
)

// AllTopics subscribes a client to every topic.
const AllTopics = "*"

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub fans cache change events out to subscribed clients. Topics are type
// tags.
type Hub struct {
	mu             sync.RWMutex
	topicToClients map[string]map[Client]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		topicToClients: make(map[string]map[Client]struct{}),
	}
}

// Subscribe adds a client under a topic.
func (h *Hub) Subscribe(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.topicToClients[topic]; !ok {
		h.topicToClients[topic] = make(map[Client]struct{})
	}
	h.topicToClients[topic][client] = struct{}{}
}

// Unsubscribe removes a client; if the topic has no more clients, cleans up map.
func (h *Hub) Unsubscribe(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.topicToClients[topic]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.topicToClients, topic)
		}
	}
}

// Broadcast sends a message to the clients of topic and to those subscribed
// to AllTopics. It returns how many clients accepted the message.
func (h *Hub) Broadcast(topic string, message []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	send := func(clients map[Client]struct{}) {
		for c := range clients {
			// a failed write is cleaned up by the handler owning the client
			if c.Send(message) {
				delivered++
			}
		}
	}
	if topic != AllTopics {
		send(h.topicToClients[topic])
	}
	send(h.topicToClients[AllTopics])
	return delivered
}

// Len returns the number of subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.topicToClients {
		n += len(clients)
	}
	return n
}
