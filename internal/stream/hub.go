package stream

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub fans feed events out to websocket clients. Each rider has a channel
// per connected device; Redis pub/sub carries events across API instances.
type Hub struct {
	id      string
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	UserID string
	Send   chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		id:      uuid.NewString(),
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(userID string) *Client {
	client := &Client{
		UserID: userID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = map[*Client]struct{}{}
	}
	h.clients[userID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if userClients, ok := h.clients[client.UserID]; ok {
		delete(userClients, client)
		if len(userClients) == 0 {
			delete(h.clients, client.UserID)
		}
	}
	close(client.Send)
}

// Broadcast delivers to local clients directly and publishes to Redis for
// the other instances. The published copy carries this hub's id so the
// subscriber can skip it and not deliver locally twice.
func (h *Hub) Broadcast(userID string, payload []byte) {
	h.deliver(userID, payload)

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(userID), h.id+"|"+string(payload)).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) deliver(userID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "feed:*:events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		origin, payload := splitEnvelope(msg.Payload)
		if origin == h.id {
			continue
		}
		h.deliver(userIDFromChannel(msg.Channel), []byte(payload))
	}
}

func redisChannel(userID string) string {
	return "feed:" + userID + ":events"
}

func userIDFromChannel(ch string) string {
	// feed:{user}:events
	const prefix = "feed:"
	const suffix = ":events"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}

// splitEnvelope separates the publishing hub's id from the payload.
func splitEnvelope(s string) (origin, payload string) {
	if i := strings.Index(s, "|"); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}
