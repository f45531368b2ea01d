package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"brainmode-be/internal/pkg/logger"
	"brainmode-be/pkg/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	hubModule = "ContextStreamHub"

	// ClusterChannel carries context events between service instances.
	ClusterChannel = "brain:context_events"
)

// Hub fans context events out to the editors watching each view.
type Hub struct {
	// Watching clients: context id -> connections (one editor may open several buffers)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	// Closed when Run returns, so pending unregistrations give up
	done chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance delivery, nil on a single instance
	rdb *redis.Client

	// Identifies this instance so its own cluster messages are not delivered twice
	instanceID string

	logger logger.ILogger
}

type clusterMessage struct {
	Origin    string          `json:"origin"`
	ContextID string          `json:"context_id"`
	Message   json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// Run serves registrations until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ContextID] = append(h.clients[client.ContextID], client)
			h.mu.Unlock()
			h.logger.Info(hubModule, "Client registered", map[string]interface{}{"context_id": client.ContextID})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.ContextID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.ContextID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.ContextID]) == 0 {
		delete(h.clients, client.ContextID)
		h.logger.Info(hubModule, "No clients left for view", map[string]interface{}{"context_id": client.ContextID})
	}
}

// Watchers reports how many connections follow contextID on this instance.
func (h *Hub) Watchers(contextID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[contextID])
}

// Publish delivers event to the local watchers of its view and forwards it to the other
// instances. It implements events.Publisher.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	contextID, _ := event.Payload()["context_id"].(string)
	if contextID == "" {
		return nil
	}

	data, err := json.Marshal(map[string]interface{}{
		"type":        event.EventType(),
		"data":        event.Payload(),
		"occurred_at": event.Timestamp(),
	})
	if err != nil {
		return err
	}

	h.deliver(contextID, data)

	if h.rdb != nil {
		payload, err := json.Marshal(clusterMessage{Origin: h.instanceID, ContextID: contextID, Message: data})
		if err != nil {
			return err
		}
		return h.rdb.Publish(ctx, ClusterChannel, payload).Err()
	}
	return nil
}

// leave unregisters client unless the hub has stopped.
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// deliver never blocks: a client whose buffer is full is dropped.
func (h *Hub) deliver(contextID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[contextID] {
		select {
		case client.Send <- data:
		default:
			client.drop.Do(func() {
				h.logger.Warn(hubModule, "Client send buffer full, dropping connection", map[string]interface{}{"context_id": contextID})
				go h.leave(client)
			})
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn(hubModule, "Malformed cluster message", map[string]interface{}{"error": err.Error()})
				continue
			}
			if payload.Origin == h.instanceID {
				continue
			}
			h.deliver(payload.ContextID, payload.Message)
		}
	}
}
