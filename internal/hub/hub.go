package hub

import (
	"encoding/json"
	"sync"

	"anonchat/internal/config"
	"anonchat/pkg/log"
)

// Hub owns the live websocket connections. It is transport only: it maps
// connection ids to clients and delivers already-addressed frames best-effort.
// Audience resolution (who should see what) lives in the coordinator.
type Hub struct {
	clients    map[string]*Client // connID -> client
	register   chan *Client
	unregister chan *Client
	outbound   chan *envelope
	mu         sync.RWMutex
	config     config.WebSocketConfig
}

type envelope struct {
	ConnID string
	Data   []byte
}

func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan *envelope, 256),
		config:     cfg,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			l := log.L()
			l.Debug().Str(log.FieldConnID, client.ID).Msg("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			l := log.L()
			l.Debug().Str(log.FieldConnID, client.ID).Msg("client unregistered")

		case env := <-h.outbound:
			h.mu.RLock()
			client, ok := h.clients[env.ConnID]
			h.mu.RUnlock()
			if !ok {
				// Stale target; delivery is fire-and-forget.
				continue
			}
			select {
			case client.Send <- env.Data:
			default:
				go h.removeClient(client)
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// SendTo marshals message and queues it for the given connection. Unknown
// connection ids are dropped silently.
func (h *Hub) SendTo(connID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		l := log.L()
		l.Error().Err(err).Str(log.FieldConnID, connID).Msg("failed to marshal outbound message")
		return
	}
	h.outbound <- &envelope{ConnID: connID, Data: data}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) removeClient(client *Client) {
	h.unregister <- client
}
