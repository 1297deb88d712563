package ws

import (
	"sync"
	"time"

	"github.com/modurim/homepick-api/internal/logger"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

// Hub maintains the set of clients attached to each user's appliance state
// feed and fans committed state changes out to them.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan *UserMessage

	users map[uint]map[*Client]bool // userID -> set of clients
	mu    sync.RWMutex
}

// UserMessage carries a payload destined for one user's clients.
type UserMessage struct {
	UserID  uint
	Message []byte
}

// NewHub creates and returns a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan *UserMessage),
		users:      make(map[uint]map[*Client]bool),
	}
}

// Run handles register, unregister, and broadcast events. It should be
// launched as a goroutine.
func (h *Hub) Run() {
	log := logger.Get()

	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.users[client.UserID] == nil {
				h.users[client.UserID] = make(map[*Client]bool)
			}
			h.users[client.UserID][client] = true
			h.mu.Unlock()

			log.Info("state feed client attached", zap.Uint("user_id", client.UserID))

		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.users[client.UserID]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.users, client.UserID)
					}
				}
			}
			h.mu.Unlock()

			log.Info("state feed client detached", zap.Uint("user_id", client.UserID))

		case msg := <-h.Broadcast:
			h.mu.RLock()
			for client := range h.users[msg.UserID] {
				select {
				case client.Send <- msg.Message:
				default:
					// Slow consumer; drop the message rather than block the hub.
					log.Warn("dropping state feed message for slow client",
						zap.Uint("user_id", msg.UserID))
				}
			}
			h.mu.RUnlock()
		}
	}
}

// HasClients reports whether any client is attached to the user's feed.
func (h *Hub) HasClients(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID]) > 0
}
