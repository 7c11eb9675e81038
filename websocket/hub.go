package websocket

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Événements diffusés aux administrateurs connectés
const (
	EventContactCreated           = "contact_created"
	EventInscriptionCreated       = "inscription_created"
	EventContactStatusChanged     = "contact_status_changed"
	EventInscriptionStatusChanged = "inscription_status_changed"
)

// Event est le message JSON envoyé aux clients
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub gère les connexions WebSocket des administrateurs
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	// Canal pour enregistrer les clients
	register chan *Client

	// Canal pour désenregistrer les clients
	unregister chan *Client

	// Canal pour diffuser les événements
	broadcast chan Event

	// Fermé à l'arrêt du hub
	done chan struct{}

	log *zap.SugaredLogger
}

// NewHub crée un nouveau hub WebSocket
func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run démarre la boucle principale du hub jusqu'à l'annulation du contexte
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				h.drop(client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Infow("🔌 Admin connecté", "email", client.Email, "total", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Infow("👋 Admin déconnecté", "email", client.Email, "total", total)

		case event := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- event:
				default:
					h.log.Warnw("❌ Canal plein, client déconnecté", "email", client.Email)
					h.drop(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast diffuse un événement à tous les administrateurs connectés, sans bloquer l'appelant
func (h *Hub) Broadcast(eventType string, data interface{}) {
	if h == nil {
		return
	}
	event := Event{Type: eventType, Data: data, Timestamp: time.Now().UTC()}
	select {
	case h.broadcast <- event:
	default:
		h.log.Warnw("⚠️  File de diffusion pleine, événement ignoré", "type", eventType)
	}
}

// drop retire le client et ferme son canal une seule fois. h.mu doit être tenu.
func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// deliver envoie un événement à un seul client sans bloquer.
// Retourne false si le client est plein ou déjà retiré par le hub.
func (h *Hub) deliver(c *Client, event Event) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- event:
		return true
	default:
		return false
	}
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount retourne le nombre de connexions actives
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
