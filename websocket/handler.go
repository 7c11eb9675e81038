package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"qwesty-backend/constants"
	"qwesty-backend/models"
	"qwesty-backend/utils"
)

// Handler gère les connexions WebSocket du back-office
type Handler struct {
	hub       *Hub
	jwtSecret string
	upgrader  websocket.Upgrader
}

// NewHandler crée un nouveau handler WebSocket. Les origines suivent la configuration CORS.
func NewHandler(hub *Hub, jwtSecret string, allowedOrigins []string) *Handler {
	return &Handler{
		hub:       hub,
		jwtSecret: jwtSecret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

// ServeWS gère /ws/admin : le premier message doit être {"type":"authenticate","token":"..."}
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade a déjà répondu au client
		h.hub.log.Warnw("❌ Erreur upgrade WebSocket", "erreur", err)
		return
	}

	go h.authenticate(conn)
}

func (h *Handler) authenticate(conn *websocket.Conn) {
	reject := func(message string) {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(map[string]string{"type": "error", "message": message})
		conn.Close()
	}

	conn.SetReadDeadline(time.Now().Add(authWait))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		return
	}

	var msg clientMessage
	if err := json.Unmarshal(raw, &msg); err != nil || msg.Type != "authenticate" {
		reject("Authentification requise")
		return
	}
	if msg.Token == "" {
		reject(constants.ErrTokenMissing)
		return
	}

	claims, err := utils.ValidateToken(msg.Token, h.jwtSecret)
	if err != nil {
		reject(constants.ErrTokenInvalid)
		return
	}
	if claims.Role != models.RoleAdmin {
		h.hub.log.Warnw("⚠️  Connexion WebSocket refusée", "email", claims.Email, "role", claims.Role)
		reject(constants.ErrAdminOnly)
		return
	}

	client := &Client{
		hub:   h.hub,
		conn:  conn,
		send:  make(chan interface{}, 256),
		Email: claims.Email,
	}
	h.hub.deliver(client, Event{
		Type:      "authenticated",
		Data:      models.AdminIdentity{Email: claims.Email, Role: claims.Role},
		Timestamp: time.Now().UTC(),
	})

	if !h.hub.add(client) {
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
