package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qwesty-backend/constants"
	"qwesty-backend/models"
	"qwesty-backend/utils"
)

const testSecret = "ws-secret"

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(zap.NewNop().Sugar())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(NewHandler(hub, testSecret, []string{"*"}).ServeWS))
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken("admin@qwesty.fr", role, testSecret)
	require.NoError(t, err)
	return tok
}

func TestHub_diffusionAuxAdmins(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "authenticate", "token": token(t, models.RoleAdmin)}))

	var ack map[string]interface{}
	require.NoError(t, conn.ReadJSON(&ack))
	assert.Equal(t, "authenticated", ack["type"])

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast(EventContactCreated, map[string]string{"_id": "c1"})

	var event struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, EventContactCreated, event.Type)
	assert.Equal(t, "c1", event.Data["_id"])
}

func TestHub_ping(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "authenticate", "token": token(t, models.RoleAdmin)}))
	var ack map[string]interface{}
	require.NoError(t, conn.ReadJSON(&ack))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	var pong map[string]interface{}
	require.NoError(t, conn.ReadJSON(&pong))
	assert.Equal(t, "pong", pong["type"])
}

func TestHub_refus(t *testing.T) {
	tests := []struct {
		name    string
		message map[string]string
		want    string
	}{
		{"premier message inattendu", map[string]string{"type": "ping"}, "Authentification requise"},
		{"token absent", map[string]string{"type": "authenticate"}, constants.ErrTokenMissing},
		{"token invalide", map[string]string{"type": "authenticate", "token": "abc"}, constants.ErrTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub, url := startHub(t)
			conn := dial(t, url)

			require.NoError(t, conn.WriteJSON(tt.message))

			var reply map[string]string
			require.NoError(t, conn.ReadJSON(&reply))
			assert.Equal(t, "error", reply["type"])
			assert.Equal(t, tt.want, reply["message"])
			assert.Zero(t, hub.ClientCount())
		})
	}
}

func TestHub_roleNonAdmin(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "authenticate", "token": token(t, "visiteur")}))

	var reply map[string]string
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, constants.ErrAdminOnly, reply["message"])
	assert.Zero(t, hub.ClientCount())
}

func TestHub_BroadcastNilEtSansClient(t *testing.T) {
	var nilHub *Hub
	nilHub.Broadcast(EventContactCreated, nil)

	hub := NewHub(zap.NewNop().Sugar())
	for i := 0; i < 300; i++ {
		hub.Broadcast(EventInscriptionCreated, i)
	}
	assert.Len(t, hub.broadcast, cap(hub.broadcast))
}

func TestHub_clientLentRetireSansPanique(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zap.NewNop().Sugar())
	go hub.Run(ctx)

	slow := &Client{hub: hub, send: make(chan interface{}, 1), Email: "lent@qwesty.fr"}
	require.True(t, hub.add(slow))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	// Le client ne lit jamais : le deuxième événement déborde son canal
	hub.Broadcast(EventContactCreated, "c1")
	hub.Broadcast(EventContactCreated, "c2")
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	assert.NotPanics(t, func() {
		assert.False(t, hub.deliver(slow, Event{Type: "pong"}))
	})
}

func TestHub_deliverApresArret(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hub := NewHub(zap.NewNop().Sugar())
	go hub.Run(ctx)

	client := &Client{hub: hub, send: make(chan interface{}, 4), Email: "admin@qwesty.fr"}
	require.True(t, hub.add(client))
	assert.True(t, hub.deliver(client, Event{Type: "pong"}))

	cancel()
	<-hub.done

	assert.NotPanics(t, func() {
		assert.False(t, hub.deliver(client, Event{Type: "pong"}))
	})
	assert.False(t, hub.add(&Client{hub: hub, send: make(chan interface{}, 1)}))
}
