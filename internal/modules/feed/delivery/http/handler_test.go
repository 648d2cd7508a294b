package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	feed "github.com/atulpawar07/sp-cricket-hub/internal/modules/feed/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
)

func withMember(c *gin.Context) {
	session.Attach(c, session.Session{AccountID: uuid.New(), Email: "member@spcricket.club"})
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	return conn
}

func TestWebSocketNeedsSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", NewFeedHandler(feed.NewMemoryFeed(), nil).HandleWebSocket)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebSocketReceivesPublishedMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := feed.NewMemoryFeed()

	r := gin.New()
	r.GET("/ws", withMember, NewFeedHandler(svc, nil).HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	// The handler subscribes after the upgrade, so publish until one arrives.
	got := make(chan []byte, 1)
	go func() {
		_, msg, err := conn.ReadMessage()
		if err == nil {
			got <- msg
		}
	}()

	deadline := time.After(2 * time.Second)
	for {
		svc.Publish(context.Background(), feed.PhotoCreated, map[string]string{"id": "p1"})
		select {
		case raw := <-got:
			var msg feed.Message
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, feed.PhotoCreated, msg.Type)
			return
		case <-time.After(20 * time.Millisecond):
		case <-deadline:
			t.Fatal("no feed message over websocket")
		}
	}
}

func TestWebSocketSendsPings(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewFeedHandler(feed.NewMemoryFeed(), nil)
	h.pingPeriod = 20 * time.Millisecond

	r := gin.New()
	r.GET("/ws", withMember, h.HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	pinged := make(chan struct{}, 1)
	conn.SetPingHandler(func(string) error {
		select {
		case pinged <- struct{}{}:
		default:
		}
		return nil
	})
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case <-pinged:
	case <-time.After(2 * time.Second):
		t.Fatal("no ping from feed socket")
	}
}

func TestWebSocketClosesWithoutPong(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewFeedHandler(feed.NewMemoryFeed(), nil)
	h.pingPeriod = time.Hour
	h.pongWait = 50 * time.Millisecond

	r := gin.New()
	r.GET("/ws", withMember, h.HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		assert.False(t, netErr.Timeout(), "server should close the idle socket before the client deadline")
	}
}

func TestCheckOrigin(t *testing.T) {
	h := NewFeedHandler(feed.NewMemoryFeed(), []string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	assert.True(t, h.upgrader.CheckOrigin(req))

	req.Header.Set("Origin", "http://evil.test")
	assert.False(t, h.upgrader.CheckOrigin(req))
}
