package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"simplecache/internal/cache"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestWebSocket_ReceivesTypeEvents(t *testing.T) {
	h := newTestHandler(t)

	r := gin.New()
	r.GET("/api/ws", func(c *gin.Context) {
		c.Set("username", "admin")
		c.Next()
	}, h.WebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws?type=a"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return h.Hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	h.Hub.Broadcast("b", []byte(`{"op":"insert","type":"b"}`))
	h.Hub.Broadcast("a", []byte(`{"op":"insert","key":"k1","type":"a"}`))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var e cache.Event
	require.NoError(t, json.Unmarshal(msg, &e))
	require.Equal(t, cache.OpInsert, e.Op)
	require.Equal(t, "k1", e.Key)
}

func TestWebSocket_RequiresUser(t *testing.T) {
	h := newTestHandler(t)
	r := gin.New()
	r.GET("/api/ws", h.WebSocket)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ws", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWSClient_SendDoesNotBlock(t *testing.T) {
	client := &wsClient{
		conn: &websocket.Conn{},
		out:  make(chan []byte, 1),
		done: make(chan struct{}),
	}

	start := time.Now()
	require.True(t, client.Send([]byte("a")))
	// queue full and nothing draining it
	require.False(t, client.Send([]byte("b")))
	require.Less(t, time.Since(start), 100*time.Millisecond)

	close(client.done)
	<-client.out
	require.False(t, client.Send([]byte("c")))
}
