package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"anonchat/internal/config"
	"anonchat/internal/coordinator"
	"anonchat/internal/domain"
	"anonchat/internal/hub"
)

func newTestStack(t *testing.T) *httptest.Server {
	t.Helper()

	wsCfg := config.WebSocketConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 4096,
	}

	wsHub := hub.NewHub(wsCfg)
	go wsHub.Run()

	coord := coordinator.New(wsHub, coordinator.NewIssuer(1000, 9999), time.Minute)
	wsHandler := NewWSHandler(wsHub, coord, wsCfg)

	mux := http.NewServeMux()
	wsHandler.RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil scans frames until one with the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) map[string]interface{} {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	conn.SetReadDeadline(deadline)
	for time.Now().Before(deadline) {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var frame map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &frame))
		if frame["type"] == msgType {
			return frame
		}
	}
	t.Fatalf("no %q frame received before deadline", msgType)
	return nil
}

func TestConnect_WelcomeAndPresenceFlow(t *testing.T) {
	req := require.New(t)
	srv := newTestStack(t)

	c1 := dial(t, srv)
	welcome := readUntil(t, c1, domain.MsgTypeWelcome)
	anonID := welcome["anonymous_id"].(float64)
	req.GreaterOrEqual(anonID, float64(1000))
	req.LessOrEqual(anonID, float64(9999))

	c2 := dial(t, srv)
	readUntil(t, c2, domain.MsgTypeWelcome)

	// Both ends converge on a count of 2. The first connection may see an
	// earlier count frame from its own registration first.
	waitForCount(t, c1, 2)
	waitForCount(t, c2, 2)
}

func waitForCount(t *testing.T, conn *websocket.Conn, want float64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		frame := readUntil(t, conn, domain.MsgTypeUserCount)
		if frame["count"] == want {
			return
		}
	}
	t.Fatalf("user count never reached %v", want)
}

func TestChatMessage_RoundTrip(t *testing.T) {
	req := require.New(t)
	srv := newTestStack(t)

	c1 := dial(t, srv)
	welcome := readUntil(t, c1, domain.MsgTypeWelcome)
	label := "Anonymous #" + jsonNumber(welcome["anonymous_id"])

	c2 := dial(t, srv)
	readUntil(t, c2, domain.MsgTypeWelcome)

	req.NoError(c1.WriteJSON(&domain.ChatMessageIn{Type: domain.MsgTypeChatMessage, Text: "hi"}))

	for _, conn := range []*websocket.Conn{c1, c2} {
		frame := readUntil(t, conn, domain.MsgTypeChatMessage)
		req.Equal("hi", frame["text"])
		req.Equal(label, frame["sender"])
		req.Equal(true, frame["is_public"])
	}
}

func TestMalformedFrame_YieldsErrorNotDisconnect(t *testing.T) {
	req := require.New(t)
	srv := newTestStack(t)

	c1 := dial(t, srv)
	readUntil(t, c1, domain.MsgTypeWelcome)

	req.NoError(c1.WriteMessage(websocket.TextMessage, []byte("not json")))
	frame := readUntil(t, c1, domain.MsgTypeError)
	req.Equal(domain.ErrCodeBadRequest, frame["code"])

	// The connection is still usable afterwards.
	req.NoError(c1.WriteJSON(&domain.ChatMessageIn{Type: domain.MsgTypeChatMessage, Text: "still here"}))
	msg := readUntil(t, c1, domain.MsgTypeChatMessage)
	req.Equal("still here", msg["text"])
}

func jsonNumber(v interface{}) string {
	b, _ := json.Marshal(v)
	return strings.TrimSuffix(string(b), ".0")
}
