package server

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/randutil"
)

// startTestServer runs a hub behind an httptest server and returns its base URL
func startTestServer(t *testing.T, opts ...Option) (*Server, string) {
	t.Helper()

	srv := NewServer(testLogger(), randutil.New(42), opts...)
	ctx, cancel := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		_ = srv.Run(ctx)
	}()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		cancel()
		<-hubDone
		ts.Close()
	})
	return srv, ts.URL
}

func dialTestServer(t *testing.T, baseURL string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(baseURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func sendInbound(t *testing.T, conn *websocket.Conn, msg Inbound) {
	t.Helper()

	payload, err := msg.Encode()
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, payload))
}

func readOutbound(t *testing.T, conn *websocket.Conn) Outbound {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Outbound
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

// readUntil discards frames until one satisfies match
func readUntil(t *testing.T, conn *websocket.Conn, match func(Outbound) bool) Outbound {
	t.Helper()

	for i := 0; i < 50; i++ {
		if msg := readOutbound(t, conn); match(msg) {
			return msg
		}
	}
	t.Fatal("no matching frame after 50 reads")
	return Outbound{}
}
