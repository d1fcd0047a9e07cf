package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ayusman/glimmer/internal/gesture"
)

func dialHub(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http")+"/api/hand", nil)
	if err != nil {
		t.Fatalf("dial error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Clients() = %d, want %d", h.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastsState(t *testing.T) {
	hub := NewHub()
	ts := httptest.NewServer(New(Config{Hub: hub}))
	defer ts.Close()

	conn := dialHub(t, ts.URL)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var hello helloMessage
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello.Type != "hello" {
		t.Errorf("first message type = %q, want hello", hello.Type)
	}
	if _, err := uuid.Parse(hello.ClientID); err != nil {
		t.Errorf("client id %q is not a uuid: %v", hello.ClientID, err)
	}

	waitClients(t, hub, 1)

	want := gesture.State{Active: true, IsOpen: true, PinchDistance: 0.2, RotationSpeed: 0.03}
	hub.Notify(want)

	var msg HandMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read hand message: %v", err)
	}
	if msg.Type != "hand" || msg.State != want || msg.Mode != gesture.ModeMerry {
		t.Errorf("message = %+v", msg)
	}
	if msg.Timestamp == 0 {
		t.Error("timestamp not set")
	}
}

func TestHub_RemovesClosedClients(t *testing.T) {
	hub := NewHub()
	ts := httptest.NewServer(hub)
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial error = %v", err)
	}
	waitClients(t, hub, 1)

	conn.Close()
	waitClients(t, hub, 0)

	// No clients: Notify is a no-op.
	hub.Notify(gesture.NeutralState())
}

func TestHub_SlowClientDoesNotBlock(t *testing.T) {
	hub := NewHub()
	ts := httptest.NewServer(hub)
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial error = %v", err)
	}
	defer conn.Close()
	waitClients(t, hub, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			hub.Notify(gesture.State{Active: true, RotationSpeed: float64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a client that never reads")
	}

	var first json.RawMessage
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&first); err != nil {
		t.Errorf("client stopped receiving: %v", err)
	}
}
