package websocket

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func runHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	logger := zerolog.Nop()
	hub := NewHub(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func waitClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", n, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// TestHub_Broadcast tests delivery to several registered clients.
func TestHub_Broadcast(t *testing.T) {
	hub, _ := runHub(t)

	clients := make([]*Client, 5)
	for i := range clients {
		clients[i] = NewClient(fmt.Sprintf("c%d", i), hub, nil)
		hub.Register(clients[i])
	}
	waitClients(t, hub, len(clients))

	hub.Broadcast(Message{Type: "book.added", Data: map[string]string{"isbn": "9780134685991"}})

	for i, c := range clients {
		select {
		case msg := <-c.send:
			if msg.Type != "book.added" {
				t.Errorf("client %d: expected book.added, got %s", i, msg.Type)
			}
		case <-time.After(time.Second):
			t.Errorf("client %d: no message", i)
		}
	}
}

// TestHub_SlowClientDropped tests that a full client buffer disconnects
// the client.
func TestHub_SlowClientDropped(t *testing.T) {
	hub, _ := runHub(t)

	slow := &Client{id: "slow", hub: hub, send: make(chan Message, 1)}
	hub.Register(slow)
	waitClients(t, hub, 1)

	for i := 0; i < 5; i++ {
		hub.Broadcast(Message{Type: "book.updated"})
	}
	waitClients(t, hub, 0)
}

// TestHub_Shutdown tests that cancellation closes every client channel.
func TestHub_Shutdown(t *testing.T) {
	hub, cancel := runHub(t)

	c := NewClient("c", hub, nil)
	hub.Register(c)
	waitClients(t, hub, 1)

	cancel()
	waitClients(t, hub, 0)

	select {
	case _, ok := <-c.send:
		if ok {
			t.Error("expected closed send channel")
		}
	case <-time.After(time.Second):
		t.Error("send channel not closed")
	}
}

// TestHub_Serve tests a real connection: hello frame, broadcast, and
// unregistration on client close.
func TestHub_Serve(t *testing.T) {
	hub, _ := runHub(t)
	upgrader := &websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hello := Message{Type: "client.connected", Timestamp: time.Now()}
		if err := hub.Serve(upgrader, w, r, "test", hello); err != nil {
			t.Errorf("serve: %v", err)
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	var msg Message
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if msg.Type != "client.connected" {
		t.Errorf("expected client.connected, got %s", msg.Type)
	}

	waitClients(t, hub, 1)
	hub.Broadcast(Message{ID: 7, Type: "catalog.loaded"})
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if msg.Type != "catalog.loaded" || msg.ID != 7 {
		t.Errorf("unexpected message: %+v", msg)
	}

	_ = conn.Close()
	waitClients(t, hub, 0)
}
