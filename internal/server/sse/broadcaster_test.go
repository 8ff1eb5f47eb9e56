package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func waitClients(t *testing.T, b *Broadcaster, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", n, b.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// TestBroadcaster_Stream tests the hello frame and a broadcast event over
// a real HTTP connection.
func TestBroadcaster_Stream(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	srv := httptest.NewServer(b)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected text/event-stream, got %q", ct)
	}

	waitClients(t, b, 1)
	b.Broadcast(Event{Event: "book.added", ID: "3", Data: map[string]string{"isbn": "9780134685991"}})

	lines := make(chan string, 16)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	var got []string
	timeout := time.After(2 * time.Second)
	for len(got) < 6 {
		select {
		case l, ok := <-lines:
			if !ok {
				t.Fatalf("stream ended early: %v", got)
			}
			got = append(got, l)
		case <-timeout:
			t.Fatalf("timed out, got %v", got)
		}
	}

	stream := strings.Join(got, "\n")
	for _, want := range []string{
		"event: client.connected",
		"event: book.added",
		"id: 3",
		`data: {"isbn":"9780134685991"}`,
	} {
		if !strings.Contains(stream, want) {
			t.Errorf("stream missing %q:\n%s", want, stream)
		}
	}
}

// TestBroadcaster_ShutdownEndsStreams tests that stopping the broadcaster
// closes open responses.
func TestBroadcaster_ShutdownEndsStreams(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	go b.Run(ctx)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/updates/stream", nil)
	done := make(chan struct{})
	go func() {
		b.ServeHTTP(rec, req)
		close(done)
	}()

	waitClients(t, b, 1)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end on shutdown")
	}
}

// TestBroadcaster_BroadcastWithoutRun tests that Broadcast never blocks.
func TestBroadcaster_BroadcastWithoutRun(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			b.Broadcast(Event{Event: "x"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked")
	}
}
