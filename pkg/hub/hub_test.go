package hub

import (
	"testing"
	"time"
)

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastEvictsSlowClients(t *testing.T) {
	h := New("test")
	go h.Run()

	fast := &Client{hub: h, send: make(chan []byte, 4)}
	slow := &Client{hub: h, send: make(chan []byte)} // Never drained
	h.register <- fast
	h.register <- slow
	waitFor(t, func() bool { return h.ClientCount() == 2 })

	h.Broadcast([]byte(`{"type":"walking"}`))

	// The slow client blocks its send and gets dropped; the fast one
	// stays and receives the payload. ClientCount is read concurrently
	// with the eviction on purpose.
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	select {
	case payload := <-fast.send:
		if string(payload) != `{"type":"walking"}` {
			t.Errorf("payload = %s", payload)
		}
	case <-time.After(time.Second):
		t.Fatal("fast client never received the payload")
	}

	if _, ok := <-slow.send; ok {
		t.Error("slow client's channel should be closed")
	}
}

func TestHub_BroadcastJSON(t *testing.T) {
	h := New("test")
	go h.Run()

	client := &Client{hub: h, send: make(chan []byte, 4)}
	h.register <- client
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	if err := h.BroadcastJSON(map[string]int{"total_opens": 3}); err != nil {
		t.Fatalf("BroadcastJSON: %v", err)
	}

	select {
	case payload := <-client.send:
		if string(payload) != `{"total_opens":3}` {
			t.Errorf("payload = %s", payload)
		}
	case <-time.After(time.Second):
		t.Fatal("client never received the payload")
	}

	if err := h.BroadcastJSON(func() {}); err == nil {
		t.Error("expected marshal error for func value")
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := New("test")
	go h.Run()

	client := &Client{hub: h, send: make(chan []byte, 4)}
	h.register <- client
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	h.unregister <- client
	waitFor(t, func() bool { return h.ClientCount() == 0 })

	if _, ok := <-client.send; ok {
		t.Error("unregistered client's channel should be closed")
	}
}
