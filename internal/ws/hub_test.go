package ws

import (
	"sync"
	"testing"
	"time"
)

type subscriberStub struct {
	mu       sync.Mutex
	payloads [][]byte
	sendErr  error
	closed   bool
}

func (s *subscriberStub) Send(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return s.sendErr
	}
	s.payloads = append(s.payloads, payload)
	return nil
}

func (s *subscriberStub) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *subscriberStub) received() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestBroadcastReachesCampSubscribers(t *testing.T) {
	hub := NewHub()
	sub := &subscriberStub{}
	other := &subscriberStub{}

	hub.Register("camp-1", sub)
	hub.Register("camp-2", other)

	hub.Broadcast("camp-1", []byte(`{"type":"registered"}`))

	waitFor(t, func() bool { return sub.received() == 1 })
	if other.received() != 0 {
		t.Fatalf("subscriber of another camp received payload")
	}
}

func TestUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	sub := &subscriberStub{}

	hub.Register("camp-1", sub)
	hub.Broadcast("camp-1", []byte("one"))
	waitFor(t, func() bool { return sub.received() == 1 })

	hub.Unregister("camp-1", sub)
	hub.Broadcast("camp-1", []byte("two"))

	// A follow-up broadcast on another channel flushes the hub loop.
	probe := &subscriberStub{}
	hub.Register("camp-3", probe)
	hub.Broadcast("camp-3", []byte("probe"))
	waitFor(t, func() bool { return probe.received() == 1 })

	if sub.received() != 1 {
		t.Fatalf("unregistered subscriber still receiving, got %d payloads", sub.received())
	}
}
