package events

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
)

func TestNilPublisherIsSafe(t *testing.T) {
	var p *Publisher

	// Publishing on a disabled publisher must be a silent no-op.
	p.UserChanged("alice", KindCreated)
	p.Close()

	if _, _, err := p.WatchUser("alice"); err == nil {
		t.Error("Expected an error when events are not configured")
	}
}

// The integration tests require a running NATS server.
// Set NATS_URL to override the default nats://127.0.0.1:4222.
func connectTestPublisher(t *testing.T) *Publisher {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	url := os.Getenv("NATS_URL")
	if url == "" {
		url = nats.DefaultURL
	}

	p, err := Connect(url)
	if err != nil {
		t.Skipf("NATS not available at %s: %v", url, err)
	}
	t.Cleanup(p.Close)
	return p
}

func TestWatchUserDelivery(t *testing.T) {
	p := connectTestPublisher(t)

	events, cancel, err := p.WatchUser("alice")
	if err != nil {
		t.Fatalf("WatchUser failed: %v", err)
	}
	defer cancel()

	p.UserChanged("alice", KindUpdated)

	select {
	case event := <-events:
		if event.UserID != "alice" || event.Kind != KindUpdated {
			t.Errorf("Expected an update for alice, got %+v", event)
		}
		if event.ID == "" || event.At.IsZero() {
			t.Errorf("Expected id and timestamp filled, got %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for the event")
	}

	// Subjects are per user; another user's change must not arrive.
	p.UserChanged("bob", KindUpdated)
	select {
	case event := <-events:
		t.Errorf("Unexpected event for %s", event.UserID)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchUserDropsWhenConsumerIsSlow(t *testing.T) {
	p := connectTestPublisher(t)

	events, cancel, err := p.WatchUser("carol")
	if err != nil {
		t.Fatalf("WatchUser failed: %v", err)
	}
	defer cancel()

	// Nobody reads while these land, so everything past the channel
	// buffer must be dropped, not block the dispatch callback.
	for i := 0; i < 64; i++ {
		p.UserChanged("carol", KindRelationship)
	}
	if err := p.conn.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	received := 0
	for draining := true; draining; {
		select {
		case <-events:
			received++
		default:
			draining = false
		}
	}

	if received == 0 {
		t.Fatal("Expected at least one buffered event")
	}
	if received > 16 {
		t.Errorf("Expected the overflow dropped, got %d events", received)
	}
}

func TestWatchUserCancelIsSafeDuringPublish(t *testing.T) {
	p := connectTestPublisher(t)

	events, cancel, err := p.WatchUser("dave")
	if err != nil {
		t.Fatalf("WatchUser failed: %v", err)
	}

	// Cancelling while deliveries are in flight must never panic; the
	// channel stays open and in-flight handlers fall through on done.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			p.UserChanged("dave", KindUpdated)
		}
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	wg.Wait()
	_ = p.conn.Flush()

	// The channel must still be readable, never closed.
	select {
	case _, ok := <-events:
		if !ok {
			t.Error("Expected the channel to stay open after cancel")
		}
	default:
	}
}
