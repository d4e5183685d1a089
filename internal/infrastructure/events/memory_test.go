package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed")
		}
		return msg
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for message")
		return nil
	}
}

func TestMemoryBroker_FanOut(t *testing.T) {
	b := NewMemoryBroker(zerolog.Nop())
	defer b.Close()
	ctx := context.Background()

	first, cancelFirst, err := b.Subscribe(ctx, "post.created")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancelFirst()
	second, cancelSecond, err := b.Subscribe(ctx, "post.created")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancelSecond()

	if err := b.Publish(ctx, "post.created", map[string]any{"post_id": "p1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for _, ch := range []<-chan []byte{first, second} {
		var payload map[string]any
		if err := json.Unmarshal(receive(t, ch), &payload); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if payload["post_id"] != "p1" {
			t.Fatalf("unexpected payload: %v", payload)
		}
	}
}

func TestMemoryBroker_TopicsAreIsolated(t *testing.T) {
	b := NewMemoryBroker(zerolog.Nop())
	defer b.Close()
	ctx := context.Background()

	ch, cancel, err := b.Subscribe(ctx, "user.registered")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	if err := b.Publish(ctx, "post.created", "noise"); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-ch:
		t.Fatalf("received message from another topic: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBroker_NoSubscribersDropsMessage(t *testing.T) {
	b := NewMemoryBroker(zerolog.Nop())
	defer b.Close()

	if err := b.Publish(context.Background(), "post.created", "nobody home"); err != nil {
		t.Fatalf("publish without subscribers must not fail: %v", err)
	}
}

func TestMemoryBroker_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewMemoryBroker(zerolog.Nop())
	defer b.Close()
	ctx := context.Background()

	_, cancel, err := b.Subscribe(ctx, "post.created")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	// never read: once the buffer fills, publishes keep succeeding
	for i := 0; i < subscriberBuffer*2; i++ {
		if err := b.Publish(ctx, "post.created", i); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}
}

func TestMemoryBroker_CancelStopsDelivery(t *testing.T) {
	b := NewMemoryBroker(zerolog.Nop())
	defer b.Close()
	ctx := context.Background()

	ch, cancel, err := b.Subscribe(ctx, "post.created")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	cancel()
	// cancel twice is safe
	cancel()

	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel after cancel")
	}
}
