// Package events provides the event-broadcast service backing the
// subscription surface. Brokers are constructed at startup and injected
// wherever publishing or subscribing happens; nothing here is a package
// singleton.
package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/api/metrics"
)

const subscriberBuffer = 16

// MemoryBroker is an in-process broker: topic fan-out over buffered
// channels. Publishing never blocks; a subscriber whose buffer is full
// misses the message. Suitable for single-instance deployments and tests.
type MemoryBroker struct {
	mu     sync.RWMutex
	topics map[string]map[int]chan []byte
	nextID int
	closed bool
	logger zerolog.Logger
}

func NewMemoryBroker(logger zerolog.Logger) *MemoryBroker {
	return &MemoryBroker{
		topics: make(map[string]map[int]chan []byte),
		logger: logger,
	}
}

func (b *MemoryBroker) Publish(_ context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}

	for _, ch := range b.topics[topic] {
		select {
		case ch <- data:
		default:
			b.logger.Warn().Str("topic", topic).Msg("slow subscriber, message dropped")
		}
	}
	metrics.EventsPublishedTotal.WithLabelValues(topic).Inc()
	return nil
}

func (b *MemoryBroker) Subscribe(_ context.Context, topic string) (<-chan []byte, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan []byte, subscriberBuffer)
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[int]chan []byte)
	}
	id := b.nextID
	b.nextID++
	b.topics[topic][id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if subs, ok := b.topics[topic]; ok {
			if _, ok := subs[id]; ok {
				delete(subs, id)
				close(ch)
			}
		}
	}
	return ch, cancel, nil
}

// Close drops every subscriber. Called on server shutdown.
func (b *MemoryBroker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, subs := range b.topics {
		for id, ch := range subs {
			delete(subs, id)
			close(ch)
		}
	}
}
