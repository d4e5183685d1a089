package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/api/metrics"
)

const channelPrefix = "events:"

// RedisBroker broadcasts through Redis pub/sub so that subscriptions work
// across instances. Delivery semantics match the subscription contract:
// at-most-once, no replay, slow consumers drop.
type RedisBroker struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewRedisBroker(client *redis.Client, logger zerolog.Logger) *RedisBroker {
	return &RedisBroker{client: client, logger: logger}
}

func (b *RedisBroker) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, channelPrefix+topic, data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	metrics.EventsPublishedTotal.WithLabelValues(topic).Inc()
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, topic string) (<-chan []byte, func(), error) {
	sub := b.client.Subscribe(ctx, channelPrefix+topic)
	// Force the subscription onto the wire before returning, so a publish
	// immediately after Subscribe is not lost.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	out := make(chan []byte, subscriberBuffer)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			select {
			case out <- []byte(msg.Payload):
			default:
				b.logger.Warn().Str("topic", topic).Msg("slow subscriber, message dropped")
			}
		}
	}()

	cancel := func() {
		if err := sub.Close(); err != nil {
			b.logger.Error().Err(err).Str("topic", topic).Msg("failed to close subscription")
		}
	}
	return out, cancel, nil
}
