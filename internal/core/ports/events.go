package ports

import "context"

// Subscription topics pushed to connected listeners. No replay, no
// backpressure: a message published while nobody listens is gone, and a
// slow consumer drops messages rather than stalling the publisher.
const (
	TopicPostCreated        = "post.created"
	TopicUserRegistered     = "user.registered"
	TopicProfilePicUploaded = "profile_pic.uploaded"
)

// Broker is the event-broadcast service backing the subscription surface.
// It is constructed at startup and injected into every publisher and the
// subscription endpoint; its lifetime is tied to the server, not to any
// package initialization.
type Broker interface {
	// Publish marshals payload to JSON and broadcasts it on topic.
	Publish(ctx context.Context, topic string, payload any) error
	// Subscribe returns a channel of raw JSON payloads for topic and a
	// cancel function that releases the subscription.
	Subscribe(ctx context.Context, topic string) (<-chan []byte, func(), error)
}
