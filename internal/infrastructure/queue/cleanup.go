// Package queue implements deferred, best-effort media cleanup. Stale
// hosted assets (dropped from a post revision, replaced profile pictures,
// media of deleted posts) are destroyed off the request path: a failed
// delete never fails or rolls back the request that orphaned the asset,
// but it is always logged and counted rather than silently swallowed.
package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Cleaner routes destroy requests to a fixed set of workers using
// consistent hashing on the asset URL, so repeated enqueues of the same
// URL serialize onto one worker.
type Cleaner struct {
	workers []chan string
	media   ports.MediaStore
	log     zerolog.Logger
}

// NewCleaner creates a Cleaner with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewCleaner(numWorkers int, media ports.MediaStore, log zerolog.Logger) *Cleaner {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	c := &Cleaner{
		workers: make([]chan string, numWorkers),
		media:   media,
		log:     log,
	}
	for i := range c.workers {
		c.workers[i] = make(chan string, channelBuffer)
	}
	return c
}

// Start launches all worker goroutines. Workers stop when ctx is
// cancelled.
func (c *Cleaner) Start(ctx context.Context) {
	for i, ch := range c.workers {
		go c.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an asset URL to its worker. Non-blocking: when the shard's
// buffer is full the request is dropped and counted, never stalling the
// caller.
func (c *Cleaner) Enqueue(url string) {
	if url == "" {
		return
	}
	select {
	case c.workers[c.shardIndex(url)] <- url:
	default:
		metrics.MediaCleanupTotal.WithLabelValues("dropped").Inc()
		c.log.Warn().Str("url", url).Msg("cleanup queue full, request dropped")
	}
}

// shardIndex maps a URL deterministically to a worker index.
func (c *Cleaner) shardIndex(url string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(url))
	return int(h.Sum32()) % len(c.workers)
}

func (c *Cleaner) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case url, ok := <-ch:
			if !ok {
				return
			}
			if err := c.media.Destroy(ctx, url); err != nil {
				metrics.MediaCleanupTotal.WithLabelValues("error").Inc()
				c.log.Error().Err(err).
					Str("url", url).
					Int("worker_id", id).
					Msg("media destroy failed")
				continue
			}
			metrics.MediaCleanupTotal.WithLabelValues("ok").Inc()
		}
	}
}
