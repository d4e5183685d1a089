package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const ticketTTL = time.Minute

// ErrTicketNotFound is returned when a ticket is unknown, expired, or was
// already redeemed.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketStore hands a bearer token from the social-login callback to the
// front end through a short-lived, single-redemption ticket, so the token
// itself never appears in a redirect URL.
// Key format: ticket:<uuid>
type TicketStore struct {
	client *redis.Client
}

// NewTicketStore creates a TicketStore wrapping the given Redis client.
func NewTicketStore(client *redis.Client) *TicketStore {
	return &TicketStore{client: client}
}

// Issue parks the token under a fresh ticket and returns the ticket id.
// The ticket expires after one minute.
func (t *TicketStore) Issue(ctx context.Context, token string) (string, error) {
	ticket := uuid.NewString()
	if err := t.client.Set(ctx, t.key(ticket), token, ticketTTL).Err(); err != nil {
		return "", fmt.Errorf("issue ticket: %w", err)
	}
	return ticket, nil
}

// Redeem returns the parked token and deletes the ticket in one step, so
// a ticket can be redeemed at most once.
func (t *TicketStore) Redeem(ctx context.Context, ticket string) (string, error) {
	token, err := t.client.GetDel(ctx, t.key(ticket)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTicketNotFound
		}
		return "", fmt.Errorf("redeem ticket: %w", err)
	}
	return token, nil
}

func (t *TicketStore) key(ticket string) string {
	return "ticket:" + ticket
}
