package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 30 * time.Second

// ClaimGuard provides a per-(user, deal) in-flight lock backed by Redis.
// Key format: claim_guard:<user_id>:<deal_id>
//
// The TTL bounds the lock lifetime so a crashed process cannot leave a pair
// locked forever; the unique claims index remains the final authority.
type ClaimGuard struct {
	client *redis.Client
}

// NewClaimGuard creates a ClaimGuard wrapping the given Redis client.
func NewClaimGuard(client *redis.Client) *ClaimGuard {
	return &ClaimGuard{client: client}
}

// Acquire attempts to take the lock for the pair. Returns false when another
// claim attempt for the same pair is already in flight.
func (g *ClaimGuard) Acquire(ctx context.Context, userID, dealID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(userID, dealID), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("claim guard acquire: %w", err)
	}
	return ok, nil
}

// Release frees the lock for the pair.
func (g *ClaimGuard) Release(ctx context.Context, userID, dealID string) error {
	return g.client.Del(ctx, g.key(userID, dealID)).Err()
}

func (g *ClaimGuard) key(userID, dealID string) string {
	return fmt.Sprintf("claim_guard:%s:%s", userID, dealID)
}
