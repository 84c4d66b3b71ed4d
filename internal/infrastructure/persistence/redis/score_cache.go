package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerline/credit-engine/internal/domain/service"
)

const (
	scoreKeyPrefix  = "credit:score:"
	defaultScoreTTL = 15 * time.Minute
)

// ScoreCache implements port.ScoreCache on Redis. Entries expire on their
// own; the refresh use case overwrites them on every recomputation.
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScoreCache creates a Redis-backed score cache with the default TTL.
func NewScoreCache(client *redis.Client) *ScoreCache {
	return &ScoreCache{client: client, ttl: defaultScoreTTL}
}

// Put stores the latest score breakdown for a borrower.
func (c *ScoreCache) Put(ctx context.Context, borrowerID string, result service.CreditScoreResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal score: %w", err)
	}
	if err := c.client.Set(ctx, scoreKeyPrefix+borrowerID, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Get returns the cached breakdown and whether it was present.
func (c *ScoreCache) Get(ctx context.Context, borrowerID string) (service.CreditScoreResult, bool, error) {
	payload, err := c.client.Get(ctx, scoreKeyPrefix+borrowerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return service.CreditScoreResult{}, false, nil
		}
		return service.CreditScoreResult{}, false, fmt.Errorf("cache get: %w", err)
	}

	var result service.CreditScoreResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return service.CreditScoreResult{}, false, fmt.Errorf("unmarshal score: %w", err)
	}
	return result, true, nil
}
