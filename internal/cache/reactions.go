package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/asclub/club-api/internal/domain"
)

// ReactionCounts caches aggregated reaction counts per entity.
type ReactionCounts struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewReactionCounts(client *redis.Client, ttl time.Duration) *ReactionCounts {
	return &ReactionCounts{
		redis: client,
		ttl:   ttl,
	}
}

func countsKey(entityType domain.EntityType, entityID uuid.UUID) string {
	return fmt.Sprintf("reactions:%s:%s", entityType, entityID)
}

func (c *ReactionCounts) Get(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (domain.ReactionCounts, bool, error) {
	raw, err := c.redis.Get(ctx, countsKey(entityType, entityID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ReactionCounts{}, false, nil
		}
		return domain.ReactionCounts{}, false, err
	}

	var counts domain.ReactionCounts
	if err := json.Unmarshal(raw, &counts); err != nil {
		return domain.ReactionCounts{}, false, err
	}

	return counts, true, nil
}

func (c *ReactionCounts) Set(ctx context.Context, counts domain.ReactionCounts) error {
	raw, err := json.Marshal(counts)
	if err != nil {
		return err
	}

	return c.redis.Set(ctx, countsKey(counts.EntityType, counts.EntityID), raw, c.ttl).Err()
}

func (c *ReactionCounts) Invalidate(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) error {
	return c.redis.Del(ctx, countsKey(entityType, entityID)).Err()
}
