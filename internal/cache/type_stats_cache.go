package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const typeStatsKey = "stats:mbti"

// TypeStatsCache counts resolved MBTI codes in a Redis ZSET
type TypeStatsCache interface {
	Increment(ctx context.Context, mbti string) error
	Top(ctx context.Context, limit int) ([]TypeCount, error)
}

// TypeCount is one entry of the type distribution
type TypeCount struct {
	MBTI  string `json:"mbti"`
	Count int    `json:"count"`
	Rank  int    `json:"rank"`
}

type typeStatsCache struct {
	client *redis.Client
}

// NewTypeStatsCache creates a new type distribution cache
func NewTypeStatsCache(client *redis.Client) TypeStatsCache {
	return &typeStatsCache{
		client: client,
	}
}

func (c *typeStatsCache) Increment(ctx context.Context, mbti string) error {
	return c.client.ZIncrBy(ctx, typeStatsKey, 1, mbti).Err()
}

func (c *typeStatsCache) Top(ctx context.Context, limit int) ([]TypeCount, error) {
	if limit <= 0 {
		limit = 16
	}
	results, err := c.client.ZRevRangeWithScores(ctx, typeStatsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]TypeCount, len(results))
	for i, z := range results {
		entries[i] = TypeCount{
			MBTI:  z.Member.(string),
			Count: int(z.Score),
			Rank:  i + 1,
		}
	}
	return entries, nil
}
