package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// BlocklistCache stores each user's blocked domains as a Redis SET
type BlocklistCache interface {
	Add(ctx context.Context, userID string, domains ...string) (int64, error)
	Remove(ctx context.Context, userID, domain string) (bool, error)
	Members(ctx context.Context, userID string) ([]string, error)
	Contains(ctx context.Context, userID, domain string) (bool, error)
}

type blocklistCache struct {
	client *redis.Client
}

// NewBlocklistCache creates a new blocklist cache
func NewBlocklistCache(client *redis.Client) BlocklistCache {
	return &blocklistCache{client: client}
}

func (c *blocklistCache) key(userID string) string {
	return fmt.Sprintf("user:%s:blocklist", userID)
}

func (c *blocklistCache) Add(ctx context.Context, userID string, domains ...string) (int64, error) {
	if len(domains) == 0 {
		return 0, nil
	}
	members := make([]interface{}, len(domains))
	for i, d := range domains {
		members[i] = d
	}
	return c.client.SAdd(ctx, c.key(userID), members...).Result()
}

func (c *blocklistCache) Remove(ctx context.Context, userID, domain string) (bool, error) {
	n, err := c.client.SRem(ctx, c.key(userID), domain).Result()
	return n > 0, err
}

func (c *blocklistCache) Members(ctx context.Context, userID string) ([]string, error) {
	return c.client.SMembers(ctx, c.key(userID)).Result()
}

func (c *blocklistCache) Contains(ctx context.Context, userID, domain string) (bool, error) {
	return c.client.SIsMember(ctx, c.key(userID), domain).Result()
}
