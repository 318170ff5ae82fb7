package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ThemeCache remembers the themes last extracted from a user's history
type ThemeCache interface {
	Set(ctx context.Context, userID string, themes []string) error
	Get(ctx context.Context, userID string) ([]string, error)
}

type themeCache struct {
	client *redis.Client
}

func NewThemeCache(client *redis.Client) ThemeCache {
	return &themeCache{
		client: client,
	}
}

func (c *themeCache) Set(ctx context.Context, userID string, themes []string) error {
	data, err := json.Marshal(themes)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "user:"+userID+":themes", data, 24*time.Hour).Err()
}

func (c *themeCache) Get(ctx context.Context, userID string) ([]string, error) {
	data, err := c.client.Get(ctx, "user:"+userID+":themes").Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var themes []string
	err = json.Unmarshal([]byte(data), &themes)
	return themes, err
}
