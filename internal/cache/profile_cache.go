package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mindshift/internal/model"

	"github.com/redis/go-redis/v9"
)

// ProfileCache keeps the latest resolved profile per user
type ProfileCache interface {
	SetLatest(ctx context.Context, profile *model.ResolvedProfile) error
	GetLatest(ctx context.Context, userID string) (*model.ResolvedProfile, error)
	Delete(ctx context.Context, userID string) error
}

type profileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache creates a new profile cache
func NewProfileCache(client *redis.Client) ProfileCache {
	return &profileCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *profileCache) key(userID string) string {
	return fmt.Sprintf("user:%s:profile", userID)
}

func (c *profileCache) SetLatest(ctx context.Context, profile *model.ResolvedProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(profile.UserID), data, c.ttl).Err()
}

func (c *profileCache) GetLatest(ctx context.Context, userID string) (*model.ResolvedProfile, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var profile model.ResolvedProfile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *profileCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}
