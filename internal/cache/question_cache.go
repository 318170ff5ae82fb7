package cache

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// QuestionCache holds generated statements per scope and theme set. The
// scope names the prompt that produced them, e.g. "history" or "themed:INTJ".
type QuestionCache interface {
	SetStatements(ctx context.Context, scope string, themes []string, statements []string) error
	GetStatements(ctx context.Context, scope string, themes []string) ([]string, error)
}

type questionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuestionCache creates a new question cache
func NewQuestionCache(client *redis.Client) QuestionCache {
	return &questionCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

// key is independent of theme order
func (c *questionCache) key(scope string, themes []string) string {
	sorted := append([]string(nil), themes...)
	sort.Strings(sorted)
	return "questions:" + scope + ":" + strings.Join(sorted, ",")
}

func (c *questionCache) SetStatements(ctx context.Context, scope string, themes []string, statements []string) error {
	data, err := json.Marshal(statements)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(scope, themes), data, c.ttl).Err()
}

func (c *questionCache) GetStatements(ctx context.Context, scope string, themes []string) ([]string, error) {
	data, err := c.client.Get(ctx, c.key(scope, themes)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var statements []string
	if err := json.Unmarshal([]byte(data), &statements); err != nil {
		return nil, err
	}
	return statements, nil
}
