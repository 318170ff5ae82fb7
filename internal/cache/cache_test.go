package cache

import (
	"context"
	"testing"
	"time"

	"mindshift/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestBlocklistCache(t *testing.T) {
	client, mr := newTestClient(t)
	c := NewBlocklistCache(client)
	ctx := context.Background()

	added, err := c.Add(ctx, "u1", "youtube.com", "reddit.com", "youtube.com")
	require.NoError(t, err)
	assert.EqualValues(t, 2, added)

	added, err = c.Add(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, added)

	members, err := c.Members(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"youtube.com", "reddit.com"}, members)

	ok, err := c.Contains(ctx, "u1", "reddit.com")
	require.NoError(t, err)
	assert.True(t, ok)

	// sets are per user
	ok, err = c.Contains(ctx, "u2", "reddit.com")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, mr.Exists("user:u1:blocklist"))

	removed, err := c.Remove(ctx, "u1", "reddit.com")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = c.Remove(ctx, "u1", "reddit.com")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestProfileCache(t *testing.T) {
	client, mr := newTestClient(t)
	c := NewProfileCache(client)
	ctx := context.Background()

	got, err := c.GetLatest(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	p := &model.ResolvedProfile{
		ID:         "p1",
		UserID:     "u1",
		MBTI:       "INTJ",
		Mode:       model.ModeLikert,
		Traits:     []string{"Analyst"},
		AxisScores: map[string]int{"I": 30, "E": 6},
		CreatedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, c.SetLatest(ctx, p))

	got, err = c.GetLatest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	mr.FastForward(25 * time.Hour)
	got, err = c.GetLatest(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestQuestionCacheKeyIgnoresOrder(t *testing.T) {
	client, _ := newTestClient(t)
	c := NewQuestionCache(client)
	ctx := context.Background()

	require.NoError(t, c.SetStatements(ctx, "history", []string{"study", "focus"}, []string{"I study at night."}))

	got, err := c.GetStatements(ctx, "history", []string{"focus", "study"})
	require.NoError(t, err)
	assert.Equal(t, []string{"I study at night."}, got)

	got, err = c.GetStatements(ctx, "history", []string{"career"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestQuestionCacheScopesAreSeparate(t *testing.T) {
	client, mr := newTestClient(t)
	c := NewQuestionCache(client)
	ctx := context.Background()

	require.NoError(t, c.SetStatements(ctx, "history", []string{"study"}, []string{"I study at night."}))
	require.NoError(t, c.SetStatements(ctx, "themed:INTJ", []string{"study"}, []string{"I plan my week."}))

	for scope, want := range map[string][]string{
		"history":     {"I study at night."},
		"themed:INTJ": {"I plan my week."},
		"themed":      nil,
	} {
		got, err := c.GetStatements(ctx, scope, []string{"study"})
		require.NoError(t, err)
		assert.Equal(t, want, got, scope)
	}
	assert.True(t, mr.Exists("questions:themed:INTJ:study"))
}

func TestThemeCache(t *testing.T) {
	client, _ := newTestClient(t)
	c := NewThemeCache(client)
	ctx := context.Background()

	got, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, "u1", []string{"career"}))
	got, err = c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"career"}, got)
}

func TestTypeStatsCache(t *testing.T) {
	client, _ := newTestClient(t)
	c := NewTypeStatsCache(client)
	ctx := context.Background()

	for _, code := range []string{"INTJ", "ENFP", "INTJ", "ISTJ", "INTJ", "ENFP"} {
		require.NoError(t, c.Increment(ctx, code))
	}

	top, err := c.Top(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []TypeCount{
		{MBTI: "INTJ", Count: 3, Rank: 1},
		{MBTI: "ENFP", Count: 2, Rank: 2},
	}, top)

	all, err := c.Top(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
