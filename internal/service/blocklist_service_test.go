package service

import (
	"context"
	"testing"

	"mindshift/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "youtube.com", want: "youtube.com"},
		{in: "  https://www.YouTube.com:443/watch?v=1 ", want: "youtube.com"},
		{in: "http://user@news.ycombinator.com/item", want: "news.ycombinator.com"},
		{in: "reddit.com.", want: "reddit.com"},
		{in: "localhost", wantErr: true},
		{in: "", wantErr: true},
		{in: "bad_domain.com", wantErr: true},
		{in: "-x.com", wantErr: true},
		{in: "a..com", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeDomain(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDomain)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlocklistService(t *testing.T) {
	svc := NewBlocklistService(cache.NewBlocklistCache(newRedis(t)))
	ctx := context.Background()

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{}, list.Domains)

	list, err = svc.Add(ctx, "u1", "https://www.youtube.com/", "Reddit.com", "youtube.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"reddit.com", "youtube.com"}, list.Domains)

	_, err = svc.Add(ctx, "u1", "twitter.com", "not a domain")
	assert.ErrorIs(t, err, ErrInvalidDomain)
	list, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list.Domains, 2, "invalid batch stores nothing")

	for host, want := range map[string]bool{
		"youtube.com":            true,
		"m.youtube.com":          true,
		"https://a.b.reddit.com": true,
		"notyoutube.com":         false,
		"example.org":            false,
	} {
		got, err := svc.Matches(ctx, "u1", host)
		require.NoError(t, err)
		assert.Equal(t, want, got, host)
	}

	// lists are per user
	other, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other.Domains)

	text, err := svc.RenderText(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "reddit.com\nyoutube.com\n", text)

	list, err = svc.Remove(ctx, "u1", "www.reddit.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"youtube.com"}, list.Domains)

	text, err = svc.RenderText(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}
