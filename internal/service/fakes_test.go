package service

import (
	"context"
	"sort"
	"sync"
	"testing"

	"mindshift/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles []*model.ResolvedProfile
	err      error
}

func (r *fakeProfileRepo) Save(_ context.Context, p *model.ResolvedProfile) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = append(r.profiles, p)
	return nil
}

func (r *fakeProfileRepo) Latest(ctx context.Context, userID string) (*model.ResolvedProfile, error) {
	h, err := r.History(ctx, userID, 1)
	if err != nil || len(h) == 0 {
		return nil, err
	}
	return h[0], nil
}

func (r *fakeProfileRepo) History(_ context.Context, userID string, limit int) ([]*model.ResolvedProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.ResolvedProfile{}
	for _, p := range r.profiles {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events []*model.FocusEvent
}

func (r *fakeEventRepo) Save(_ context.Context, e *model.FocusEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *fakeEventRepo) ListByUser(_ context.Context, userID string, _ int) ([]*model.FocusEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.FocusEvent
	for _, e := range r.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type sentMessage struct {
	UserID  string
	Type    string
	Payload interface{}
}

type fakeBroadcaster struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (b *fakeBroadcaster) SendToUser(userID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, sentMessage{userID, msgType, payload})
}

type fakeGenerator struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	out     []string
	err     error
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return nil, g.err
	}
	return append([]string(nil), g.out...), nil
}
