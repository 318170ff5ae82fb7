package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"mindshift/internal/cache"
	"mindshift/internal/model"
)

var ErrInvalidDomain = errors.New("invalid domain")

// BlocklistService manages each user's blocked domains. State lives behind
// the injected cache, keyed by user.
type BlocklistService struct {
	store cache.BlocklistCache
}

// NewBlocklistService creates a new blocklist service
func NewBlocklistService(store cache.BlocklistCache) *BlocklistService {
	return &BlocklistService{store: store}
}

// NormalizeDomain reduces a URL or host to a bare lower-case domain:
// "https://www.YouTube.com:443/watch" becomes "youtube.com"
func NormalizeDomain(raw string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(raw))
	if _, rest, ok := strings.Cut(d, "://"); ok {
		d = rest
	}
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if i := strings.LastIndex(d, "@"); i >= 0 {
		d = d[i+1:]
	}
	if i := strings.LastIndex(d, ":"); i >= 0 {
		d = d[:i]
	}
	d = strings.TrimSuffix(strings.TrimPrefix(d, "www."), ".")

	if !validDomain(d) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, raw)
	}
	return d, nil
}

func validDomain(d string) bool {
	if len(d) == 0 || len(d) > 253 || !strings.Contains(d, ".") {
		return false
	}
	for _, label := range strings.Split(d, ".") {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
				return false
			}
		}
	}
	return true
}

// Add normalises and adds one or more domains. Nothing is stored if any
// domain is invalid.
func (s *BlocklistService) Add(ctx context.Context, userID string, domains ...string) (*model.Blocklist, error) {
	normalized := make([]string, 0, len(domains))
	for _, raw := range domains {
		d, err := NormalizeDomain(raw)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, d)
	}
	if _, err := s.store.Add(ctx, userID, normalized...); err != nil {
		return nil, err
	}
	return s.List(ctx, userID)
}

// Remove deletes a domain; removing an absent domain is not an error
func (s *BlocklistService) Remove(ctx context.Context, userID, domain string) (*model.Blocklist, error) {
	d, err := NormalizeDomain(domain)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Remove(ctx, userID, d); err != nil {
		return nil, err
	}
	return s.List(ctx, userID)
}

// List returns the user's domains sorted
func (s *BlocklistService) List(ctx context.Context, userID string) (*model.Blocklist, error) {
	domains, err := s.store.Members(ctx, userID)
	if err != nil {
		return nil, err
	}
	if domains == nil {
		domains = []string{}
	}
	sort.Strings(domains)
	return &model.Blocklist{UserID: userID, Domains: domains}, nil
}

// Matches reports whether host or any parent domain of it is blocked
func (s *BlocklistService) Matches(ctx context.Context, userID, host string) (bool, error) {
	d, err := NormalizeDomain(host)
	if err != nil {
		return false, err
	}
	for {
		ok, err := s.store.Contains(ctx, userID, d)
		if err != nil || ok {
			return ok, err
		}
		_, parent, found := strings.Cut(d, ".")
		if !found || !strings.Contains(parent, ".") {
			return false, nil
		}
		d = parent
	}
}

// RenderText renders the list one domain per line for browser extensions
func (s *BlocklistService) RenderText(ctx context.Context, userID string) (string, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(list.Domains) == 0 {
		return "", nil
	}
	return strings.Join(list.Domains, "\n") + "\n", nil
}
