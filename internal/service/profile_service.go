package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mindshift/internal/cache"
	"mindshift/internal/metrics"
	"mindshift/internal/model"
	"mindshift/internal/repository"
	"mindshift/internal/scoring"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("no profile for user")

// ProfileService runs inference for a user and keeps the results
type ProfileService struct {
	engine       *scoring.Engine
	repo         repository.ProfileRepo
	profileCache cache.ProfileCache
	typeStats    cache.TypeStatsCache
	themeCache   cache.ThemeCache
	observer     metrics.Observer
	broadcaster  Broadcaster
}

// NewProfileService creates a new profile service. Caches may be nil.
func NewProfileService(engine *scoring.Engine, repo repository.ProfileRepo, profileCache cache.ProfileCache, typeStats cache.TypeStatsCache, themeCache cache.ThemeCache, observer metrics.Observer) *ProfileService {
	if observer == nil {
		observer = metrics.Nop()
	}
	return &ProfileService{
		engine:       engine,
		repo:         repo,
		profileCache: profileCache,
		typeStats:    typeStats,
		themeCache:   themeCache,
		observer:     observer,
		broadcaster:  nopBroadcaster{},
	}
}

// SetBroadcaster sets the WebSocket broadcaster
func (s *ProfileService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Engine exposes the scoring engine
func (s *ProfileService) Engine() *scoring.Engine {
	return s.engine
}

// Submit scores an answer set for a user, stores and announces the profile
func (s *ProfileService) Submit(ctx context.Context, userID string, answers model.AnswerSet) (*model.ResolvedProfile, error) {
	profile, err := s.engine.Infer(answers)
	if err != nil {
		return nil, err
	}
	profile.ID = uuid.New().String()
	profile.UserID = userID

	if s.themeCache != nil {
		themes, err := s.themeCache.Get(ctx, userID)
		if err != nil {
			slog.Warn("failed to load themes", "user", userID, "error", err)
		}
		profile.Themes = themes
	}

	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	if s.profileCache != nil {
		if err := s.profileCache.SetLatest(ctx, profile); err != nil {
			slog.Warn("failed to cache profile", "user", userID, "error", err)
		}
	}
	if s.typeStats != nil {
		if err := s.typeStats.Increment(ctx, profile.MBTI); err != nil {
			slog.Warn("failed to count type", "mbti", profile.MBTI, "error", err)
		}
	}

	s.observer.RecordInference(string(profile.Mode))
	s.broadcaster.SendToUser(userID, MsgProfileResolved, profile)

	slog.Info("profile resolved",
		"user", userID,
		"mbti", profile.MBTI,
		"mode", profile.Mode,
		"traits", profile.Traits,
	)
	return profile, nil
}

// Latest returns the newest profile, from cache when possible
func (s *ProfileService) Latest(ctx context.Context, userID string) (*model.ResolvedProfile, error) {
	if s.profileCache != nil {
		cached, err := s.profileCache.GetLatest(ctx, userID)
		if err != nil {
			slog.Warn("profile cache read failed", "user", userID, "error", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	profile, err := s.repo.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	if s.profileCache != nil {
		if err := s.profileCache.SetLatest(ctx, profile); err != nil {
			slog.Warn("failed to cache profile", "user", userID, "error", err)
		}
	}
	return profile, nil
}

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// History lists a user's profiles, newest first. The limit is clamped to
// maxHistoryLimit.
func (s *ProfileService) History(ctx context.Context, userID string, limit int) ([]*model.ResolvedProfile, error) {
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}
	return s.repo.History(ctx, userID, limit)
}

// TypeDistribution ranks the resolved MBTI codes across all users
func (s *ProfileService) TypeDistribution(ctx context.Context, limit int) ([]cache.TypeCount, error) {
	if s.typeStats == nil {
		return []cache.TypeCount{}, nil
	}
	return s.typeStats.Top(ctx, limit)
}
