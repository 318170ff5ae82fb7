package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"mindshift/internal/model"
	"mindshift/internal/repository"
	"mindshift/internal/scoring"
)

var ErrInvalidEvent = errors.New("eventType is required")

var fallbackTips = map[model.EventType][]string{
	model.EventDistraction: {
		"Take a deep breath and refocus.",
		"Try a 5-minute stretch instead of scrolling.",
	},
	model.EventStreakSuccess: {"Awesome job! Keep building momentum 🚀"},
	model.EventStreakBreak:   {"Don't worry, tomorrow is a new start 💪"},
}

const defaultTip = "Stay mindful and keep progressing!"

// ProfileSource supplies a user's latest profile
type ProfileSource interface {
	Latest(ctx context.Context, userID string) (*model.ResolvedProfile, error)
}

// RecommendationService maps focus events to trait-specific tips
type RecommendationService struct {
	traits      *scoring.TraitTable
	profiles    ProfileSource
	events      repository.EventRepo
	broadcaster Broadcaster
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(traits *scoring.TraitTable, profiles ProfileSource, events repository.EventRepo) *RecommendationService {
	return &RecommendationService{
		traits:      traits,
		profiles:    profiles,
		events:      events,
		broadcaster: nopBroadcaster{},
	}
}

// SetBroadcaster sets the WebSocket broadcaster
func (s *RecommendationService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Recommend logs an event and returns tips for it. When traits is empty the
// user's latest profile supplies them.
func (s *RecommendationService) Recommend(ctx context.Context, userID string, eventType model.EventType, details map[string]string, traits []string) (*model.FocusEvent, error) {
	eventType = model.EventType(strings.TrimSpace(string(eventType)))
	if eventType == "" {
		return nil, ErrInvalidEvent
	}

	if len(traits) == 0 && s.profiles != nil {
		profile, err := s.profiles.Latest(ctx, userID)
		if err != nil && !errors.Is(err, ErrProfileNotFound) {
			slog.Warn("failed to load profile for recommendations", "user", userID, "error", err)
		}
		if profile != nil {
			traits = profile.Traits
		}
	}

	event := &model.FocusEvent{
		UserID:          userID,
		Type:            eventType,
		Details:         details,
		Recommendations: s.Tips(eventType, traits),
	}
	if s.events != nil {
		if err := s.events.Save(ctx, event); err != nil {
			return nil, fmt.Errorf("save event: %w", err)
		}
	}

	s.broadcaster.SendToUser(userID, MsgRecommendations, event)
	return event, nil
}

// Tips collects the hooks of every matching trait for the event type, in
// table order, falling back to generic tips. Duplicates are removed.
func (s *RecommendationService) Tips(eventType model.EventType, traits []string) []string {
	var tips []string
	for _, def := range s.traits.Definitions() {
		if !containsFold(traits, def.Trait) {
			continue
		}
		switch eventType {
		case model.EventDistraction:
			tips = append(tips, def.DopamineBoosters...)
		case model.EventStreakSuccess:
			tips = append(tips, def.MotivationHooks...)
		case model.EventStreakBreak:
			tips = append(tips, def.DemotivationHooks...)
		}
	}

	if len(tips) == 0 {
		tips = fallbackTips[eventType]
		if len(tips) == 0 {
			tips = []string{defaultTip}
		}
	}

	seen := make(map[string]bool, len(tips))
	out := make([]string, 0, len(tips))
	for _, t := range tips {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}
