package service

import (
	"context"
	"testing"

	"mindshift/internal/model"
	"mindshift/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTraits(t *testing.T) *scoring.TraitTable {
	t.Helper()
	table, err := scoring.NewTraitTable([]model.TraitDefinition{
		{
			Trait:             "Achiever",
			Keywords:          []string{"goal"},
			DopamineBoosters:  []string{"Tick off one small task.", "Shared tip."},
			MotivationHooks:   []string{"You are on track for your goal."},
			DemotivationHooks: []string{"Reset the goal for tomorrow."},
		},
		{
			Trait:            "Explorer",
			Keywords:         []string{"new"},
			DopamineBoosters: []string{"Switch to a fresh location.", "Shared tip."},
		},
	})
	require.NoError(t, err)
	return table
}

type staticProfiles struct {
	profile *model.ResolvedProfile
}

func (s staticProfiles) Latest(context.Context, string) (*model.ResolvedProfile, error) {
	if s.profile == nil {
		return nil, ErrProfileNotFound
	}
	return s.profile, nil
}

func TestTips(t *testing.T) {
	svc := NewRecommendationService(testTraits(t), nil, nil)

	tests := []struct {
		name   string
		event  model.EventType
		traits []string
		want   []string
	}{
		{
			name:   "hybrid traits merged and deduplicated",
			event:  model.EventDistraction,
			traits: []string{"explorer", "ACHIEVER"},
			want:   []string{"Tick off one small task.", "Shared tip.", "Switch to a fresh location."},
		},
		{
			name:   "streak success",
			event:  model.EventStreakSuccess,
			traits: []string{"Achiever"},
			want:   []string{"You are on track for your goal."},
		},
		{
			name:   "trait without hooks falls back",
			event:  model.EventStreakBreak,
			traits: []string{"Explorer"},
			want:   []string{"Don't worry, tomorrow is a new start 💪"},
		},
		{
			name:   "no traits",
			event:  model.EventDistraction,
			traits: nil,
			want:   []string{"Take a deep breath and refocus.", "Try a 5-minute stretch instead of scrolling."},
		},
		{
			name:   "unknown event",
			event:  "coffee_break",
			traits: []string{"Achiever"},
			want:   []string{defaultTip},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Tips(tt.event, tt.traits))
		})
	}
}

func TestTipsWithoutTraitTable(t *testing.T) {
	svc := NewRecommendationService(nil, nil, nil)
	assert.Equal(t, []string{"Awesome job! Keep building momentum 🚀"}, svc.Tips(model.EventStreakSuccess, []string{"Achiever"}))
}

func TestRecommendUsesLatestProfile(t *testing.T) {
	events := &fakeEventRepo{}
	profiles := staticProfiles{profile: &model.ResolvedProfile{Traits: []string{"Achiever"}}}
	svc := NewRecommendationService(testTraits(t), profiles, events)
	b := &fakeBroadcaster{}
	svc.SetBroadcaster(b)

	event, err := svc.Recommend(context.Background(), "u1", model.EventStreakBreak, map[string]string{"site": "youtube.com"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Reset the goal for tomorrow."}, event.Recommendations)
	require.Len(t, events.events, 1)
	assert.Equal(t, "youtube.com", events.events[0].Details["site"])
	require.Len(t, b.sent, 1)
	assert.Equal(t, MsgRecommendations, b.sent[0].Type)
}

func TestRecommendRequiresEventType(t *testing.T) {
	svc := NewRecommendationService(testTraits(t), staticProfiles{}, &fakeEventRepo{})
	_, err := svc.Recommend(context.Background(), "u1", "  ", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidEvent)

	event, err := svc.Recommend(context.Background(), "u1", model.EventDistraction, nil, nil)
	require.NoError(t, err)
	assert.Len(t, event.Recommendations, 2)
}
