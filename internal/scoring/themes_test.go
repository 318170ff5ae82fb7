package scoring

import (
	"testing"

	"mindshift/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestExtractThemes(t *testing.T) {
	tests := []struct {
		name     string
		messages []model.HistoryMessage
		want     []string
	}{
		{
			name:     "study and focus from one sentence",
			messages: []model.HistoryMessage{model.PlainMessage("I love my study routine and hate distractions")},
			want:     []string{ThemeStudy, ThemeFocus},
		},
		{
			name: "only user messages count",
			messages: []model.HistoryMessage{
				model.RoleMessage("assistant", "Let's talk about your career and side project"),
				model.RoleMessage("user", "My job keeps me busy"),
			},
			want: []string{ThemeCareer},
		},
		{
			name:     "case insensitive",
			messages: []model.HistoryMessage{model.PlainMessage("EXAM week, then a HOBBY")},
			want:     []string{ThemeStudy, ThemeHobbies},
		},
		{
			name: "deduplicated across messages",
			messages: []model.HistoryMessage{
				model.PlainMessage("I procrastinate a lot"),
				model.RoleMessage("user", "my attention drifts"),
			},
			want: []string{ThemeFocus},
		},
		{
			name:     "no hits",
			messages: []model.HistoryMessage{model.PlainMessage("nice weather today")},
			want:     []string{},
		},
		{
			name:     "empty history",
			messages: nil,
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractThemes(tt.messages))
		})
	}
}

func TestExtractThemesSubstringSemantics(t *testing.T) {
	// "already" contains "read": substring matching is part of the contract
	assert.Equal(t, []string{ThemeStudy}, ExtractThemesFromText("I already did it"))
}
