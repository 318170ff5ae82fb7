package scoring

import (
	"strings"

	"mindshift/internal/model"
)

// Theme tags produced by ExtractThemes
const (
	ThemeStudy   = "study"
	ThemeHobbies = "hobbies"
	ThemeCareer  = "career"
	ThemeFocus   = "focus"
)

type keywordFamily struct {
	tag      string
	keywords []string
}

var themeFamilies = []keywordFamily{
	{ThemeStudy, []string{"study", "exam", "learn", "read", "course"}},
	{ThemeHobbies, []string{"hobby", "hobbies", "project", "side project"}},
	{ThemeCareer, []string{"career", "job", "work", "profession"}},
	{ThemeFocus, []string{"focus", "distraction", "procrastinate", "attention"}},
}

// ExtractThemes tags user-authored history with coarse topics.
// An empty result means no grounding is available.
func ExtractThemes(messages []model.HistoryMessage) []string {
	hit := make(map[string]bool, len(themeFamilies))
	for _, msg := range messages {
		if !msg.FromUser() {
			continue
		}
		content := strings.ToLower(msg.Content)
		for _, fam := range themeFamilies {
			if !hit[fam.tag] && containsAny(content, fam.keywords) {
				hit[fam.tag] = true
			}
		}
	}

	themes := make([]string, 0, len(hit))
	for _, fam := range themeFamilies {
		if hit[fam.tag] {
			themes = append(themes, fam.tag)
		}
	}
	return themes
}

// ExtractThemesFromText is a convenience for plain strings
func ExtractThemesFromText(texts ...string) []string {
	msgs := make([]model.HistoryMessage, len(texts))
	for i, t := range texts {
		msgs[i] = model.PlainMessage(t)
	}
	return ExtractThemes(msgs)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
