package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mindshift/internal/cache"
	"mindshift/internal/model"
	"mindshift/internal/scoring"
)

// QuestionCount is the size of a themed question set
const QuestionCount = 15

// Statement sources reported to clients
const (
	SourceGenerated = "generated"
	SourceCached    = "cached"
	SourceFallback  = "fallback"
	SourceDefault   = "default"
)

// DefaultThemes are used when neither the request nor the user's history
// names any theme
var DefaultThemes = []string{scoring.ThemeStudy, scoring.ThemeCareer, scoring.ThemeHobbies}

// themeFallbacks is served when the generator is unavailable
var themeFallbacks = map[string][]string{
	scoring.ThemeStudy: {
		"I feel most focused for studying in the morning.",
		"I usually decide what to study first based on urgency.",
		"I take a short break when my concentration fades.",
	},
	scoring.ThemeFocus: {
		"I easily get distracted by my phone or social media.",
		"I can maintain deep focus for long periods without interruption.",
		"The environment greatly affects my concentration.",
	},
	scoring.ThemeCareer: {
		"I have a clear top priority for my work each week.",
		"I focus on tasks that create the most impact first.",
		"I feel blocked in my current project by specific obstacles.",
	},
	scoring.ThemeHobbies: {
		"I actively make time for my hobbies during busy weeks.",
		"Certain hobbies energize me more than others.",
		"I take small steps daily to progress on personal projects.",
	},
}

// genericStatements are served when there is nothing to ground on
var genericStatements = []string{
	"I can make the next hour productive if I focus properly.",
	"I can identify and remove at least one distraction before starting.",
	"I can take a small next step toward a goal right now.",
}

// HistoryFallback15 tops up themed sets to QuestionCount
var HistoryFallback15 = []string{
	"I prefer planning my study/work blocks in advance rather than deciding on the spot.",
	"I’m energized by starting new projects more than finishing existing ones.",
	"I rely on structured schedules and checklists to stay productive.",
	"I prioritize logic and objective criteria over personal values when making decisions.",
	"I feel most focused when working alone with minimal interruptions.",
	"I enjoy brainstorming multiple possibilities before committing to a plan.",
	"I often reflect on patterns and systems behind problems rather than surface details.",
	"I prefer clear deadlines and milestones to keep momentum.",
	"I’m comfortable giving direct feedback to improve outcomes.",
	"I notice when my energy dips and proactively take short, intentional breaks.",
	"I adapt my environment (noise, lighting, location) to maximize deep focus.",
	"I’m more productive when tasks ladder up to a long-term vision or strategy.",
	"I prefer measurable targets (e.g., 3 pomodoros) to open-ended sessions.",
	"I tend to analyze before acting, even if it takes extra time.",
	"I feel satisfied when I can optimize or improve the process, not just complete tasks.",
}

// HistoryQuestions is the result of grounding statements on chat history
type HistoryQuestions struct {
	Themes    []string          `json:"themes"`
	Questions []model.Statement `json:"questions"`
	Source    string            `json:"source"`
}

// QuestionService produces Agree/Disagree statements and serves the bank
type QuestionService struct {
	generator     Generator
	bank          *scoring.Bank
	questionCache cache.QuestionCache
	themeCache    cache.ThemeCache
}

// NewQuestionService creates a new question service. The caches are optional.
func NewQuestionService(generator Generator, bank *scoring.Bank, questionCache cache.QuestionCache, themeCache cache.ThemeCache) *QuestionService {
	return &QuestionService{
		generator:     generator,
		bank:          bank,
		questionCache: questionCache,
		themeCache:    themeCache,
	}
}

// FromHistory extracts themes from the history and returns statements
// grounded on them. The user's themes are remembered for later requests.
func (s *QuestionService) FromHistory(ctx context.Context, userID string, history []model.HistoryMessage) *HistoryQuestions {
	themes := scoring.ExtractThemes(history)
	if userID != "" && s.themeCache != nil && len(themes) > 0 {
		if err := s.themeCache.Set(ctx, userID, themes); err != nil {
			slog.Warn("failed to store themes", "user", userID, "error", err)
		}
	}

	result := &HistoryQuestions{Themes: themes}
	if len(themes) == 0 {
		result.Questions = statements(genericStatements)
		result.Source = SourceDefault
		return result
	}

	if generated, source := s.generate(ctx, scopeHistory, themes, historyPrompt(themes)); len(generated) > 0 {
		result.Questions = statements(generated)
		result.Source = source
		return result
	}

	var fallback []string
	seen := map[string]bool{}
	for _, t := range themes {
		for _, q := range themeFallbacks[t] {
			if !seen[q] {
				seen[q] = true
				fallback = append(fallback, q)
			}
		}
	}
	if len(fallback) == 0 {
		result.Questions = statements(genericStatements)
		result.Source = SourceDefault
		return result
	}
	result.Questions = statements(fallback)
	result.Source = SourceFallback
	return result
}

// ForThemes returns exactly QuestionCount statements for the given themes,
// falling back to the user's remembered themes and then DefaultThemes
func (s *QuestionService) ForThemes(ctx context.Context, userID string, themes []string, mbtiHint string) []string {
	themes = normalizeThemes(themes)
	if len(themes) == 0 && userID != "" && s.themeCache != nil {
		stored, err := s.themeCache.Get(ctx, userID)
		if err != nil {
			slog.Warn("failed to load themes", "user", userID, "error", err)
		}
		themes = stored
	}
	if len(themes) == 0 {
		themes = DefaultThemes
	}

	mbtiHint = strings.ToUpper(strings.TrimSpace(mbtiHint))
	generated, _ := s.generate(ctx, themedScope(mbtiHint), themes, themedPrompt(themes, mbtiHint))
	return EnsureCount(generated, HistoryFallback15, QuestionCount)
}

// General returns the configured bank with its answer scale
func (s *QuestionService) General() []model.GeneralQuestion {
	if s.bank == nil {
		return []model.GeneralQuestion{}
	}
	return s.bank.General()
}

// generate consults the Redis cache, then the generator. Failures are logged
// and yield nil so callers can fall back. The scope keeps statements from
// different prompts apart.
func (s *QuestionService) generate(ctx context.Context, scope string, themes []string, prompt string) ([]string, string) {
	if s.questionCache != nil {
		cached, err := s.questionCache.GetStatements(ctx, scope, themes)
		if err != nil {
			slog.Warn("question cache read failed", "themes", themes, "error", err)
		}
		if len(cached) > 0 {
			return cached, SourceCached
		}
	}
	if s.generator == nil {
		return nil, ""
	}

	generated, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		slog.Info("statement generation unavailable, using fallback", "themes", themes, "error", err)
		return nil, ""
	}
	if s.questionCache != nil {
		if err := s.questionCache.SetStatements(ctx, scope, themes, generated); err != nil {
			slog.Warn("question cache write failed", "themes", themes, "error", err)
		}
	}
	return generated, SourceGenerated
}

const scopeHistory = "history"

func themedScope(mbtiHint string) string {
	if mbtiHint == "" {
		return "themed"
	}
	return "themed:" + mbtiHint
}

func historyPrompt(themes []string) string {
	return fmt.Sprintf("Generate 10-15 first-person statements based on these themes: %s. "+
		"Each statement should describe a real-world habit, behavior, or scenario related to the theme. "+
		"Statements must be suitable for 'Agree' or 'Disagree' responses. "+
		"Do NOT output questions. "+
		"Use real-life scenarios wherever possible. "+
		"Output one statement per line, no numbering, no bullets, no commentary.",
		strings.Join(themes, ", "))
}

func themedPrompt(themes []string, mbtiHint string) string {
	prompt := fmt.Sprintf("Generate 15 highly personalized productivity statements tailored to these themes: %s. ",
		strings.Join(themes, ", "))
	if mbtiHint = strings.ToUpper(strings.TrimSpace(mbtiHint)); mbtiHint != "" {
		prompt += fmt.Sprintf("The respondent was previously typed as %s; probe the axes where that type may be uncertain. ", mbtiHint)
	}
	return prompt + "Statements must be answerable with Agree or Disagree. " +
		"Output one statement per line, no numbering, no bullets."
}

// EnsureCount de-duplicates items in order, truncates to n and tops up from
// pool. The result has exactly n entries whenever pool is non-empty.
func EnsureCount(items, pool []string, n int) []string {
	seen := make(map[string]bool, n)
	out := make([]string, 0, n)
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
		if len(out) == n {
			return out
		}
	}
	for _, q := range pool {
		if len(out) == n {
			return out
		}
		if !seen[q] {
			seen[q] = true
			out = append(out, q)
		}
	}
	// pool smaller than the gap: repeat it
	for i := 0; len(out) < n && len(pool) > 0; i++ {
		out = append(out, pool[i%len(pool)])
	}
	return out
}

func normalizeThemes(themes []string) []string {
	out := make([]string, 0, len(themes))
	seen := map[string]bool{}
	for _, t := range themes {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func statements(texts []string) []model.Statement {
	out := make([]model.Statement, len(texts))
	for i, t := range texts {
		out[i] = model.Statement{Question: t, Options: model.AgreeDisagree}
	}
	return out
}
