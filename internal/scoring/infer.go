package scoring

import (
	"errors"
	"time"

	"mindshift/internal/model"
)

// ErrInvalidAnswers is returned for a structurally invalid answer container
var ErrInvalidAnswers = errors.New("answers must be a mapping of question to response")

// Engine composes the scorers over read-only reference data. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	bank      *Bank
	traits    *TraitTable
	resolver  *Resolver
	tolerance int
	now       func() time.Time
}

// EngineOption customises an Engine
type EngineOption func(*Engine)

// WithTolerance sets the trait tolerance band
func WithTolerance(n int) EngineOption {
	return func(e *Engine) { e.tolerance = n }
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine wires a bank, an optional trait table and a resolver
func NewEngine(bank *Bank, traits *TraitTable, resolver *Resolver, opts ...EngineOption) *Engine {
	if resolver == nil {
		resolver = NewResolver(DefaultPolicy())
	}
	e := &Engine{
		bank:      bank,
		traits:    traits,
		resolver:  resolver,
		tolerance: DefaultTraitTolerance,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Bank() *Bank { return e.bank }
func (e *Engine) Traits() *TraitTable { return e.traits }
func (e *Engine) Resolver() *Resolver { return e.resolver }
func (e *Engine) TraitTolerance() int { return e.tolerance }

// IsLikertCoded reports whether enough answers are 1..5 ratings to use the
// bank scorer: at least max(1, len/2) of them.
func IsLikertCoded(answers model.AnswerSet) bool {
	if len(answers) == 0 {
		return false
	}
	inScale := 0
	for _, a := range answers {
		if a.InScale() {
			inScale++
		}
	}
	need := len(answers) / 2
	if need < 1 {
		need = 1
	}
	return inScale >= need
}

// Infer scores an answer set and resolves it into a profile
func (e *Engine) Infer(answers model.AnswerSet) (*model.ResolvedProfile, error) {
	if answers == nil {
		return nil, ErrInvalidAnswers
	}

	texts := answers.Texts()
	profile := &model.ResolvedProfile{
		Traits:      e.traits.Match(texts, e.tolerance),
		TraitScores: e.traits.MatchScores(texts),
		CreatedAt:   e.now(),
	}

	var counters model.AxisCounters
	if IsLikertCoded(answers) && e.bank != nil {
		profile.Mode = model.ModeLikert
		counters = e.bank.ScoreLikert(answers.Ratings())
	} else {
		profile.Mode = model.ModeFreeText
		counters = ScoreText(texts).Counters()
	}

	profile.MBTI = e.resolver.Resolve(counters)
	profile.AxisScores = counters.Map()
	return profile, nil
}
