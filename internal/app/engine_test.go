package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mindshift/internal/config"
	"mindshift/internal/model"
	"mindshift/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTraitSource struct {
	defs []model.TraitDefinition
	err  error
}

func (s stubTraitSource) All(context.Context) ([]model.TraitDefinition, error) {
	return s.defs, s.err
}

func writeTraits(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "personalities.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTraitsPrecedence(t *testing.T) {
	ctx := context.Background()
	file := writeTraits(t, `[{"trait": "FromFile", "keywords": ["x"]}]`)
	stored := stubTraitSource{defs: []model.TraitDefinition{{Trait: "FromStore", Keywords: []string{"y"}}}}
	duplicated := stubTraitSource{defs: []model.TraitDefinition{{Trait: "A"}, {Trait: "A"}}}

	tests := []struct {
		name string
		src  TraitSource
		path string
		want []string
	}{
		{"store wins", stored, file, []string{"FromStore"}},
		{"empty store falls back to file", stubTraitSource{}, file, []string{"FromFile"}},
		{"store error falls back to file", stubTraitSource{err: errors.New("down")}, file, []string{"FromFile"}},
		{"duplicate stored names fall back to file", duplicated, file, []string{"FromFile"}},
		{"duplicate stored names without file", duplicated, "", nil},
		{"no store", nil, file, []string{"FromFile"}},
		{"missing file gives empty table", nil, filepath.Join(t.TempDir(), "nope.json"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := LoadTraits(ctx, tt.src, tt.path)
			var got []string
			for _, d := range table.Definitions() {
				got = append(got, d.Trait)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadTraitsMalformedFile(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not an array", `{"trait": "A"}`},
		{"truncated", `[{"trait": "A", "keywords": ["pla`},
		{"duplicate names", `[{"trait": "A"}, {"trait": "A"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := LoadTraits(context.Background(), nil, writeTraits(t, tt.body))
			assert.Equal(t, 0, table.Len())
		})
	}
}

func TestBuildEngineSurvivesCorruptTraits(t *testing.T) {
	cfg := config.ScoringConfig{
		TraitsPath:   writeTraits(t, `[{"trait": "A", "keywords": ["pla`),
		TieThreshold: 1,
		TiePolicy:    "first",
	}
	engine, err := BuildEngine(context.Background(), cfg, stubTraitSource{defs: []model.TraitDefinition{{Trait: "A"}, {Trait: "A"}}})
	require.NoError(t, err)

	profile, err := engine.Infer(model.AnswerSetFromStrings(map[string]string{"q": "I plan everything"}))
	require.NoError(t, err)
	assert.Equal(t, []string{model.TraitUnknown}, profile.Traits)
}

func TestBuildEngine(t *testing.T) {
	cfg := config.ScoringConfig{
		Bank:           "mbti16",
		TraitsPath:     writeTraits(t, `[{"trait": "Planner", "keywords": ["plan"]}]`),
		TieThreshold:   1,
		TiePolicy:      "bias:INTJ",
		TraitTolerance: 0,
	}
	engine, err := BuildEngine(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "mbti16", engine.Bank().Name())
	assert.Equal(t, 0, engine.TraitTolerance())

	// every axis ties at zero, so the bias letters win
	profile, err := engine.Infer(model.AnswerSetFromStrings(map[string]string{"q": "I plan"}))
	require.NoError(t, err)
	assert.Equal(t, "INTJ", profile.MBTI)
	assert.Equal(t, []string{"Planner"}, profile.Traits)
}

func TestNoHitFreeTextFollowsPolicy(t *testing.T) {
	answers := model.AnswerSetFromStrings(map[string]string{"q": "hmm"})
	for policy, want := range map[string]string{
		"first":     "ESTJ",
		"bias:INTJ": "INTJ",
	} {
		engine, err := BuildEngine(context.Background(), config.ScoringConfig{TieThreshold: 1, TiePolicy: policy}, nil)
		require.NoError(t, err)
		profile, err := engine.Infer(answers)
		require.NoError(t, err)
		assert.Equal(t, want, profile.MBTI, policy)
	}
}

func TestLoadBankFallbacks(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "tiny.yaml")
	require.NoError(t, os.WriteFile(custom, []byte("name: tiny\nquestions: [a, b]\npartition:\n  \"E\": [0]\n  \"I\": [1]\n"), 0o644))
	broken := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("name: broken\nquestions: []\n"), 0o644))

	tests := []struct {
		name string
		cfg  config.ScoringConfig
		want string
	}{
		{"file", config.ScoringConfig{BankPath: custom, Bank: "mbti16"}, "tiny"},
		{"builtin by name", config.ScoringConfig{Bank: "mbti16"}, "mbti16"},
		{"empty config", config.ScoringConfig{}, scoring.DefaultBankName},
		{"broken file falls back to name", config.ScoringConfig{BankPath: broken, Bank: "mbti16"}, "mbti16"},
		{"missing file falls back", config.ScoringConfig{BankPath: filepath.Join(t.TempDir(), "missing.yaml")}, scoring.DefaultBankName},
		{"unknown name falls back", config.ScoringConfig{Bank: "mbti99"}, scoring.DefaultBankName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LoadBank(tt.cfg).Name())
		})
	}
}

func TestBuildEngineRejectsBadPolicy(t *testing.T) {
	_, err := BuildEngine(context.Background(), config.ScoringConfig{TiePolicy: "sideways"}, nil)
	assert.ErrorIs(t, err, scoring.ErrInvalidPolicy)
}
