package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"mindshift/internal/config"
	"mindshift/internal/model"
	"mindshift/internal/scoring"
)

// TraitSource supplies stored trait definitions in table order
type TraitSource interface {
	All(ctx context.Context) ([]model.TraitDefinition, error)
}

// LoadBank returns the bank file at BankPath, else the named builtin bank,
// else the default bank. Unusable bank configuration is logged, not fatal.
func LoadBank(cfg config.ScoringConfig) *scoring.Bank {
	if cfg.BankPath != "" {
		bank, err := scoring.LoadBankFile(cfg.BankPath)
		if err == nil {
			return bank
		}
		slog.Error("bank file unusable, using builtin bank", "path", cfg.BankPath, "error", err)
	}
	if cfg.Bank != "" && cfg.Bank != scoring.DefaultBankName {
		bank, err := scoring.BuiltinBank(cfg.Bank)
		if err == nil {
			return bank
		}
		slog.Error("unknown bank, using default", "bank", cfg.Bank, "error", err)
	}
	bank, err := scoring.BuiltinBank(scoring.DefaultBankName)
	if err != nil {
		// embedded at build time
		panic(err)
	}
	return bank
}

// LoadTraits prefers the stored table, then the JSON file at path. A missing
// or unusable table yields an empty one so inference reports the Unknown
// sentinel.
func LoadTraits(ctx context.Context, src TraitSource, path string) *scoring.TraitTable {
	if src != nil {
		defs, err := src.All(ctx)
		switch {
		case err != nil:
			slog.Warn("trait store unavailable, trying file", "error", err)
		case len(defs) > 0:
			table, err := scoring.NewTraitTable(defs)
			if err == nil {
				slog.Info("traits loaded", "source", "mongo", "count", table.Len())
				return table
			}
			slog.Error("stored trait table unusable, trying file", "error", err)
		}
	}

	if path != "" {
		table, err := scoring.LoadTraitTableFile(path)
		switch {
		case err == nil:
			slog.Info("traits loaded", "source", path, "count", table.Len())
			return table
		case errors.Is(err, fs.ErrNotExist):
			slog.Warn("trait file missing", "path", path)
		default:
			slog.Error("trait file unusable", "path", path, "error", err)
		}
	}

	slog.Warn("no trait reference table, traits will be Unknown")
	table, _ := scoring.NewTraitTable(nil)
	return table
}

// BuildEngine assembles the inference engine from configuration
func BuildEngine(ctx context.Context, cfg config.ScoringConfig, src TraitSource) (*scoring.Engine, error) {
	bank := LoadBank(cfg)
	traits := LoadTraits(ctx, src, cfg.TraitsPath)
	policy, err := scoring.ParsePolicy(cfg.TiePolicy, cfg.TieThreshold)
	if err != nil {
		return nil, fmt.Errorf("tie policy: %w", err)
	}

	slog.Info("scoring engine ready",
		"bank", bank.Name(),
		"questions", bank.Len(),
		"traits", traits.Len(),
		"policy", policy.String(),
	)
	return scoring.NewEngine(bank, traits, scoring.NewResolver(policy), scoring.WithTolerance(cfg.TraitTolerance)), nil
}
