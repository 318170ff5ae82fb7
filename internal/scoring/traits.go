package scoring

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"mindshift/internal/model"
)

// DefaultTraitTolerance is the co-match band below the best trait score
const DefaultTraitTolerance = 3

// TraitTable is the read-only keyword table used by the trait matcher.
// A nil or empty table is valid and yields the Unknown sentinel.
type TraitTable struct {
	defs []model.TraitDefinition
	// lower-cased keywords, aligned with defs
	keywords [][]string
}

// NewTraitTable validates definitions (unique, non-empty names)
func NewTraitTable(defs []model.TraitDefinition) (*TraitTable, error) {
	seen := make(map[string]bool, len(defs))
	t := &TraitTable{
		defs:     make([]model.TraitDefinition, 0, len(defs)),
		keywords: make([][]string, 0, len(defs)),
	}
	for _, d := range defs {
		name := strings.TrimSpace(d.Trait)
		if name == "" {
			return nil, fmt.Errorf("trait table: empty trait name")
		}
		if seen[name] {
			return nil, fmt.Errorf("trait table: duplicate trait %q", name)
		}
		seen[name] = true
		d.Trait = name

		kws := make([]string, 0, len(d.Keywords))
		for _, k := range d.Keywords {
			if k = strings.ToLower(k); k != "" {
				kws = append(kws, k)
			}
		}
		t.defs = append(t.defs, d)
		t.keywords = append(t.keywords, kws)
	}
	return t, nil
}

// LoadTraitTable decodes a JSON array of trait records
func LoadTraitTable(r io.Reader) (*TraitTable, error) {
	var defs []model.TraitDefinition
	if err := json.NewDecoder(r).Decode(&defs); err != nil {
		return nil, fmt.Errorf("decode trait table: %w", err)
	}
	return NewTraitTable(defs)
}

// LoadTraitTableFile reads the table from disk
func LoadTraitTableFile(path string) (*TraitTable, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return LoadTraitTable(fh)
}

// Len is safe on a nil table
func (t *TraitTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.defs)
}

// Definitions returns a copy of the table records
func (t *TraitTable) Definitions() []model.TraitDefinition {
	if t == nil {
		return nil
	}
	out := make([]model.TraitDefinition, len(t.defs))
	copy(out, t.defs)
	return out
}

// Lookup finds a trait case-insensitively
func (t *TraitTable) Lookup(name string) (model.TraitDefinition, bool) {
	if t == nil {
		return model.TraitDefinition{}, false
	}
	for _, d := range t.defs {
		if strings.EqualFold(d.Trait, name) {
			return d, true
		}
	}
	return model.TraitDefinition{}, false
}

// MatchScores counts keyword hits per trait. Each keyword found in each
// answer adds one; matching is substring containment, not word match.
func (t *TraitTable) MatchScores(answers map[string]string) map[string]int {
	if t.Len() == 0 {
		return nil
	}
	normalized := make([]string, 0, len(answers))
	for _, a := range answers {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(a)))
	}

	scores := make(map[string]int, len(t.defs))
	for i, d := range t.defs {
		score := 0
		for _, text := range normalized {
			for _, k := range t.keywords[i] {
				if strings.Contains(text, k) {
					score++
				}
			}
		}
		scores[d.Trait] = score
	}
	return scores
}

// Match returns every trait scoring within tolerance of the best one, in
// table order. Ties are not broken: hybrid profiles are expected.
func (t *TraitTable) Match(answers map[string]string, tolerance int) []string {
	if t.Len() == 0 {
		return []string{model.TraitUnknown}
	}
	if tolerance < 0 {
		tolerance = 0
	}

	scores := t.MatchScores(answers)
	best := 0
	for _, s := range scores {
		if s > best {
			best = s
		}
	}
	if best == 0 {
		return []string{model.TraitUnclassified}
	}

	var out []string
	for _, d := range t.defs {
		if scores[d.Trait] >= best-tolerance {
			out = append(out, d.Trait)
		}
	}
	return out
}
