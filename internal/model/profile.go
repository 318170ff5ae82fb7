package model

import "time"

// AxisCounters holds one non-negative accumulator per pole
type AxisCounters struct {
	E, I, S, N, T, F, J, P int
}

// Pair returns the (first, second) pole counters of an axis
func (c *AxisCounters) Pair(a Axis) (int, int) {
	switch a {
	case AxisEI:
		return c.E, c.I
	case AxisSN:
		return c.S, c.N
	case AxisTF:
		return c.T, c.F
	case AxisJP:
		return c.J, c.P
	}
	return 0, 0
}

// Add credits n to one pole of an axis
func (c *AxisCounters) Add(a Axis, p Pole, n int) {
	var slot *int
	switch a {
	case AxisEI:
		slot = pick(p, &c.E, &c.I)
	case AxisSN:
		slot = pick(p, &c.S, &c.N)
	case AxisTF:
		slot = pick(p, &c.T, &c.F)
	case AxisJP:
		slot = pick(p, &c.J, &c.P)
	default:
		return
	}
	*slot += n
}

func pick(p Pole, first, second *int) *int {
	if p == PoleFirst {
		return first
	}
	return second
}

// Map renders the counters keyed by pole letter
func (c AxisCounters) Map() map[string]int {
	return map[string]int{
		"E": c.E, "I": c.I,
		"S": c.S, "N": c.N,
		"T": c.T, "F": c.F,
		"J": c.J, "P": c.P,
	}
}

// ScoringMode records which scorer produced the MBTI code
type ScoringMode string

const (
	ModeLikert   ScoringMode = "likert"
	ModeFreeText ScoringMode = "text"
)

// ResolvedProfile is the terminal output of inference
type ResolvedProfile struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	UserID      string         `json:"userId,omitempty" bson:"userId,omitempty"`
	MBTI        string         `json:"mbti" bson:"mbti"`
	Mode        ScoringMode    `json:"mode" bson:"mode"`
	Traits      []string       `json:"traits" bson:"traits"`
	TraitScores map[string]int `json:"traitScores,omitempty" bson:"traitScores,omitempty"`
	AxisScores  map[string]int `json:"axisScores" bson:"axisScores"`
	Themes      []string       `json:"themes,omitempty" bson:"themes,omitempty"`
	CreatedAt   time.Time      `json:"createdAt" bson:"createdAt"`
}
