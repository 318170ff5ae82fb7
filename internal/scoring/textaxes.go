package scoring

import (
	"strings"

	"mindshift/internal/model"
)

// TextScores are the four signed counters of the free-text heuristic.
// Positive values lean I, N, T and J respectively.
type TextScores struct {
	IE int `json:"I_E"`
	NS int `json:"N_S"`
	TF int `json:"T_F"`
	JP int `json:"J_P"`
}

type axisFamilies struct {
	axis     model.Axis
	positive []string // nudges toward the second letter for EI/SN, first for TF/JP
	negative []string
}

var textAxisFamilies = []axisFamilies{
	{model.AxisEI,
		[]string{"alone", "solo", "reflect", "quiet", "independent"},
		[]string{"team", "friends", "talk", "social", "network"}},
	{model.AxisSN,
		[]string{"concept", "theory", "future", "idea", "pattern"},
		[]string{"detail", "practical", "today", "data", "facts"}},
	{model.AxisTF,
		[]string{"logic", "objective", "analyze", "metrics", "reason"},
		[]string{"empathy", "feel", "values", "support", "people"}},
	{model.AxisJP,
		[]string{"plan", "schedule", "deadline", "organized", "structure"},
		[]string{"flexible", "spontaneous", "explore", "adapt", "open-ended"}},
}

// ScoreText scans free-text answers for axis keyword families. One answer
// can move several axes, and both directions of one axis when it matches
// both families.
func ScoreText(answers map[string]string) TextScores {
	var s TextScores
	for _, text := range answers {
		t := strings.ToLower(text)
		if t == "" {
			continue
		}
		for _, fam := range textAxisFamilies {
			delta := 0
			if containsAny(t, fam.positive) {
				delta++
			}
			if containsAny(t, fam.negative) {
				delta--
			}
			s.add(fam.axis, delta)
		}
	}
	return s
}

func (s *TextScores) add(axis model.Axis, delta int) {
	switch axis {
	case model.AxisEI:
		s.IE += delta
	case model.AxisSN:
		s.NS += delta
	case model.AxisTF:
		s.TF += delta
	case model.AxisJP:
		s.JP += delta
	}
}

// Counters projects the signed scores onto pole counters so the same
// resolver can be used for both scorers. A zero score leaves both poles at 0.
func (s TextScores) Counters() model.AxisCounters {
	var c model.AxisCounters
	project(&c, model.AxisEI, model.PoleSecond, s.IE)
	project(&c, model.AxisSN, model.PoleSecond, s.NS)
	project(&c, model.AxisTF, model.PoleFirst, s.TF)
	project(&c, model.AxisJP, model.PoleFirst, s.JP)
	return c
}

func project(c *model.AxisCounters, axis model.Axis, positive model.Pole, v int) {
	switch {
	case v > 0:
		c.Add(axis, positive, v)
	case v < 0:
		c.Add(axis, positive.Opposite(), -v)
	}
}
