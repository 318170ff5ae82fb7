package scoring

import (
	"testing"

	"mindshift/internal/model"

	"github.com/stretchr/testify/assert"
)

// ratings answers every bank item with rate(q)
func ratings(b *Bank, rate func(q model.Question) int) map[string]int {
	out := make(map[string]int, b.Len())
	for _, q := range b.Questions() {
		out[q.Text] = rate(q)
	}
	return out
}

func TestScoreLikertComplementary(t *testing.T) {
	b := mustBank(t, "mbti24")

	c := b.ScoreLikert(ratings(b, func(q model.Question) int {
		switch q.PoleLetter() {
		case "E":
			return 5
		case "I":
			return 1
		}
		return 3
	}))

	assert.Equal(t, model.AxisCounters{E: 30, I: 6, S: 18, N: 18, T: 18, F: 18, J: 18, P: 18}, c)
}

func TestScoreLikertSkipsInvalid(t *testing.T) {
	b := mustBank(t, "mbti24")
	texts := b.Texts()

	c := b.ScoreLikert(map[string]int{
		texts[0]:              0,
		texts[1]:              6,
		"not a bank question": 5,
		texts[3]:              4,
	})
	assert.Equal(t, model.AxisCounters{I: 4, E: 2}, c)
}

func TestScoreLikertUnevenBank(t *testing.T) {
	b := mustBank(t, "mbti16")

	c := b.ScoreLikert(ratings(b, func(q model.Question) int {
		if q.PoleLetter() == "E" {
			return 5
		}
		if q.PoleLetter() == "I" {
			return 1
		}
		return 3
	}))
	assert.Equal(t, 20, c.E)
	assert.Equal(t, 4, c.I)
}

func TestScoreLikertMonotonicInE(t *testing.T) {
	b := mustBank(t, "mbti24")
	r := NewResolver(UniformPolicy(DefaultTieThreshold, StrategyRandom))

	// raising every E item and lowering every I item can only move E/I toward E
	prev := -1 << 31
	for v := 1; v <= 5; v++ {
		c := b.ScoreLikert(ratings(b, func(q model.Question) int {
			switch q.PoleLetter() {
			case "E":
				return v
			case "I":
				return 6 - v
			}
			return 3
		}))
		diff := c.E - c.I
		assert.GreaterOrEqual(t, diff, prev)
		prev = diff
	}
	for i := 0; i < 20; i++ {
		assert.Equal(t, byte('E'), r.Resolve(b.ScoreLikert(ratings(b, func(q model.Question) int {
			if q.PoleLetter() == "E" {
				return 5
			}
			if q.PoleLetter() == "I" {
				return 1
			}
			return 3
		})))[0])
	}
}
