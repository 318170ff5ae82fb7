package scoring

import "mindshift/internal/model"

// Likert scale bounds
const (
	LikertMin = 1
	LikertMax = 5
)

// ScoreLikert accumulates complementary scores: an answered item gives its
// own pole +v and the opposite pole of the same axis +(6-v). Out-of-range
// ratings and texts not in the bank are skipped.
func (b *Bank) ScoreLikert(answers map[string]int) model.AxisCounters {
	var c model.AxisCounters
	for text, v := range answers {
		if v < LikertMin || v > LikertMax {
			continue
		}
		q, ok := b.Lookup(text)
		if !ok {
			continue
		}
		comp := LikertMax + LikertMin - v
		c.Add(q.Axis, q.Pole, v)
		c.Add(q.Axis, q.Pole.Opposite(), comp)
	}
	return c
}
