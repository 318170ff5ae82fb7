package scoring

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"mindshift/internal/model"
)

// DefaultTieThreshold treats only exact ties as inconclusive
const DefaultTieThreshold = 1

var ErrInvalidPolicy = errors.New("invalid tie-break policy")

// Strategy decides an axis whose pole scores are within the threshold
type Strategy string

const (
	// StrategyFirst picks the first letter of the axis (E, S, T, J)
	StrategyFirst Strategy = "first"
	// StrategyRandom picks either letter uniformly
	StrategyRandom Strategy = "random"
	// StrategyBias always picks a configured letter
	StrategyBias Strategy = "bias"
)

// AxisRule is the tie-break rule of one axis
type AxisRule struct {
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	Bias     string   `json:"bias,omitempty" yaml:"bias,omitempty"`
}

func (r AxisRule) String() string {
	if r.Strategy == StrategyBias {
		return string(StrategyBias) + ":" + r.Bias
	}
	return string(r.Strategy)
}

// TieBreakPolicy is the explicit, per-axis near-tie configuration.
// Rules are indexed like model.Axes.
type TieBreakPolicy struct {
	Threshold int
	Rules     [4]AxisRule
}

// UniformPolicy applies one strategy to every axis
func UniformPolicy(threshold int, s Strategy) TieBreakPolicy {
	p := TieBreakPolicy{Threshold: threshold}
	for i := range p.Rules {
		p.Rules[i] = AxisRule{Strategy: s}
	}
	return p
}

// DefaultPolicy is deterministic: exact ties go to the first letter
func DefaultPolicy() TieBreakPolicy {
	return UniformPolicy(DefaultTieThreshold, StrategyFirst)
}

// ParsePolicy reads a policy string. A bare token applies to every axis,
// "AXIS=token" overrides one axis. Tokens are first, random or bias:LETTERS.
// A bias token without an axis carries one letter per axis ("bias:INTJ").
//
//	"random"
//	"first,EI=bias:I"
//	"bias:INTJ"
func ParsePolicy(spec string, threshold int) (TieBreakPolicy, error) {
	p := DefaultPolicy()
	p.Threshold = threshold
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return p, nil
	}

	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if axisName, ruleSpec, ok := strings.Cut(tok, "="); ok {
			axis, err := model.ParseAxis(axisName)
			if err != nil {
				return p, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
			}
			rule, err := parseRule(axis, ruleSpec)
			if err != nil {
				return p, err
			}
			p.Rules[axis.Index()] = rule
			continue
		}

		strategy, arg, _ := strings.Cut(tok, ":")
		switch Strategy(strings.ToLower(strategy)) {
		case StrategyFirst, StrategyRandom:
			for i := range p.Rules {
				p.Rules[i] = AxisRule{Strategy: Strategy(strings.ToLower(strategy))}
			}
		case StrategyBias:
			letters := strings.ToUpper(strings.TrimSpace(arg))
			if len(letters) != len(model.Axes) {
				return p, fmt.Errorf("%w: bias needs one letter per axis, got %q", ErrInvalidPolicy, arg)
			}
			for i, axis := range model.Axes {
				rule, err := parseRule(axis, "bias:"+letters[i:i+1])
				if err != nil {
					return p, err
				}
				p.Rules[i] = rule
			}
		default:
			return p, fmt.Errorf("%w: %q", ErrInvalidPolicy, tok)
		}
	}
	return p, nil
}

func parseRule(axis model.Axis, spec string) (AxisRule, error) {
	strategy, arg, _ := strings.Cut(strings.TrimSpace(spec), ":")
	switch Strategy(strings.ToLower(strategy)) {
	case StrategyFirst:
		return AxisRule{Strategy: StrategyFirst}, nil
	case StrategyRandom:
		return AxisRule{Strategy: StrategyRandom}, nil
	case StrategyBias:
		letter := strings.ToUpper(strings.TrimSpace(arg))
		first, second := axis.Letters()
		if len(letter) != 1 || (letter[0] != first && letter[0] != second) {
			return AxisRule{}, fmt.Errorf("%w: bias %q is not a pole of %s", ErrInvalidPolicy, arg, axis)
		}
		return AxisRule{Strategy: StrategyBias, Bias: letter}, nil
	}
	return AxisRule{}, fmt.Errorf("%w: %q", ErrInvalidPolicy, spec)
}

// String renders the policy in ParsePolicy syntax
func (p TieBreakPolicy) String() string {
	parts := make([]string, len(model.Axes))
	for i, axis := range model.Axes {
		parts[i] = string(axis) + "=" + p.Rules[i].String()
	}
	return strings.Join(parts, ",")
}

// Resolver turns pole counters into a four-letter code
type Resolver struct {
	policy TieBreakPolicy
	intn   func(n int) int
}

// ResolverOption customises a Resolver
type ResolverOption func(*Resolver)

// WithIntn injects the random source used by StrategyRandom.
// It must be safe for concurrent use.
func WithIntn(fn func(n int) int) ResolverOption {
	return func(r *Resolver) { r.intn = fn }
}

// NewResolver builds a resolver; the default random source is math/rand/v2
func NewResolver(policy TieBreakPolicy, opts ...ResolverOption) *Resolver {
	r := &Resolver{policy: policy, intn: rand.IntN}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the configured policy
func (r *Resolver) Policy() TieBreakPolicy {
	return r.policy
}

// Resolve concatenates one letter per axis in E/I, S/N, T/F, J/P order
func (r *Resolver) Resolve(c model.AxisCounters) string {
	var code [4]byte
	for i, axis := range model.Axes {
		a, b := c.Pair(axis)
		code[i] = r.ResolveAxis(axis, a, b)
	}
	return string(code[:])
}

// ResolveAxis picks the higher pole when the gap reaches the threshold,
// otherwise applies the axis rule
func (r *Resolver) ResolveAxis(axis model.Axis, a, b int) byte {
	first, second := axis.Letters()
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	if diff != 0 && diff >= r.policy.Threshold {
		if a > b {
			return first
		}
		return second
	}

	rule := r.policy.Rules[axis.Index()]
	switch rule.Strategy {
	case StrategyRandom:
		if r.intn(2) == 0 {
			return first
		}
		return second
	case StrategyBias:
		if len(rule.Bias) == 1 {
			return rule.Bias[0]
		}
	}
	return first
}
