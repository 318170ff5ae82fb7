package scoring

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"mindshift/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed banks/*.yaml
var builtinBanks embed.FS

// DefaultBankName is the bank served when none is configured
const DefaultBankName = "mbti24"

var (
	ErrEmptyBank       = errors.New("question bank has no questions")
	ErrUnknownBank     = errors.New("unknown question bank")
	ErrInvalidBankPole = errors.New("invalid pole letter in bank partition")
)

// bankFile is the on-disk layout: ordered texts plus an explicit
// pole -> indices partition
type bankFile struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Questions   []string         `yaml:"questions"`
	Partition   map[string][]int `yaml:"partition"`
}

// Bank is an immutable, ordered question bank with its axis/pole partition
type Bank struct {
	name        string
	description string
	questions   []model.Question
	byText      map[string]int
}

// LoadBank parses and validates a YAML bank
func LoadBank(r io.Reader) (*Bank, error) {
	var f bankFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	return newBank(f)
}

// LoadBankFile reads a bank from disk
func LoadBankFile(path string) (*Bank, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return LoadBank(fh)
}

// BuiltinBank loads one of the embedded banks by name
func BuiltinBank(name string) (*Bank, error) {
	fh, err := builtinBanks.Open("banks/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBank, name)
	}
	defer fh.Close()
	return LoadBank(fh)
}

// BuiltinBankNames lists the embedded banks
func BuiltinBankNames() []string {
	entries, err := builtinBanks.ReadDir("banks")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

func newBank(f bankFile) (*Bank, error) {
	if len(f.Questions) == 0 {
		return nil, ErrEmptyBank
	}

	assigned := make([]bool, len(f.Questions))
	questions := make([]model.Question, len(f.Questions))
	byText := make(map[string]int, len(f.Questions))

	for i, text := range f.Questions {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("bank %s: question %d is empty", f.Name, i)
		}
		if _, dup := byText[text]; dup {
			return nil, fmt.Errorf("bank %s: duplicate question %q", f.Name, text)
		}
		byText[text] = i
		questions[i] = model.Question{Index: i, Text: text}
	}

	for letter, indices := range f.Partition {
		if len(letter) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBankPole, letter)
		}
		axis, pole, ok := model.AxisForLetter(letter[0])
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBankPole, letter)
		}
		for _, idx := range indices {
			if idx < 0 || idx >= len(questions) {
				return nil, fmt.Errorf("bank %s: index %d out of range for pole %s", f.Name, idx, letter)
			}
			if assigned[idx] {
				return nil, fmt.Errorf("bank %s: index %d assigned to more than one pole", f.Name, idx)
			}
			assigned[idx] = true
			questions[idx].Axis = axis
			questions[idx].Pole = pole
		}
	}

	for i, ok := range assigned {
		if !ok {
			return nil, fmt.Errorf("bank %s: question %d has no pole", f.Name, i)
		}
	}

	return &Bank{
		name:        f.Name,
		description: f.Description,
		questions:   questions,
		byText:      byText,
	}, nil
}

func (b *Bank) Name() string { return b.name }
func (b *Bank) Description() string { return b.description }
func (b *Bank) Len() int { return len(b.questions) }

// Questions returns a copy of the ordered items
func (b *Bank) Questions() []model.Question {
	out := make([]model.Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Texts returns the ordered statement texts
func (b *Bank) Texts() []string {
	out := make([]string, len(b.questions))
	for i, q := range b.questions {
		out[i] = q.Text
	}
	return out
}

// Lookup finds a question by exact text
func (b *Bank) Lookup(text string) (model.Question, bool) {
	idx, ok := b.byText[text]
	if !ok {
		return model.Question{}, false
	}
	return b.questions[idx], true
}

// PoleIndices returns the indices assigned to one pole, in order
func (b *Bank) PoleIndices(axis model.Axis, pole model.Pole) []int {
	var out []int
	for _, q := range b.questions {
		if q.Axis == axis && q.Pole == pole {
			out = append(out, q.Index)
		}
	}
	return out
}

// General renders the bank for clients
func (b *Bank) General() []model.GeneralQuestion {
	out := make([]model.GeneralQuestion, len(b.questions))
	for i, q := range b.questions {
		out[i] = model.GeneralQuestion{
			Question: q.Text,
			Axis:     q.Axis,
			Side:     q.PoleLetter(),
			Scale:    model.DefaultLikertScale,
		}
	}
	return out
}
