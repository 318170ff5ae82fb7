package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"mindshift/internal/config"
	"mindshift/internal/metrics"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/kaptinlin/jsonrepair"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/singleflight"
)

var (
	ErrGeneratorDisabled = errors.New("statement generator not configured")
	ErrEmptyGeneration   = errors.New("generator returned no statements")
)

const statementSystemPrompt = "You are a helpful assistant. " +
	"Generate ONLY first-person statements suitable for 'Agree' or 'Disagree'. " +
	"Do NOT output questions. " +
	"Output one statement per line, no numbering, no bullets, no commentary."

// Generator turns a prompt into a list of first-person statements
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]string, error)
}

// GroqGenerator calls Groq's OpenAI-compatible chat completions API
type GroqGenerator struct {
	config   *config.GeneratorConfig
	client   *openai.Client
	observer metrics.Observer
}

// NewGroqGenerator creates a generator; without an API key every call
// returns ErrGeneratorDisabled
func NewGroqGenerator(cfg *config.GeneratorConfig, observer metrics.Observer) *GroqGenerator {
	if observer == nil {
		observer = metrics.Nop()
	}
	g := &GroqGenerator{config: cfg, observer: observer}
	if cfg.IsEnabled() {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		g.client = openai.NewClientWithConfig(clientCfg)
	}
	return g
}

func (g *GroqGenerator) Generate(ctx context.Context, prompt string) ([]string, error) {
	if g.client == nil {
		g.observer.RecordGeneration(0, metrics.OutcomeDisabled)
		return nil, ErrGeneratorDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout())
	defer cancel()

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: statementSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   600,
	})
	if err != nil {
		g.observer.RecordGeneration(time.Since(start), metrics.OutcomeError)
		return nil, fmt.Errorf("groq chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		g.observer.RecordGeneration(time.Since(start), metrics.OutcomeError)
		return nil, ErrEmptyGeneration
	}

	statements := ParseStatements(resp.Choices[0].Message.Content)
	if len(statements) == 0 {
		g.observer.RecordGeneration(time.Since(start), metrics.OutcomeError)
		return nil, ErrEmptyGeneration
	}
	g.observer.RecordGeneration(time.Since(start), metrics.OutcomeOK)
	return statements, nil
}

var listMarker = regexp.MustCompile(`^(\d+[.)]|[-*•])\s*`)

// ParseStatements cleans model output into statements. A JSON array (even a
// slightly broken one) is accepted, otherwise one statement per line with
// numbering and bullets stripped. Results are de-duplicated in order and end
// with a period.
func ParseStatements(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	var lines []string
	if strings.HasPrefix(content, "[") {
		if repaired, err := jsonrepair.JSONRepair(content); err == nil {
			_ = json.Unmarshal([]byte(repaired), &lines)
		}
	}
	if lines == nil {
		lines = strings.Split(content, "\n")
	}

	seen := make(map[string]bool, len(lines))
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		ln = strings.TrimSpace(listMarker.ReplaceAllString(ln, ""))
		ln = strings.Trim(ln, `"`)
		if ln == "" {
			continue
		}
		if !strings.HasSuffix(ln, ".") {
			ln += "."
		}
		if seen[ln] {
			continue
		}
		seen[ln] = true
		out = append(out, ln)
	}
	return out
}

// CachedGenerator memoises another generator per prompt and collapses
// concurrent identical prompts into one upstream call
type CachedGenerator struct {
	next     Generator
	cache    *expirable.LRU[string, []string]
	group    singleflight.Group
	observer metrics.Observer
}

// NewCachedGenerator wraps next with an expiring LRU
func NewCachedGenerator(next Generator, size int, ttl time.Duration, observer metrics.Observer) *CachedGenerator {
	if size <= 0 {
		size = 256
	}
	if observer == nil {
		observer = metrics.Nop()
	}
	return &CachedGenerator{
		next:     next,
		cache:    expirable.NewLRU[string, []string](size, nil, ttl),
		observer: observer,
	}
}

func (c *CachedGenerator) Generate(ctx context.Context, prompt string) ([]string, error) {
	if cached, ok := c.cache.Get(prompt); ok {
		c.observer.RecordGeneration(0, metrics.OutcomeCached)
		return append([]string(nil), cached...), nil
	}

	// the shared call outlives any one caller; the upstream applies its own timeout
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(prompt, func() (interface{}, error) {
		statements, err := c.next.Generate(shared, prompt)
		if err != nil {
			return nil, err
		}
		c.cache.Add(prompt, statements)
		return statements, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return append([]string(nil), res.Val.([]string)...), nil
	}
}
