package config

import (
	"time"

	"github.com/spf13/viper"
)

// GeneratorConfig holds the statement generator settings. Groq exposes an
// OpenAI-compatible API, so only the base URL and model differ.
type GeneratorConfig struct {
	APIKey    string        `json:"-"` // Never serialize
	BaseURL   string        `json:"baseUrl"`
	Model     string        `json:"model"`
	TimeoutMS int           `json:"timeoutMs"`
	CacheSize int           `json:"cacheSize"`
	CacheTTL  time.Duration `json:"cacheTtl"`
}

func generatorFromViper(v *viper.Viper) *GeneratorConfig {
	return &GeneratorConfig{
		APIKey:    v.GetString("groq_api_key"),
		BaseURL:   v.GetString("groq_base_url"),
		Model:     v.GetString("groq_model"),
		TimeoutMS: v.GetInt("generator_timeout_ms"),
		CacheSize: v.GetInt("generator_cache_size"),
		CacheTTL:  v.GetDuration("generator_cache_ttl"),
	}
}

// IsEnabled returns true if the generator API is configured
func (c *GeneratorConfig) IsEnabled() bool {
	return c != nil && c.APIKey != ""
}

// Timeout is the per-request deadline
func (c *GeneratorConfig) Timeout() time.Duration {
	if c == nil || c.TimeoutMS <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
