package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Config is the process configuration. Every key can be set from the
// environment (MONGO_URI, TIE_POLICY, ...) or from mindshift.yaml.
type Config struct {
	MongoURI string
	MongoDB  string
	RedisURI string
	Port     string
	LogLevel string

	JWTSecret string

	CORSAllowedOrigins string
	CORSAllowedMethods string
	CORSAllowedHeaders string

	Scoring   ScoringConfig
	Generator *GeneratorConfig
}

// ScoringConfig selects the reference data and the tie-break policy
type ScoringConfig struct {
	Bank           string
	BankPath       string
	TraitsPath     string
	TieThreshold   int
	TiePolicy      string
	TraitTolerance int
}

var defaults = map[string]any{
	"mongo_uri":            "mongodb://localhost:27017",
	"mongo_db":             "mindshift",
	"redis_uri":            "localhost:6379",
	"port":                 "8080",
	"log_level":            "info",
	"jwt_secret":           "super-secret-key-change-in-production",
	"cors_allowed_origins": "*",
	"cors_allowed_methods": "GET, POST, PUT, DELETE, OPTIONS",
	"cors_allowed_headers": "Content-Type, Authorization",
	"bank":                 "mbti24",
	"bank_path":            "",
	"traits_path":          "data/personalities.json",
	"tie_threshold":        1,
	"tie_policy":           "first",
	"trait_tolerance":      3,
	"groq_api_key":         "",
	"groq_base_url":        "https://api.groq.com/openai/v1",
	"groq_model":           "llama-3.1-8b-instant",
	"generator_timeout_ms": 15000,
	"generator_cache_size": 256,
	"generator_cache_ttl":  "10m",
}

// New returns a viper instance with defaults, env binding and the optional
// config file search path
func New() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigName("mindshift")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/mindshift")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file if present and resolves every key
func Load() (*Config, error) {
	v := New()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return FromViper(v), nil
}

// FromViper resolves a Config from an already populated viper instance
func FromViper(v *viper.Viper) *Config {
	return &Config{
		MongoURI:           v.GetString("mongo_uri"),
		MongoDB:            v.GetString("mongo_db"),
		RedisURI:           v.GetString("redis_uri"),
		Port:               v.GetString("port"),
		LogLevel:           v.GetString("log_level"),
		JWTSecret:          v.GetString("jwt_secret"),
		CORSAllowedOrigins: v.GetString("cors_allowed_origins"),
		CORSAllowedMethods: v.GetString("cors_allowed_methods"),
		CORSAllowedHeaders: v.GetString("cors_allowed_headers"),
		Scoring: ScoringConfig{
			Bank:           v.GetString("bank"),
			BankPath:       v.GetString("bank_path"),
			TraitsPath:     v.GetString("traits_path"),
			TieThreshold:   v.GetInt("tie_threshold"),
			TiePolicy:      v.GetString("tie_policy"),
			TraitTolerance: v.GetInt("trait_tolerance"),
		},
		Generator: generatorFromViper(v),
	}
}

// RedisAddr strips the redis:// scheme some deployments put in REDIS_URI
func (c *Config) RedisAddr() string {
	return strings.TrimPrefix(c.RedisURI, "redis://")
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
