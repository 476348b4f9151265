// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/petasbytes/agent-patterns/internal/provider"
)

// Config holds all application configuration.
//
// Precedence (lowest to highest): defaults, the YAML file named by
// AGT_CONFIG_FILE, environment variables.
type Config struct {
	Model         string `yaml:"model"`
	MaxTokens     int64  `yaml:"max_tokens"`
	LongMaxTokens int64  `yaml:"long_max_tokens"`

	ToolMaxIterations  int `yaml:"tool_max_iterations"`
	AgentMaxIterations int `yaml:"agent_max_iterations"`

	// TokenBudget enables pair-safe windowing of the history when > 0.
	TokenBudget int `yaml:"token_budget"`

	BaseURL        string        `yaml:"base_url"`
	MaxRetries     int           `yaml:"max_retries"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	KnowledgeFile string `yaml:"knowledge_file"`
	SandboxWrites bool   `yaml:"sandbox_writes"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Model:              string(provider.DefaultModel),
		MaxTokens:          provider.DefaultMaxTokens,
		LongMaxTokens:      provider.DefaultLongMaxTokens,
		ToolMaxIterations:  10,
		AgentMaxIterations: 10,
		MaxRetries:         2,
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := getEnv("AGT_CONFIG_FILE", ""); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Model = getEnv("AGT_MODEL", cfg.Model)
	cfg.MaxTokens = int64(getEnvInt("AGT_MAX_TOKENS", int(cfg.MaxTokens)))
	cfg.LongMaxTokens = int64(getEnvInt("AGT_LONG_MAX_TOKENS", int(cfg.LongMaxTokens)))
	cfg.ToolMaxIterations = getEnvInt("AGT_TOOL_MAX_ITERATIONS", cfg.ToolMaxIterations)
	cfg.AgentMaxIterations = getEnvInt("AGT_AGENT_MAX_ITERATIONS", cfg.AgentMaxIterations)
	cfg.TokenBudget = getEnvInt("AGT_TOKEN_BUDGET", cfg.TokenBudget)
	cfg.BaseURL = getEnv("ANTHROPIC_BASE_URL", cfg.BaseURL)
	cfg.MaxRetries = getEnvInt("AGT_MAX_RETRIES", cfg.MaxRetries)
	cfg.RequestTimeout = getEnvDuration("AGT_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.KnowledgeFile = getEnv("AGT_KNOWLEDGE_FILE", cfg.KnowledgeFile)
	cfg.SandboxWrites = getEnvBool("AGT_SANDBOX_WRITES", cfg.SandboxWrites)
	cfg.LogLevel = getEnv("AGT_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("AGT_LOG_FORMAT", cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Model) == "" {
		errs = append(errs, errors.New("AGT_MODEL cannot be empty"))
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, errors.New("AGT_MAX_TOKENS must be > 0"))
	}
	if c.LongMaxTokens <= 0 {
		errs = append(errs, errors.New("AGT_LONG_MAX_TOKENS must be > 0"))
	}
	if c.ToolMaxIterations <= 0 {
		errs = append(errs, errors.New("AGT_TOOL_MAX_ITERATIONS must be > 0"))
	}
	if c.AgentMaxIterations <= 0 {
		errs = append(errs, errors.New("AGT_AGENT_MAX_ITERATIONS must be > 0"))
	}
	if c.TokenBudget < 0 {
		errs = append(errs, errors.New("AGT_TOKEN_BUDGET must be >= 0"))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, errors.New("AGT_MAX_RETRIES must be >= 0"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("AGT_LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel into a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("AGT_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}

// ProviderSettings returns the subset of settings used to build the API client.
func (c *Config) ProviderSettings() provider.Settings {
	return provider.Settings{
		BaseURL:        c.BaseURL,
		MaxRetries:     c.MaxRetries,
		RequestTimeout: c.RequestTimeout,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
