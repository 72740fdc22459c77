// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/jonathan/agent-selector/internal/llm"
)

// Cache backends
const (
	CacheMemory   = "memory"
	CachePostgres = "postgres"
	CacheRedis    = "redis"
	CacheNone     = "none"
)

var validate = validator.New()

// Config holds runtime settings. Values come from defaults, then an optional
// JSON file, then environment variables, each layer overriding the last.
type Config struct {
	// LLM
	PriorityFile string   `json:"priority_file,omitempty" env:"LLM_PRIORITY_FILE"`
	Timeout      Duration `json:"timeout,omitempty" env:"LLM_TIMEOUT" validate:"gt=0"`
	MaxTokens    int      `json:"max_tokens,omitempty" env:"LLM_MAX_TOKENS" validate:"gt=0"`
	Temperature  float64  `json:"temperature,omitempty" env:"LLM_TEMPERATURE" validate:"gte=0,lte=2"`

	// Provider endpoint overrides (proxies, tests)
	GroqBaseURL   string `json:"groq_base_url,omitempty" env:"GROQ_BASE_URL" validate:"omitempty,url"`
	GoogleBaseURL string `json:"google_base_url,omitempty" env:"GOOGLE_BASE_URL" validate:"omitempty,url"`

	// Logging
	LogLevel      string `json:"log_level,omitempty" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat     string `json:"log_format,omitempty" env:"LOG_FORMAT" validate:"oneof=text json"`
	RequestLogDir string `json:"request_log_dir,omitempty" env:"REQUEST_LOG_DIR"`

	// Response cache
	CacheBackend string `json:"cache_backend,omitempty" env:"CACHE_BACKEND" validate:"oneof=memory postgres redis none"`
	DatabaseURL  string `json:"database_url,omitempty" env:"DATABASE_URL" validate:"required_if=CacheBackend postgres"`
	RedisURL     string `json:"redis_url,omitempty" env:"REDIS_URL" validate:"required_if=CacheBackend redis"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Timeout:       Duration(llm.DefaultTimeout),
		MaxTokens:     llm.DefaultMaxTokens,
		Temperature:   llm.DefaultTemperature,
		LogLevel:      "info",
		LogFormat:     "text",
		RequestLogDir: ".",
		CacheBackend:  CacheMemory,
	}
}

// Load builds the configuration from defaults, the optional JSON file at path
// and the process environment
func Load(path string) (*Config, error) {
	return load(path, env.Options{})
}

// LoadWithEnv is Load with an explicit environment instead of the process one
func LoadWithEnv(path string, environ map[string]string) (*Config, error) {
	return load(path, env.Options{Environment: environ})
}

func load(path string, opts env.Options) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays values from a JSON config file
func (c *Config) mergeFile(path string) error {
	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// Priority returns the fallback priority list: the file when configured,
// the built-in list otherwise
func (c *Config) Priority() (llm.PriorityList, error) {
	if c.PriorityFile == "" {
		return llm.DefaultPriority(), nil
	}
	return llm.LoadPriority(c.PriorityFile)
}

// Registry returns the provider invokers configured with these settings
func (c *Config) Registry() llm.Registry {
	return llm.DefaultRegistry(llm.RegistryConfig{
		Timeout:       time.Duration(c.Timeout),
		GroqBaseURL:   c.GroqBaseURL,
		GoogleBaseURL: c.GoogleBaseURL,
	})
}

// Logger builds the structured logger described by LogLevel and LogFormat
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Duration is a time.Duration read from strings such as "90s" or "2m"
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for env and JSON values
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
