package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/faqdex/internal/domain/search/mode"
	"github.com/kailas-cloud/faqdex/internal/domain/search/request"
	"github.com/kailas-cloud/faqdex/internal/domain/search/score"
)

// Document source kinds.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceRedis    = "redis"
)

// Document reload policies.
const (
	ReloadOnce       = "once"
	ReloadPerRequest = "per_request"
)

// Answer styles.
const (
	StyleFull    = "full"
	StyleSnippet = "snippet"
)

// Config holds the faqdex configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Documents DocumentsConfig `yaml:"documents"`
	Database  DatabaseConfig  `yaml:"database"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Answer    AnswerConfig    `yaml:"answer"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int             `yaml:"port"`
	ReadTimeoutSec  int             `yaml:"read_timeout_sec"`
	WriteTimeoutSec int             `yaml:"write_timeout_sec"`
	ShutdownSec     int             `yaml:"shutdown_timeout_sec"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig holds request rate limits. 0 disables a limit.
type RateLimitConfig struct {
	PerClientPerMinute int `yaml:"per_client_per_minute"`
	GlobalPerMinute    int `yaml:"global_per_minute"`
}

// DocumentsConfig selects where the FAQ collection comes from.
type DocumentsConfig struct {
	Source        string `yaml:"source"` // embedded, file, redis (default: embedded)
	Path          string `yaml:"path"`
	RedisKey      string `yaml:"redis_key"`
	Reload        string `yaml:"reload"` // once, per_request (default: once)
	LoadTimeoutMs int    `yaml:"load_timeout_ms"`
}

// DatabaseConfig holds Redis connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// RetrievalConfig holds scoring and ranking settings.
type RetrievalConfig struct {
	MatchMode        string `yaml:"match_mode"` // containment, membership (default: containment)
	TitleWeight      int    `yaml:"title_weight"`
	BodyWeight       int    `yaml:"body_weight"`
	TopK             int    `yaml:"top_k"`
	FilterZeroScores *bool  `yaml:"filter_zero_scores"` // default: true
}

// AnswerConfig holds answer assembly settings.
type AnswerConfig struct {
	Style                string   `yaml:"style"`          // full, snippet (default: full)
	SnippetLength        *int     `yaml:"snippet_length"` // runes; 0 = full content (default: 120)
	ModelLabel           string   `yaml:"model_label"`
	MaxSuggestions       int      `yaml:"max_suggestions"`
	Categories           []string `yaml:"categories"`
	NotFoundMessage      string   `yaml:"not_found_message"`
	EmptyMessage         string   `yaml:"empty_message"`
	DisambiguationPrompt string   `yaml:"disambiguation_prompt"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references, then applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Documents.Source == "" {
		c.Documents.Source = SourceEmbedded
	}
	if c.Documents.Reload == "" {
		c.Documents.Reload = ReloadOnce
	}
	if c.Documents.LoadTimeoutMs <= 0 {
		c.Documents.LoadTimeoutMs = 2000
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Retrieval.MatchMode == "" {
		c.Retrieval.MatchMode = string(mode.Default)
	}
	w := score.DefaultWeights()
	if c.Retrieval.TitleWeight == 0 {
		c.Retrieval.TitleWeight = w.Title
	}
	if c.Retrieval.BodyWeight == 0 {
		c.Retrieval.BodyWeight = w.Body
	}
	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = request.DefaultTopK
	}
	if c.Retrieval.FilterZeroScores == nil {
		enabled := true
		c.Retrieval.FilterZeroScores = &enabled
	}
	if c.Answer.Style == "" {
		c.Answer.Style = StyleFull
	}
	if c.Answer.SnippetLength == nil {
		n := 120
		c.Answer.SnippetLength = &n
	}
	if c.Answer.ModelLabel == "" {
		c.Answer.ModelLabel = "local-search"
	}
	if c.Answer.MaxSuggestions == 0 {
		c.Answer.MaxSuggestions = 6
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.HTTP.RateLimit.PerClientPerMinute < 0 || c.HTTP.RateLimit.GlobalPerMinute < 0 {
		return fmt.Errorf("http.rate_limit values must not be negative")
	}

	switch c.Documents.Source {
	case SourceEmbedded:
	case SourceFile:
		if c.Documents.Path == "" {
			return fmt.Errorf("documents.path is required for source %q", SourceFile)
		}
	case SourceRedis:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for source %q", SourceRedis)
		}
	default:
		return fmt.Errorf("documents.source must be %q, %q or %q, got %q",
			SourceEmbedded, SourceFile, SourceRedis, c.Documents.Source)
	}
	switch c.Documents.Reload {
	case ReloadOnce, ReloadPerRequest:
	default:
		return fmt.Errorf("documents.reload must be %q or %q, got %q",
			ReloadOnce, ReloadPerRequest, c.Documents.Reload)
	}

	if !mode.Mode(c.Retrieval.MatchMode).IsValid() {
		return fmt.Errorf("retrieval.match_mode must be %q or %q, got %q",
			mode.Containment, mode.Membership, c.Retrieval.MatchMode)
	}
	w := score.Weights{Title: c.Retrieval.TitleWeight, Body: c.Retrieval.BodyWeight}
	if err := w.Validate(); err != nil {
		return fmt.Errorf("retrieval weights: %w", err)
	}
	if c.Retrieval.TopK < 1 || c.Retrieval.TopK > request.MaxTopK {
		return fmt.Errorf("retrieval.top_k must be between 1 and %d, got %d", request.MaxTopK, c.Retrieval.TopK)
	}

	switch c.Answer.Style {
	case StyleFull, StyleSnippet:
	default:
		return fmt.Errorf("answer.style must be %q or %q, got %q", StyleFull, StyleSnippet, c.Answer.Style)
	}
	if c.Answer.SnippetLength != nil && *c.Answer.SnippetLength < 0 {
		return fmt.Errorf("answer.snippet_length must not be negative, got %d", *c.Answer.SnippetLength)
	}
	if c.Answer.MaxSuggestions < 0 {
		return fmt.Errorf("answer.max_suggestions must not be negative, got %d", c.Answer.MaxSuggestions)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
