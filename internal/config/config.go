package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the hrsearch service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	Postgres PostgresConfig `yaml:"postgres"`
	AI       AIConfig       `yaml:"ai"`
	Search   SearchConfig   `yaml:"search"`
	Events   EventsConfig   `yaml:"events"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Logging  LoggingConfig  `yaml:"logging"`
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
	Port               int      `yaml:"port"`
	ReadTimeoutSec     int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec    int      `yaml:"write_timeout_sec"`
	ShutdownSec        int      `yaml:"shutdown_timeout_sec"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"` // per client IP, 0 = disabled
	CORSOrigins        []string `yaml:"cors_origins"`
}

// DatabaseConfig holds Redis/Valkey connection settings for the vector and cache stores.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	WriteTimeoutMs   int      `yaml:"write_timeout_ms"` // 0 keeps the client default
}

// PostgresConfig holds the employee store connection settings.
type PostgresConfig struct {
	DSN              string `yaml:"dsn"`
	MaxConns         int32  `yaml:"max_conns"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
	Migrate          bool   `yaml:"migrate"` // apply the bundled schema on startup
}

// AIConfig groups the two external AI services.
type AIConfig struct {
	Completion CompletionConfig `yaml:"completion"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
}

// CompletionConfig holds query-interpretation provider settings.
type CompletionConfig struct {
	Provider       string  `yaml:"provider"` // openai, gemini (default: openai)
	BaseURL        string  `yaml:"base_url"`
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float32 `yaml:"temperature"`
	TimeoutSec     int     `yaml:"timeout_sec"`
	RequestsPerSec float64 `yaml:"requests_per_sec"` // 0 = unlimited
}

// BudgetConfig holds token budget settings.
type BudgetConfig struct {
	DailyTokenLimit   int64  `yaml:"daily_token_limit"`   // 0 = unlimited
	MonthlyTokenLimit int64  `yaml:"monthly_token_limit"` // 0 = unlimited
	Action            string `yaml:"action"`              // "reject" | "warn" (default)
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider         string       `yaml:"provider"` // label for metrics and budget keys
	BaseURL          string       `yaml:"base_url"`
	APIKey           string       `yaml:"api_key"`
	Model            string       `yaml:"model"`
	Dimensions       int          `yaml:"dimensions"` // 0 = provider default
	TimeoutSec       int          `yaml:"timeout_sec"`
	RequestsPerSec   float64      `yaml:"requests_per_sec"`
	MaxInputTokens   int          `yaml:"max_input_tokens"`
	QueryInstruction string       `yaml:"query_instruction"`
	Budget           BudgetConfig `yaml:"budget"`
}

// WeightsConfig holds composite score weights.
type WeightsConfig struct {
	Semantic   float64 `yaml:"semantic"`
	Grade      float64 `yaml:"grade"`
	Overlap    float64 `yaml:"overlap"`
	Reputation float64 `yaml:"reputation"`
}

// SearchConfig holds ranking settings.
type SearchConfig struct {
	Weights          WeightsConfig `yaml:"weights"`
	ResultLimit      int           `yaml:"result_limit"`
	QueryCacheSize   int           `yaml:"query_cache_size"`
	QueryCacheTTLSec int           `yaml:"query_cache_ttl_sec"`
	EmbedCacheTTLSec int           `yaml:"embed_cache_ttl_sec"`
	MissConcurrency  int           `yaml:"miss_concurrency"`
}

// EventsConfig holds profile mutation event consumer settings.
type EventsConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	OTLPEndpoint  string  `yaml:"otlp_endpoint"` // empty = tracing disabled
	ServiceName   string  `yaml:"service_name"`
	SamplingRatio float64 `yaml:"sampling_ratio"`
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

// Parse expands env variables in raw YAML, applies defaults and validates.
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
		c.HTTP.WriteTimeoutSec = 60 // a cold search embeds missing profiles
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "valkey"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Postgres.MaxConns <= 0 {
		c.Postgres.MaxConns = 10
	}
	if c.Postgres.ReadinessTimeout <= 0 {
		c.Postgres.ReadinessTimeout = 30
	}
	c.applyAIDefaults()
	c.applySearchDefaults()
	if c.Events.GroupID == "" {
		c.Events.GroupID = "hrsearch-profile-vectors"
	}
	if c.Events.Topic == "" {
		c.Events.Topic = "employee.profile.changed"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "hrsearch"
	}
	if c.Tracing.SamplingRatio <= 0 {
		c.Tracing.SamplingRatio = 1.0
	}
}

func (c *Config) applyAIDefaults() {
	comp := &c.AI.Completion
	if comp.Provider == "" {
		comp.Provider = "openai"
	}
	if comp.Model == "" {
		comp.Model = "Qwen2.5-72B-Instruct-AWQ"
	}
	if comp.MaxTokens <= 0 {
		comp.MaxTokens = 500
	}
	if comp.Temperature <= 0 {
		comp.Temperature = 0.3
	}
	if comp.TimeoutSec <= 0 {
		comp.TimeoutSec = 30
	}

	emb := &c.AI.Embedding
	if emb.Provider == "" {
		emb.Provider = "scibox"
	}
	if emb.Model == "" {
		emb.Model = "bge-m3"
	}
	if emb.TimeoutSec <= 0 {
		emb.TimeoutSec = 30
	}
	if emb.MaxInputTokens <= 0 {
		emb.MaxInputTokens = 8192
	}
}

func (c *Config) applySearchDefaults() {
	w := &c.Search.Weights
	if *w == (WeightsConfig{}) {
		*w = WeightsConfig{Semantic: 0.60, Grade: 0.20, Overlap: 0.15, Reputation: 0.05}
	}
	if c.Search.ResultLimit <= 0 {
		c.Search.ResultLimit = 20
	}
	if c.Search.QueryCacheSize <= 0 {
		c.Search.QueryCacheSize = 1024
	}
	if c.Search.QueryCacheTTLSec <= 0 {
		c.Search.QueryCacheTTLSec = 3600
	}
	if c.Search.EmbedCacheTTLSec <= 0 {
		c.Search.EmbedCacheTTLSec = 7 * 24 * 3600
	}
	if c.Search.MissConcurrency <= 0 {
		c.Search.MissConcurrency = 4
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "valkey", "redis":
	default:
		return fmt.Errorf("database.driver must be \"valkey\" or \"redis\", got %q", c.Database.Driver)
	}
	if len(c.Database.Addrs) == 0 {
		return errors.New("database.addrs is required")
	}
	if c.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	switch c.AI.Completion.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("ai.completion.provider must be \"openai\" or \"gemini\", got %q", c.AI.Completion.Provider)
	}
	switch c.AI.Embedding.Budget.Action {
	case "", "warn", "reject":
	default:
		return fmt.Errorf(
			"ai.embedding.budget.action must be \"warn\" or \"reject\", got %q",
			c.AI.Embedding.Budget.Action,
		)
	}
	w := c.Search.Weights
	if w.Semantic < 0 || w.Grade < 0 || w.Overlap < 0 || w.Reputation < 0 {
		return errors.New("search.weights must be non-negative")
	}
	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return errors.New("events.brokers is required when events are enabled")
	}
	if c.Tracing.SamplingRatio > 1 {
		return fmt.Errorf("tracing.sampling_ratio must be in (0,1], got %v", c.Tracing.SamplingRatio)
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
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
