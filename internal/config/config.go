// Package config provides configuration loading and validation for the
// server and CLI. Values come from an optional YAML file, CAREER_*
// environment variables, and defaults, in increasing order of precedence
// for the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. CAREER_LLM_API_KEY.
const EnvPrefix = "CAREER"

// DefaultConfigName is the config file looked up in the working directory.
const DefaultConfigName = "career-compass"

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Matching MatchingConfig `mapstructure:"matching"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int     `mapstructure:"port"`
	RateLimit      float64 `mapstructure:"rate_limit"` // requests per second per client and endpoint
	RateBurst      int     `mapstructure:"rate_burst"`
	AllowedOrigin  string  `mapstructure:"allowed_origin"`
	MemorySessions bool    `mapstructure:"memory_sessions"` // keep sessions in process instead of Redis
}

// LLMConfig configures the generative recommendation provider.
type LLMConfig struct {
	Provider     string        `mapstructure:"provider"` // gemini, genai, or none
	APIKey       string        `mapstructure:"api_key"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	Concurrency  int           `mapstructure:"concurrency"`
	CallInterval time.Duration `mapstructure:"call_interval"`
	TopN         int           `mapstructure:"top_n"`
}

// RedisConfig configures the session store and labor cache.
type RedisConfig struct {
	Address    string        `mapstructure:"address"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

// DatabaseConfig configures PostgreSQL. An empty URL disables persistence.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// CatalogConfig selects the career catalog source. An empty path uses the
// embedded catalog unless the database is configured as the source.
type CatalogConfig struct {
	Path       string `mapstructure:"path"`
	FromDB     bool   `mapstructure:"from_database"`
	SeedOnBoot bool   `mapstructure:"seed_database"`
}

// MatchingConfig configures the matching engine.
type MatchingConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 5.0)
	v.SetDefault("server.rate_burst", 10)
	v.SetDefault("server.allowed_origin", "*")
	v.SetDefault("server.memory_sessions", false)

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.max_retries", 1)
	v.SetDefault("llm.concurrency", 2)
	v.SetDefault("llm.call_interval", 500*time.Millisecond)
	v.SetDefault("llm.top_n", 3)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.session_ttl", 7*24*time.Hour)
	v.SetDefault("redis.cache_ttl", 24*time.Hour)

	v.SetDefault("database.url", "")
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.from_database", false)
	v.SetDefault("catalog.seed_database", false)
	v.SetDefault("matching.default_limit", 5)

	v.SetDefault("logging.json", false)
	v.SetDefault("logging.debug", false)
}

// LoadEnvFile loads variables from a .env file into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration. When path is empty, career-compass.yaml in the
// working directory is used if present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 0 and 65535")
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("config error: 'server.rate_limit' and 'server.rate_burst' must be non-negative")
	}

	switch c.LLM.Provider {
	case "gemini", "genai", "none":
	default:
		return fmt.Errorf("config error: 'llm.provider' must be gemini, genai, or none, got %q", c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("config error: 'llm.timeout' must be positive")
	}
	if c.LLM.MaxRetries < 0 || c.LLM.MaxRetries > 1 {
		return fmt.Errorf("config error: 'llm.max_retries' must be 0 or 1")
	}
	if c.LLM.Concurrency < 1 || c.LLM.Concurrency > 3 {
		return fmt.Errorf("config error: 'llm.concurrency' must be between 1 and 3")
	}
	if c.LLM.CallInterval < 0 {
		return fmt.Errorf("config error: 'llm.call_interval' must be non-negative")
	}
	if c.LLM.TopN < 1 {
		return fmt.Errorf("config error: 'llm.top_n' must be at least 1")
	}

	if c.Redis.DB < 0 {
		return fmt.Errorf("config error: 'redis.db' must be non-negative")
	}
	if c.Redis.SessionTTL < 0 || c.Redis.CacheTTL < 0 {
		return fmt.Errorf("config error: redis TTLs must be non-negative")
	}

	if c.Catalog.Path != "" {
		if _, err := os.Stat(c.Catalog.Path); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.Catalog.Path)
		}
	}
	if (c.Catalog.FromDB || c.Catalog.SeedOnBoot) && c.Database.URL == "" {
		return fmt.Errorf("config error: 'catalog.from_database' and 'catalog.seed_database' require 'database.url'")
	}

	if c.Matching.DefaultLimit < 1 {
		return fmt.Errorf("config error: 'matching.default_limit' must be at least 1")
	}
	return nil
}

// LLMEnabled reports whether a generative provider should be constructed.
func (c *Config) LLMEnabled() bool {
	return c.LLM.Provider != "none" && c.LLM.APIKey != ""
}
