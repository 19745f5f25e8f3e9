package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 1, cfg.LLM.MaxRetries)
	assert.Equal(t, 3, cfg.LLM.TopN)
	assert.Equal(t, 5, cfg.Matching.DefaultLimit)
	assert.Equal(t, 24*time.Hour, cfg.Redis.CacheTTL)
	assert.False(t, cfg.LLMEnabled(), "no API key means no provider")
}

func TestLoad_YAMLFile(t *testing.T) {
	content := `
server:
  port: 9090
llm:
  provider: genai
  api_key: file-key
  timeout: 10s
  concurrency: 3
matching:
  default_limit: 8
logging:
  json: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "genai", cfg.LLM.Provider)
	assert.Equal(t, 10*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.LLM.Concurrency)
	assert.Equal(t, 8, cfg.Matching.DefaultLimit)
	assert.True(t, cfg.Logging.JSON)
	assert.True(t, cfg.LLMEnabled())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600))
	t.Setenv("CAREER_SERVER_PORT", "7070")
	t.Setenv("CAREER_LLM_PROVIDER", "none")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "none", cfg.LLM.Provider)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CAREER_LLM_MAX_RETRIES", "3")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_retries")
}

func validConfig() Config {
	return Config{
		Server:   ServerConfig{Port: 8080},
		LLM:      LLMConfig{Provider: "gemini", Timeout: time.Second, Concurrency: 1, TopN: 3},
		Matching: MatchingConfig{DefaultLimit: 5},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad provider", func(c *Config) { c.LLM.Provider = "openai" }, "llm.provider"},
		{"zero timeout", func(c *Config) { c.LLM.Timeout = 0 }, "llm.timeout"},
		{"too much concurrency", func(c *Config) { c.LLM.Concurrency = 4 }, "llm.concurrency"},
		{"zero top n", func(c *Config) { c.LLM.TopN = 0 }, "llm.top_n"},
		{"negative db", func(c *Config) { c.Redis.DB = -1 }, "redis.db"},
		{"missing catalog", func(c *Config) { c.Catalog.Path = "/nonexistent/careers.json" }, "catalog file not found"},
		{"db catalog without url", func(c *Config) { c.Catalog.FromDB = true }, "database.url"},
		{"zero limit", func(c *Config) { c.Matching.DefaultLimit = 0 }, "default_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CAREER_TEST_ONLY_VALUE=from-dotenv\n"), 0o600))
	t.Setenv("CAREER_TEST_ONLY_VALUE", "")
	require.NoError(t, os.Unsetenv("CAREER_TEST_ONLY_VALUE"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-dotenv", os.Getenv("CAREER_TEST_ONLY_VALUE"))
}
