package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ProviderGemini, cfg.LLM.Provider)
	require.Equal(t, "16:9", cfg.Images.DefaultAspectRatio)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
llm:
  provider: openai
  textModel: gpt-test
destination:
  cacheTtl: 30m
`), 0o600))

	t.Chdir(dir)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("VALKEY_ENABLED", "true")
	t.Setenv("VALKEY_ADDR", "localhost:6379")
	t.Setenv("CHAT_SESSION_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	require.Equal(t, "gpt-test", cfg.LLM.TextModel)
	require.Equal(t, "secret", cfg.LLM.APIKey)
	require.Equal(t, 30*time.Minute, cfg.Destination.CacheTTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.True(t, cfg.Valkey.Enabled)
	require.Equal(t, time.Hour, cfg.Chat.SessionTTL)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LLM_IMAGE_MODEL=imagen-test\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("LLM_IMAGE_MODEL", "")
	require.NoError(t, os.Unsetenv("LLM_IMAGE_MODEL"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "imagen-test", cfg.LLM.ImageModel)
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "provider", mutate: func(c *Config) { c.LLM.Provider = "claude" }},
		{name: "temperature", mutate: func(c *Config) { c.LLM.Temperature = 3 }},
		{name: "aspect ratio", mutate: func(c *Config) { c.Images.DefaultAspectRatio = "2:1" }},
		{name: "valkey addr", mutate: func(c *Config) { c.Valkey.Enabled = true }},
		{name: "storage endpoint", mutate: func(c *Config) { c.Storage.Enabled = true }},
		{name: "sketch size", mutate: func(c *Config) { c.Sketches.MaxBytes = 0 }},
		{name: "rate limit", mutate: func(c *Config) { c.HTTP.RateLimit.Burst = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
