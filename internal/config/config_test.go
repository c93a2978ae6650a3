package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nashra-news-api/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NASHRA_CONFIG", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("FEED_LOADING_WINDOW", "")
	t.Setenv("PREFERENCES_DEFAULT_THEME", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "mock", cfg.AI.Provider)
	assert.Equal(t, 800*time.Millisecond, cfg.Feed.LoadingWindow)
	assert.Equal(t, "light", cfg.Preferences.DefaultTheme)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NASHRA_CONFIG", "")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("AI_PROVIDER", "mock")
	t.Setenv("FEED_MOST_POPULAR_SIZE", "7")
	t.Setenv("MARKET_ENABLED", "false")
	t.Setenv("AI_MIN_INTERVAL", "not-a-duration")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 7, cfg.Feed.MostPopularSize)
	assert.False(t, cfg.Market.Enabled)
	assert.Equal(t, 500*time.Millisecond, cfg.AI.MinInterval, "invalid value keeps default")
}

func TestLoad_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nashra.yaml")
	doc := `
server:
  publicOrigin: https://nashra.example
feed:
  loadingWindow: 1s
preferences:
  defaultTheme: dark
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	t.Setenv("NASHRA_CONFIG", path)
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("AI_PROVIDER", "mock")
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://nashra.example", cfg.Server.PublicOrigin)
	assert.Equal(t, time.Second, cfg.Feed.LoadingWindow)
	assert.Equal(t, "dark", cfg.Preferences.DefaultTheme)
	assert.Equal(t, "9090", cfg.Server.Port, "keys absent from the file keep env values")
}

func TestLoad_MissingOverlay(t *testing.T) {
	t.Setenv("NASHRA_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			Storage:     config.StorageConfig{Driver: "memory"},
			AI:          config.AIConfig{Provider: "mock"},
			Feed:        config.FeedConfig{LoadingWindow: time.Second},
			Market:      config.MarketConfig{Enabled: true, RefreshInterval: time.Minute},
			Preferences: config.PreferencesConfig{DefaultTheme: "light"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *config.Config) {}},
		{name: "unknown driver", mutate: func(c *config.Config) { c.Storage.Driver = "mysql" }, wantErr: true},
		{name: "postgres without host", mutate: func(c *config.Config) {
			c.Storage.Driver = "postgres"
			c.Storage.Name = "nashra"
		}, wantErr: true},
		{name: "postgres complete", mutate: func(c *config.Config) {
			c.Storage.Driver = "postgres"
			c.Storage.Host = "db"
			c.Storage.Name = "nashra"
		}},
		{name: "sqlite without path", mutate: func(c *config.Config) { c.Storage.Driver = "sqlite" }, wantErr: true},
		{name: "gemini without key", mutate: func(c *config.Config) { c.AI.Provider = "gemini" }, wantErr: true},
		{name: "openai with key", mutate: func(c *config.Config) {
			c.AI.Provider = "openai"
			c.AI.APIKey = "k"
		}},
		{name: "unknown provider", mutate: func(c *config.Config) { c.AI.Provider = "llama" }, wantErr: true},
		{name: "bad theme", mutate: func(c *config.Config) { c.Preferences.DefaultTheme = "sepia" }, wantErr: true},
		{name: "negative loading window", mutate: func(c *config.Config) { c.Feed.LoadingWindow = -time.Second }, wantErr: true},
		{name: "market without interval", mutate: func(c *config.Config) { c.Market.RefreshInterval = 0 }, wantErr: true},
		{name: "disabled market ignores interval", mutate: func(c *config.Config) {
			c.Market.Enabled = false
			c.Market.RefreshInterval = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStorageConfig_GetDSN(t *testing.T) {
	c := config.StorageConfig{Host: "h", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=n sslmode=disable", c.GetDSN())
}
