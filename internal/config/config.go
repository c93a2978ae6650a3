package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// configPathEnv names an optional YAML file overlaid on top of the defaults
const configPathEnv = "NASHRA_CONFIG"

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage"`

	// Generative text provider configuration
	AI AIConfig `yaml:"ai"`

	// Feed and comments configuration
	Feed FeedConfig `yaml:"feed"`

	// Market ticker configuration
	Market MarketConfig `yaml:"market"`

	// Preference defaults
	Preferences PreferencesConfig `yaml:"preferences"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `yaml:"port"`
	PublicOrigin    string        `yaml:"publicOrigin"` // used to build canonical share links
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	SessionTTL      time.Duration `yaml:"sessionTtl"`
}

// StorageConfig selects and configures the key-value backend
type StorageConfig struct {
	Driver         string        `yaml:"driver"` // memory, postgres or sqlite
	Host           string        `yaml:"host"`
	Port           string        `yaml:"port"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	Name           string        `yaml:"name"`
	SSLMode        string        `yaml:"sslMode"`
	SQLitePath     string        `yaml:"sqlitePath"`
	MaxOpenConns   int           `yaml:"maxOpenConns"`
	MaxIdleConns   int           `yaml:"maxIdleConns"`
	MaxLifetime    time.Duration `yaml:"maxLifetime"`
	MigrationsPath string        `yaml:"migrationsPath"`
}

// AIConfig configures the summary/briefing provider
type AIConfig struct {
	Provider       string        `yaml:"provider"` // gemini, openai or mock
	APIKey         string        `yaml:"apiKey"`
	BaseURL        string        `yaml:"baseUrl"`
	SummaryModel   string        `yaml:"summaryModel"`
	BriefingModel  string        `yaml:"briefingModel"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	MinInterval    time.Duration `yaml:"minInterval"` // pacing between upstream calls
}

// FeedConfig holds view and feed settings
type FeedConfig struct {
	SeedFile        string        `yaml:"seedFile"` // empty uses the embedded seed
	LoadingWindow   time.Duration `yaml:"loadingWindow"`
	MostPopularSize int           `yaml:"mostPopularSize"`
	FeaturedStories int           `yaml:"featuredStories"`
}

// MarketConfig holds market ticker settings
type MarketConfig struct {
	Enabled         bool          `yaml:"enabled"`
	RefreshInterval time.Duration `yaml:"refreshInterval"`
}

// PreferencesConfig holds preference defaults
type PreferencesConfig struct {
	DefaultTheme string `yaml:"defaultTheme"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "pretty"
}

// Load reads configuration from environment variables, then overlays the
// YAML file named by NASHRA_CONFIG when present
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			PublicOrigin:    getEnv("PUBLIC_ORIGIN", "http://localhost:8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			SessionTTL:      getDurationEnv("SESSION_TTL", 24*time.Hour),
		},
		Storage: StorageConfig{
			Driver:         getEnv("STORAGE_DRIVER", "memory"),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			Name:           getEnv("DB_NAME", "nashra"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			SQLitePath:     getEnv("SQLITE_PATH", "./data/nashra.db"),
			MaxOpenConns:   getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:   getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:    getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		AI: AIConfig{
			Provider:       getEnv("AI_PROVIDER", "mock"),
			APIKey:         getEnv("API_KEY", ""),
			BaseURL:        getEnv("AI_BASE_URL", ""),
			SummaryModel:   getEnv("AI_SUMMARY_MODEL", "gemini-3-flash-preview"),
			BriefingModel:  getEnv("AI_BRIEFING_MODEL", "gemini-3-pro-preview"),
			RequestTimeout: getDurationEnv("AI_REQUEST_TIMEOUT", 45*time.Second),
			MinInterval:    getDurationEnv("AI_MIN_INTERVAL", 500*time.Millisecond),
		},
		Feed: FeedConfig{
			SeedFile:        getEnv("SEED_FILE", ""),
			LoadingWindow:   getDurationEnv("FEED_LOADING_WINDOW", 800*time.Millisecond),
			MostPopularSize: getIntEnv("FEED_MOST_POPULAR_SIZE", 5),
			FeaturedStories: getIntEnv("FEED_FEATURED_STORIES", 3),
		},
		Market: MarketConfig{
			Enabled:         getBoolEnv("MARKET_ENABLED", true),
			RefreshInterval: getDurationEnv("MARKET_REFRESH_INTERVAL", 2*time.Minute),
		},
		Preferences: PreferencesConfig{
			DefaultTheme: getEnv("PREFERENCES_DEFAULT_THEME", "light"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if path := os.Getenv(configPathEnv); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// overlayFile decodes a YAML file onto cfg; keys absent from the file keep
// their current values
func (c *Config) overlayFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if c.Storage.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Storage.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of: memory, postgres, sqlite")
	}

	switch c.AI.Provider {
	case "mock":
	case "gemini", "openai":
		if c.AI.APIKey == "" {
			return fmt.Errorf("API_KEY is required for provider %s", c.AI.Provider)
		}
	default:
		return fmt.Errorf("AI_PROVIDER must be one of: gemini, openai, mock")
	}

	if c.Preferences.DefaultTheme != "light" && c.Preferences.DefaultTheme != "dark" {
		return fmt.Errorf("PREFERENCES_DEFAULT_THEME must be light or dark")
	}
	if c.Feed.LoadingWindow < 0 {
		return fmt.Errorf("FEED_LOADING_WINDOW must not be negative")
	}
	if c.Market.Enabled && c.Market.RefreshInterval <= 0 {
		return fmt.Errorf("MARKET_REFRESH_INTERVAL must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *StorageConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
