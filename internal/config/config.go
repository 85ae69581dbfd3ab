package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendPostgres  = "postgres"
	BackendFirestore = "firestore"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	DBSource      string `mapstructure:"DB_SOURCE"`
	StoreBackend  string `mapstructure:"STORE_BACKEND"`

	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsPath string `mapstructure:"FIREBASE_CREDENTIALS_PATH"`
	AuthEnabled             bool   `mapstructure:"AUTH_ENABLED"`

	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int           `mapstructure:"REDIS_DB"`
	SearchCacheTTL time.Duration `mapstructure:"SEARCH_CACHE_TTL"`

	AmapKey           string  `mapstructure:"AMAP_KEY"`
	AmapBaseURL       string  `mapstructure:"AMAP_BASE_URL"`
	PlaceSearchRadius float64 `mapstructure:"PLACE_SEARCH_RADIUS"`
	IndexSearchLimit  int     `mapstructure:"INDEX_SEARCH_LIMIT"`
	AmbientLimit      int     `mapstructure:"AMBIENT_LIMIT"`

	DiaryDBPath        string        `mapstructure:"DIARY_DB_PATH"`
	StreamPollInterval time.Duration `mapstructure:"STREAM_POLL_INTERVAL"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

// LoadConfig reads configuration from app.env in path, then overrides it
// with environment variables. A .env file in path, if any, is loaded into
// the environment first.
func LoadConfig(path string) (config Config, err error) {
	_ = godotenv.Load(filepath.Join(path, ".env"))

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	err = config.Validate()
	return config, err
}

// AutomaticEnv only resolves keys viper already knows about, so every key
// needs a default to be overridable from the environment alone.
var defaults = map[string]interface{}{
	"SERVER_ADDRESS":            "0.0.0.0:8080",
	"DB_SOURCE":                 "",
	"STORE_BACKEND":             BackendPostgres,
	"FIREBASE_PROJECT_ID":       "",
	"FIREBASE_CREDENTIALS_PATH": "",
	"AUTH_ENABLED":              true,
	"REDIS_ADDR":                "",
	"REDIS_PASSWORD":            "",
	"REDIS_DB":                  0,
	"SEARCH_CACHE_TTL":          "10m",
	"AMAP_KEY":                  "",
	"AMAP_BASE_URL":             "https://restapi.amap.com",
	"PLACE_SEARCH_RADIUS":       200,
	"INDEX_SEARCH_LIMIT":        20,
	"AMBIENT_LIMIT":             1000,
	"DIARY_DB_PATH":             "./data/diary.db",
	"STREAM_POLL_INTERVAL":      "5s",
	"LOG_LEVEL":                 "info",
	"LOG_FORMAT":                "console",
}

// Validate checks values that would otherwise fail late at runtime.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendPostgres:
		if c.DBSource == "" {
			return errors.New("config: DB_SOURCE is required for the postgres backend")
		}
	case BackendFirestore:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.AmbientLimit <= 0 {
		return fmt.Errorf("config: AMBIENT_LIMIT must be positive, got %d", c.AmbientLimit)
	}
	if c.IndexSearchLimit <= 0 {
		return fmt.Errorf("config: INDEX_SEARCH_LIMIT must be positive, got %d", c.IndexSearchLimit)
	}
	if c.PlaceSearchRadius <= 0 {
		return fmt.Errorf("config: PLACE_SEARCH_RADIUS must be positive, got %v", c.PlaceSearchRadius)
	}
	return nil
}
