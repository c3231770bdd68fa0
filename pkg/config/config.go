package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration, loaded once at startup
// from the environment (plus an optional .env file).
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Providers     ProvidersConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port               string
	RateLimitPerSecond int
	RateLimitBurst     int
	// MapLoadTimeout is the fixed overall guard on map readiness. It is
	// unrelated to the activation sequence, which has no timeout.
	MapLoadTimeout time.Duration
}

type DatabaseConfig struct {
	// Enabled switches the location source from the embedded dataset to
	// Postgres.
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type ProvidersConfig struct {
	PlacesBaseURL      string
	PlacesAPIKey       string
	VenuesBaseURL      string
	VenuesClientID     string
	VenuesClientSecret string
}

type ObservabilityConfig struct {
	MetricsEnabled bool
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("SERVER_PORT", "8080"),
			RateLimitPerSecond: getEnvInt("RATE_LIMIT_PER_SECOND", 0),
			RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 0),
			MapLoadTimeout:     getEnvDuration("MAP_LOAD_TIMEOUT", 6*time.Second),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvBool("DATABASE_ENABLED", false),
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "postgres"),
			Password: getEnv("DATABASE_PASSWORD", ""),
			Name:     getEnv("DATABASE_NAME", "restrooms"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
		},
		Providers: ProvidersConfig{
			PlacesBaseURL:      getEnv("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
			PlacesAPIKey:       getEnv("PLACES_API_KEY", ""),
			VenuesBaseURL:      getEnv("VENUES_BASE_URL", "https://api.foursquare.com/v2"),
			VenuesClientID:     getEnv("VENUES_CLIENT_ID", ""),
			VenuesClientSecret: getEnv("VENUES_CLIENT_SECRET", ""),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
