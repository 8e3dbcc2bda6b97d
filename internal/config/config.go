// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// DatabaseURL is the Postgres connection string. Required and must be
	// non-empty: an empty value would only surface later at pool creation.
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins,
	// comma-separated.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173"`

	// MigrateOnStart applies pending migrations before the server accepts
	// traffic. Off by default; deployments that run migrations out of band
	// leave it unset.
	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"false"`

	// MaxTrips is the maximum number of trips one owner may hold.
	MaxTrips int `env:"MAX_TRIPS" envDefault:"10"`

	// MaxPeople is the maximum headcount per trip.
	MaxPeople int `env:"MAX_PEOPLE" envDefault:"30"`

	// MaxDays is the maximum trip duration in days.
	MaxDays int `env:"MAX_DAYS" envDefault:"14"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming any required variable that is not set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.MaxTrips < 1 || cfg.MaxPeople < 1 || cfg.MaxDays < 1 {
		return Config{}, fmt.Errorf("config.Load: MAX_TRIPS, MAX_PEOPLE and MAX_DAYS must be at least 1")
	}
	return cfg, nil
}
