// Package config holds the environment configuration for the backend.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// APIURL is the URL the API is reachable at. It is used to construct
	// the links in API responses.
	APIURL string `env:"API_URL" envDefault:"http://localhost:8080"`

	// Port the HTTP server listens on.
	Port uint `env:"PORT" envDefault:"8080"`

	// DBPath is the path of the SQLite database file. Parent directories
	// are created on startup.
	DBPath string `env:"DB_PATH" envDefault:"data/budgetbook.db"`

	// GinMode sets the gin framework mode. Defaults to release for
	// security reasons.
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	// LogFormat switches between human readable and JSON logs. When
	// unset, it defaults to human readable for development and JSON for
	// release.
	LogFormat string `env:"LOG_FORMAT"`

	// CORSAllowOrigins is a space separated list of origins that are
	// allowed to use the API. CORS headers are only sent when it is set.
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:" "`

	// EnablePprof mounts the pprof profiling endpoints when true.
	EnablePprof bool `env:"ENABLE_PPROF" envDefault:"false"`
}

// Load parses the configuration from the environment.
//
// A .env file in the working directory is loaded into the environment first
// when present.
func Load() (Config, error) {
	// The .env file is optional
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse configuration from environment: %w", err)
	}

	return cfg, nil
}
