// Package config holds the application configuration, loaded from
// environment variables via github.com/caarlos0/env.
package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct. See the individual
// domain config files for available environment variables:
//   - database.go: Postgres configuration (DB_*)
//   - http.go: HTTP server configuration (HTTP_*)
type AppConfig struct {
	// IsDev controls development mode behavior (template reloading, etc.).
	// Set DEV=true for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Postgres holds database configuration.
	Postgres DBConfig `envPrefix:"DB_"`

	// HTTP holds server configuration.
	HTTP HTTPConfig `envPrefix:"HTTP_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks APP_ENV as a fallback for the DEV flag.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		appEnv := strings.ToLower(os.Getenv("APP_ENV"))
		c.IsDev = appEnv == "development" || appEnv == "dev"
	}
}
