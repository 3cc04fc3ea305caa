// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. For local runs, a
'.env' file next to the binary is loaded first via 'joho/godotenv'.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (store, importer, clients) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Verso CLI application.
type Config struct {

	// Runtime settings
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// DataPath is the sqlite file holding catalog snapshots.
	DataPath string `env:"VERSO_DATA_PATH" envDefault:"./verso.db"`

	// Genius metadata/lyrics collaborator
	GeniusAccessToken   string `env:"GENIUS_ACCESS_TOKEN"`
	GeniusBaseURL       string `env:"GENIUS_BASE_URL"        envDefault:"https://api.genius.com"`
	GeniusLyricsBaseURL string `env:"GENIUS_LYRICS_BASE_URL" envDefault:"https://genius.com"`

	// Background lyrics fetch pool
	ImportWorkers      int           `env:"IMPORT_WORKERS"       envDefault:"3"`
	LyricsFetchTimeout time.Duration `env:"LYRICS_FETCH_TIMEOUT" envDefault:"15s"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// A missing '.env' file is not an error; explicit environment variables
// always win over file-provided ones.
func Load() (*Config, error) {

	// Best-effort .env bootstrap for local development
	_ = godotenv.Load()

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the application is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
