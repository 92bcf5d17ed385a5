// Package config loads the CLI configuration: defaults, then an
// optional YAML file, then environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
)

// DefaultPath is used when no --config flag is given.
const DefaultPath = "alchemist.yaml"

// Config is the file/env shape. Deployment mode is a deploy-time
// constant here too: it is read once at startup and never re-evaluated.
type Config struct {
	Mode           string `yaml:"mode"` // docker or cloud
	APIURL         string `yaml:"api_url"`
	BridgeURL      string `yaml:"bridge_url"`
	WatchURL       string `yaml:"watch_url"`
	APIKey         string `yaml:"api_key"`
	OrganizationID string `yaml:"organization_id"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func defaults() *Config {
	return &Config{
		Mode:      string(dataaccess.ModeDocker),
		APIURL:    "http://localhost:8080",
		BridgeURL: "http://localhost:8081",
	}
}

// Load reads path when it exists (a missing default path is not an
// error; a missing explicit path is the caller's problem to surface)
// and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && path == DefaultPath:
		// Defaults plus env only.
	default:
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setIfPresent := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setIfPresent("ALCHEMIST_MODE", &cfg.Mode)
	setIfPresent("ALCHEMIST_API_URL", &cfg.APIURL)
	setIfPresent("ALCHEMIST_BRIDGE_URL", &cfg.BridgeURL)
	setIfPresent("ALCHEMIST_WATCH_URL", &cfg.WatchURL)
	setIfPresent("ALCHEMIST_API_KEY", &cfg.APIKey)
	setIfPresent("ALCHEMIST_ORG_ID", &cfg.OrganizationID)
}

// DataAccess maps the file shape onto the adapter config.
func (c *Config) DataAccess() dataaccess.Config {
	return dataaccess.Config{
		Mode:          dataaccess.Mode(c.Mode),
		APIBaseURL:    c.APIURL,
		BridgeBaseURL: c.BridgeURL,
		WatchURL:      c.WatchURL,
		APIKey:        c.APIKey,
		HTTPTimeout:   time.Duration(c.TimeoutSeconds) * time.Second,
	}
}
