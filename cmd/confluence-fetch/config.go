package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the site connection settings. Values come from the config
// file, overridden by CONFLUENCE_* environment variables, overridden by
// flags.
type Config struct {
	BaseURL  string `toml:"base_url"`
	Email    string `toml:"email"`
	APIToken string `toml:"api_token"`
}

// defaultConfigPath is ~/.config/confluence-fetch/config.toml.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "confluence-fetch", "config.toml")
}

// loadConfig reads the config file if present and applies environment
// overrides. A missing file is not an error; a malformed one is.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}

	explicit := path != ""
	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// Fall through to env/flags.
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if v := os.Getenv("CONFLUENCE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CONFLUENCE_EMAIL"); v != "" {
		cfg.Email = v
	}
	if v := os.Getenv("CONFLUENCE_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}

	return cfg, nil
}

// validate checks the settings needed to reach the API.
func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("no base URL configured (set base_url, CONFLUENCE_BASE_URL or --base-url)")
	}
	return nil
}
