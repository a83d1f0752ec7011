// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads server configuration from an optional file and
// the environment. Precedence, lowest to highest: built-in defaults,
// the config file, environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	// Token is a personal access token. Mutually exclusive with the
	// App fields.
	Token string `yaml:"token" env:"GITHUB_TOKEN"`

	// AppID, PrivateKeyPath, and InstallationID select GitHub App
	// authentication.
	AppID          int64  `yaml:"app_id" env:"GITHUB_MCP_APP_ID"`
	PrivateKeyPath string `yaml:"private_key_path" env:"GITHUB_MCP_PRIVATE_KEY_PATH"`
	InstallationID int64  `yaml:"installation_id" env:"GITHUB_MCP_INSTALLATION_ID"`

	// BaseURL points the client at a GitHub Enterprise instance.
	BaseURL string `yaml:"base_url" env:"GITHUB_MCP_BASE_URL"`

	// Listen is the HTTP transport's bind address.
	Listen string `yaml:"listen" env:"GITHUB_MCP_LISTEN"`

	// ReadOnly hides and rejects tools that mutate repository state.
	ReadOnly bool `yaml:"read_only" env:"GITHUB_MCP_READ_ONLY"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `yaml:"log_level" env:"GITHUB_MCP_LOG_LEVEL"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format" env:"GITHUB_MCP_LOG_FORMAT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:   "https://api.github.com",
		Listen:    "127.0.0.1:8090",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load builds the configuration from defaults, an optional file, and
// the environment. An empty path skips the file layer.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		if err := loadFile(path, &config); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// loadFile merges a YAML or JSONC file into config, chosen by
// extension. JSONC files may carry comments and trailing commas.
func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config file %s: unsupported extension (want .yaml, .yml, .json, or .jsonc)", path)
	}
	return nil
}

// Validate checks invariants that span fields.
func (c Config) Validate() error {
	appConfigured := c.AppID != 0 || c.PrivateKeyPath != "" || c.InstallationID != 0

	if c.Token != "" && appConfigured {
		return fmt.Errorf("config: token and GitHub App credentials are mutually exclusive")
	}
	if appConfigured && (c.AppID == 0 || c.PrivateKeyPath == "" || c.InstallationID == 0) {
		return fmt.Errorf("config: GitHub App auth requires app_id, private_key_path, and installation_id together")
	}
	if c.Token == "" && !appConfigured {
		return fmt.Errorf("config: no credentials; set GITHUB_TOKEN or configure GitHub App auth")
	}

	if !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("config: base_url must use HTTPS (got %q)", c.BaseURL)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log_level must be debug, info, warn, or error (got %q)", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: log_format must be text or json (got %q)", c.LogFormat)
	}
	return nil
}

// PrivateKey reads the App private key from disk.
func (c Config) PrivateKey() ([]byte, error) {
	key, err := os.ReadFile(c.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}
	return key, nil
}
