// Package config resolves server settings from an optional YAML file layered
// under environment variables. Credentials may legitimately be absent here:
// the backend client reports a configuration error on the first tool call
// instead of the process refusing to start.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mealie-mcp/mealie-mcp-server/internal/mealie"
)

const (
	defaultHTTPAddr = ":3333"
	defaultTimeout  = 30 * time.Second
	defaultLogLevel = "info"
)

// Config holds all settings for the MCP server.
type Config struct {
	Mealie struct {
		BaseURL  string `yaml:"base_url"`
		APIToken string `yaml:"api_token"`
		Timeout  string `yaml:"timeout"`
	} `yaml:"mealie"`
	HTTPAddr string `yaml:"http_addr"`
	LogLevel string `yaml:"log_level"`

	timeout time.Duration
}

// Load reads MEALIE_MCP_CONFIG (or ./config.yaml if present), then applies
// environment overrides: MEALIE_URL, MEALIE_API_TOKEN, MEALIE_TIMEOUT_SECONDS,
// MCP_HTTP_ADDR, LOG_LEVEL.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr: defaultHTTPAddr,
		LogLevel: defaultLogLevel,
		timeout:  defaultTimeout,
	}

	path := os.Getenv("MEALIE_MCP_CONFIG")
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if cfg.Mealie.Timeout != "" {
			d, err := time.ParseDuration(cfg.Mealie.Timeout)
			if err != nil {
				return nil, fmt.Errorf("config %s: mealie.timeout: %w", path, err)
			}
			cfg.timeout = d
		}
		if cfg.HTTPAddr == "" {
			cfg.HTTPAddr = defaultHTTPAddr
		}
		if cfg.LogLevel == "" {
			cfg.LogLevel = defaultLogLevel
		}
	}

	if v := os.Getenv("MEALIE_URL"); v != "" {
		cfg.Mealie.BaseURL = v
	}
	if v := os.Getenv("MEALIE_API_TOKEN"); v != "" {
		cfg.Mealie.APIToken = v
	}
	if v := os.Getenv("MEALIE_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid MEALIE_TIMEOUT_SECONDS: %q", v)
		}
		cfg.timeout = time.Duration(secs) * time.Second
	}
	if v := os.Getenv("MCP_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// Credentials returns the backend credentials, possibly empty.
func (c *Config) Credentials() mealie.Credentials {
	return mealie.Credentials{BaseURL: c.Mealie.BaseURL, APIToken: c.Mealie.APIToken}
}

// Timeout is the per-call backend timeout.
func (c *Config) Timeout() time.Duration {
	if c.timeout <= 0 {
		return defaultTimeout
	}
	return c.timeout
}
