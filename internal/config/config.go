// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"terrafin/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Azure contains Azure-specific configuration
	Azure AzureConfig `json:"azure"`

	// Slack contains notification configuration
	Slack SlackConfig `json:"slack,omitempty"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// CacheTTLSeconds is how long to cache retail prices
	CacheTTLSeconds int `json:"cache_ttl_seconds"`

	// Endpoint overrides the retail prices API endpoint
	Endpoint string `json:"endpoint,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default report format (text, markdown, json)
	DefaultFormat string `json:"default_format"`
}

// AzureConfig contains Azure-specific settings
type AzureConfig struct {
	// DefaultRegion is used when a resource has no location attribute
	DefaultRegion string `json:"default_region"`
}

// SlackConfig contains Slack notification settings
type SlackConfig struct {
	// WebhookURL is the incoming webhook URL
	WebhookURL string `json:"webhook_url,omitempty"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			CacheTTLSeconds: 3600, // 1 hour
		},
		Output: OutputConfig{
			DefaultFormat: "text",
		},
		Azure: AzureConfig{
			DefaultRegion: "eastus",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, falling back to defaults when the
// file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
