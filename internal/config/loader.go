// Package config provides configuration management for the workbench client.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "WORKBENCH"

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields, so a minimal config file (or none at all, when environment
// variables carry the required URLs) still produces a usable client.
func LoadWithDefaults(configPath string) (*Config, error) {
	v := newViper()
	setDefaults(v)

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err == nil {
			expanded := os.ExpandEnv(string(data))
			if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "workbench")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("api.base_url", "https://workbenchapi.ethicic.com")
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("api.rate_limit", 10.0)
	v.SetDefault("api.retry_max", 0)

	v.SetDefault("portql.base_url", "https://portql.ec1c.com")
	v.SetDefault("portql.timeout_seconds", 30)
	v.SetDefault("portql.poll_interval_seconds", 10)

	v.SetDefault("cache.ttl_seconds", 30)
	v.SetDefault("cache.max_entries", 1024)

	v.SetDefault("autosave.delay_millis", 800)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", "9090")
}
