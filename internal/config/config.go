// Package config provides configuration management for the workbench client.
package config

import (
	"time"

	"github.com/ethicic/workbench/internal/httpx"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	API      APIConfig      `mapstructure:"api" validate:"required"`
	PortQL   PortQLConfig   `mapstructure:"portql" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache" validate:"required"`
	Autosave AutosaveConfig `mapstructure:"autosave"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// APIConfig represents the workbench backend API configuration
type APIConfig struct {
	BaseURL        string  `mapstructure:"base_url" validate:"required,url"`
	WriteToken     string  `mapstructure:"write_token"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gte=0"`
	RetryMax       int     `mapstructure:"retry_max" validate:"gte=0"`
}

// PortQLConfig represents the external PortQL job API configuration
type PortQLConfig struct {
	BaseURL             string `mapstructure:"base_url" validate:"required,url"`
	APIKey              string `mapstructure:"api_key"`
	TimeoutSeconds      int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	PollIntervalSeconds int    `mapstructure:"poll_interval_seconds" validate:"required,gt=0"`
}

// CacheConfig represents query cache configuration
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	MaxEntries int `mapstructure:"max_entries" validate:"required,gt=0"`
}

// AutosaveConfig represents tick score autosave configuration
type AutosaveConfig struct {
	DelayMillis int `mapstructure:"delay_millis" validate:"gte=0"`
}

// MetricsConfig represents the health/metrics server configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    string `mapstructure:"port"`
}

// HTTPConfig builds the HTTP wrapper config for the workbench API.
func (a APIConfig) HTTPConfig() httpx.Config {
	cfg := httpx.DefaultConfig(a.BaseURL)
	cfg.WriteToken = a.WriteToken
	cfg.Timeout = time.Duration(a.TimeoutSeconds) * time.Second
	if a.RateLimit > 0 {
		cfg.RateLimit = a.RateLimit
	}
	cfg.RetryMax = a.RetryMax
	return cfg
}

// HTTPConfig builds the HTTP wrapper config for the PortQL API. The API key
// rides as the write token so it is attached to mutating calls only.
func (p PortQLConfig) HTTPConfig() httpx.Config {
	cfg := httpx.DefaultConfig(p.BaseURL)
	cfg.WriteToken = p.APIKey
	cfg.Timeout = time.Duration(p.TimeoutSeconds) * time.Second
	return cfg
}

// PollInterval returns the job poll cadence as a duration.
func (p PortQLConfig) PollInterval() time.Duration {
	return time.Duration(p.PollIntervalSeconds) * time.Second
}

// TTL returns the default cache lifetime as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Delay returns the autosave quiet period as a duration.
func (a AutosaveConfig) Delay() time.Duration {
	return time.Duration(a.DelayMillis) * time.Millisecond
}
