// Package config provides configuration management for the workbench client.
package config

import (
	"os"
	"testing"
	"time"
)

const (
	validConfigPath       = "testdata/valid_config.yaml"
	expansionConfigPath   = "testdata/expansion_config.yaml"
	nonexistentConfigPath = "testdata/nonexistent_config.yaml"
	expectedNoErrorMsg    = "expected no error, got %v"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	if cfg.App.Name != "workbench" {
		t.Errorf("expected app name 'workbench', got '%s'", cfg.App.Name)
	}

	if cfg.App.Environment != "development" {
		t.Errorf("expected environment 'development', got '%s'", cfg.App.Environment)
	}

	if cfg.API.BaseURL != "https://workbenchapi.ethicic.com" {
		t.Errorf("unexpected api base url '%s'", cfg.API.BaseURL)
	}

	if cfg.PortQL.PollIntervalSeconds != 10 {
		t.Errorf("expected poll interval 10, got %d", cfg.PortQL.PollIntervalSeconds)
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadWithDefaultsNoFile tests that defaults alone produce a valid config
func TestLoadWithDefaultsNoFile(t *testing.T) {
	cfg, err := LoadWithDefaults("")
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.API.TimeoutSeconds != 30 {
		t.Errorf("expected default timeout 30, got %d", cfg.API.TimeoutSeconds)
	}
	if cfg.Cache.MaxEntries != 1024 {
		t.Errorf("expected default max entries 1024, got %d", cfg.Cache.MaxEntries)
	}
	if cfg.Autosave.DelayMillis != 800 {
		t.Errorf("expected default autosave delay 800, got %d", cfg.Autosave.DelayMillis)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults must validate, got %v", err)
	}
}

// TestLoadConfigEnvExpansion tests ${VAR} expansion in the config file
func TestLoadConfigEnvExpansion(t *testing.T) {
	os.Setenv("TEST_WRITE_TOKEN", "expanded_secret_value")
	defer os.Unsetenv("TEST_WRITE_TOKEN")

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.API.WriteToken != "expanded_secret_value" {
		t.Errorf("expected expanded write token, got '%s'", cfg.API.WriteToken)
	}
}

// TestValidateInvalidEnvironment tests validation of invalid environment
func TestValidateInvalidEnvironment(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.App.Environment = "invalid"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid environment")
	}
}

// TestValidateInvalidLogLevel tests validation of invalid log level
func TestValidateInvalidLogLevel(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.App.LogLevel = "verbose"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid log level")
	}
}

// TestValidatePollIntervalFloor tests the cross-field poll interval check
func TestValidatePollIntervalFloor(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.PortQL.PollIntervalSeconds = 0
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for sub-second poll interval")
	}
}

// TestValidateProductionRequiresWriteToken tests the production token check
func TestValidateProductionRequiresWriteToken(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.App.Environment = "production"
	cfg.API.WriteToken = ""
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for missing write token in production")
	}

	cfg.API.WriteToken = "present"
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

// TestDurationHelpers tests the duration conversion helpers
func TestDurationHelpers(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if got := cfg.PortQL.PollInterval(); got != 10*time.Second {
		t.Errorf("expected poll interval 10s, got %v", got)
	}
	if got := cfg.Cache.TTL(); got != 30*time.Second {
		t.Errorf("expected cache ttl 30s, got %v", got)
	}
	if got := cfg.Autosave.Delay(); got != 800*time.Millisecond {
		t.Errorf("expected autosave delay 800ms, got %v", got)
	}
}

// TestHTTPConfigMapping tests the mapping onto the HTTP wrapper config
func TestHTTPConfigMapping(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	apiHTTP := cfg.API.HTTPConfig()
	if apiHTTP.BaseURL != cfg.API.BaseURL {
		t.Errorf("expected base url '%s', got '%s'", cfg.API.BaseURL, apiHTTP.BaseURL)
	}
	if apiHTTP.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", apiHTTP.Timeout)
	}

	pqHTTP := cfg.PortQL.HTTPConfig()
	if pqHTTP.WriteToken != cfg.PortQL.APIKey {
		t.Error("expected portql api key to ride as the write token")
	}
}
