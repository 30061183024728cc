// Package config provides configuration management for the workbench client.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterValidation("environment", validateEnvironment)
	v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	}
	return false
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// validateCrossField applies validations spanning multiple fields
func validateCrossField(cfg *Config) error {
	// A poll faster than once per second would hammer the job API.
	if cfg.PortQL.PollIntervalSeconds < 1 {
		return fmt.Errorf("portql.poll_interval_seconds must be at least 1, got %d", cfg.PortQL.PollIntervalSeconds)
	}
	if cfg.API.WriteToken == "" && cfg.App.Environment == "production" {
		return fmt.Errorf("api.write_token is required in production")
	}
	return nil
}

// formatValidationErrors renders field-level validation failures readably
func formatValidationErrors(errs validator.ValidationErrors) error {
	var parts []string
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(parts, "; "))
}
