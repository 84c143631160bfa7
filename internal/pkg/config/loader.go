// Package config provides reusable configuration loading and validation
// helpers. Loaders implement a fail-open strategy: an invalid value falls
// back to the supplied default with a warning instead of failing startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ConfigLoadResult represents the result of loading a configuration value.
// Value holds the loaded value (the default when validation failed),
// Warnings carries one message per fallback applied, and FallbackApplied
// reports whether the default was used.
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString loads a string from an environment variable, returning the
// default when unset. No validation is performed.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback loads a string from an environment variable with
// validation. An unset variable silently uses the default; a set but
// invalid value falls back to the default with a warning.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	if err := validator(value); err != nil {
		return ConfigLoadResult{
			Value: defaultValue,
			Warnings: []string{
				fmt.Sprintf("%s=%q is invalid (%v), using default %q", envKey, value, err, defaultValue),
			},
			FallbackApplied: true,
		}
	}

	return ConfigLoadResult{Value: value}
}

// LoadEnvDuration loads a duration from an environment variable with
// validation and fallback. The value must parse with time.ParseDuration.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return ConfigLoadResult{
			Value: defaultValue,
			Warnings: []string{
				fmt.Sprintf("%s=%q is not a valid duration (%v), using default %v", envKey, raw, err, defaultValue),
			},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(d); err != nil {
			return ConfigLoadResult{
				Value: defaultValue,
				Warnings: []string{
					fmt.Sprintf("%s=%v is invalid (%v), using default %v", envKey, d, err, defaultValue),
				},
				FallbackApplied: true,
			}
		}
	}

	return ConfigLoadResult{Value: d}
}

// LoadEnvInt loads an integer from an environment variable with validation
// and fallback.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return ConfigLoadResult{
			Value: defaultValue,
			Warnings: []string{
				fmt.Sprintf("%s=%q is not a valid integer (%v), using default %d", envKey, raw, err, defaultValue),
			},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(v); err != nil {
			return ConfigLoadResult{
				Value: defaultValue,
				Warnings: []string{
					fmt.Sprintf("%s=%d is invalid (%v), using default %d", envKey, v, err, defaultValue),
				},
				FallbackApplied: true,
			}
		}
	}

	return ConfigLoadResult{Value: v}
}

// LoadEnvBool loads a boolean from an environment variable. Unparseable
// values fall back to the default with a warning.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return ConfigLoadResult{
			Value: defaultValue,
			Warnings: []string{
				fmt.Sprintf("%s=%q is not a valid boolean (%v), using default %t", envKey, raw, err, defaultValue),
			},
			FallbackApplied: true,
		}
	}

	return ConfigLoadResult{Value: v}
}
