// Package config holds small helpers for reading the process environment.
package config

import (
	"os"
	"strings"
)

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// GetEnvTrimmed returns the whitespace-trimmed value of key, or "" if unset.
func GetEnvTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
