// Package config loads the application configuration from environment
// variables, command-line flags, and an optional JSON file, merges the
// sources, applies documented defaults, and validates the result.
//
// Environment variables take precedence over flags, which take precedence
// over the JSON file (mergo keeps the first non-zero value).
package config
