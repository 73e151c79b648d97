// Package config loads and validates service configuration from layered
// JSON files plus LISDF_* environment overrides. It also resolves the
// deployment schema: the built-in vocabulary, optionally extended by a
// declarations file.
//
// Precedence, lowest to highest: built-in defaults, file layers in the
// order added, environment variables.
package config
