// Package config loads, normalizes, and validates gifmaker configuration.
//
// It supplies defaults, reads TOML files from the usual search locations,
// expands user paths (including tilde shortcuts), and honours environment
// overrides for the log level and format. Every setting is optional: with no
// file present the tool behaves exactly as the defaults describe.
//
// Always obtain settings through this package so downstream code receives
// canonical policy names and clear validation errors.
package config
