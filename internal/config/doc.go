// Package config loads, normalizes, and validates assetpress configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and validates every conversion parameter with
// a distinct error per rule so bad input is rejected before a run starts.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a canonical output format, and clamped numeric values.
package config
