// Package config loads, normalizes, and validates fwarchive configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// FWARCHIVE_NTFY_TOPIC. The Config type centralizes every knob the CLI needs:
// data and log directories, portal crawl settings, report output, and
// notification credentials.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
