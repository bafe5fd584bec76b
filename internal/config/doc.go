// Package config loads, normalizes, and validates eyeset configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// materializer and CLI need: where the archive lives, where the dataset tree
// is written, how records are labeled, and how the split is seeded.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
