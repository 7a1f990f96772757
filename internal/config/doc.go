// Package config loads editor settings from a TOML file with
// environment-variable overrides. Settings translate into buffer and
// executor options; the engine packages never read configuration
// themselves.
package config
