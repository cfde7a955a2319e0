// Package config loads, normalizes, and validates datesift configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI needs so command code receives sanitized paths and clear validation
// errors. Flags layered on top of a loaded Config always win.
package config
