// Package config loads settings for the product CLI: defaults, then an
// optional JSON file (-c / -config), then command-line flags.
package config
