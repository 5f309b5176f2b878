package config

import "time"

// Config holds runtime settings for the product CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the product service, without a trailing slash.
//   - RequestTimeout: limit for each HTTP request.
//   - SaveDir: directory where stored products are saved as JSON files.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	SaveDir        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 15 * time.Second
	c.SaveDir = "."
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
