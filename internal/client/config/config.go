// Package config holds runtime settings for the stampctl CLI.
//
// LoadConfig layers sources, later ones winning: defaults, a .env file plus
// environment variables, a JSON file (-c/-config), then command-line flags.
package config

import "time"

// Config holds runtime settings for the stampctl CLI.
//
// Fields:
//   - ServerAddr: base URL of the timestamp service, e.g. "https://host".
//   - RequestTimeout: overall timeout for the short JSON endpoints.
//   - StampTimeout: deadline for a stamp job, upload through download.
//   - OutputDir: where finished archives are written.
//   - DropDir: the directory scanned by the drop acquisition path.
//   - DatabaseDSN: sqlite file for the local job history and saved session.
type Config struct {
	ServerAddr     string
	RequestTimeout time.Duration
	StampTimeout   time.Duration
	OutputDir      string
	DropDir        string
	DatabaseDSN    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
	c.StampTimeout = 5 * time.Minute
	c.OutputDir = "."
	c.DropDir = "drop"
	c.DatabaseDSN = "stampctl.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
