package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with STAMPCTL_* environment variables. A .env
// file in the working directory is loaded first when present; real
// environment variables win over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("STAMPCTL_SERVER_ADDR"); v != "" {
		cfg.ServerAddr = v
	}
	if v := os.Getenv("STAMPCTL_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("STAMPCTL_STAMP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.StampTimeout = d
		}
	}
	if v := os.Getenv("STAMPCTL_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("STAMPCTL_DROP_DIR"); v != "" {
		cfg.DropDir = v
	}
	if v := os.Getenv("STAMPCTL_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
}
