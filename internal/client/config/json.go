package config

import (
	"encoding/json"
	"flag"
	"os"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty fields
// leave the corresponding Config value untouched.
type JsonConfig struct {
	ServerAddr     string    `json:"server_addr"`
	RequestTimeout *Duration `json:"request_timeout"`
	StampTimeout   *Duration `json:"stamp_timeout"`
	OutputDir      string    `json:"output_dir"`
	DropDir        string    `json:"drop_dir"`
	DatabaseDSN    string    `json:"database_dsn"`
}

// jsonConfigPath extracts the config file path from the -c/-config flags,
// ignoring every other argument so the main flag parser stays undisturbed.
func jsonConfigPath() string {
	var path string

	args := filterArgs(os.Args[1:], "-c", "-config")

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return path
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config. No flag means no JSON is loaded. Read or unmarshal failures
// panic; config errors this early are unrecoverable.
func parseJson(cfg *Config) {
	path := jsonConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerAddr != "" {
		cfg.ServerAddr = jc.ServerAddr
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StampTimeout != nil {
		cfg.StampTimeout = jc.StampTimeout.Duration
	}
	if jc.OutputDir != "" {
		cfg.OutputDir = jc.OutputDir
	}
	if jc.DropDir != "" {
		cfg.DropDir = jc.DropDir
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
}
