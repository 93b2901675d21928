package config

import (
	"flag"
	"os"
	"strings"
	"time"
)

// filterArgs keeps only the allowed flags (and their values) from args, so
// each parser sees just the flags it owns. Both "-f value" and "-f=value"
// forms are handled.
func filterArgs(args []string, allowedFlags ...string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}
	return filtered
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string    base URL of the timestamp service
//	-t int       request timeout in seconds
//	-o string    output directory for finished archives
//	-d string    drop directory
//	-db string   sqlite DSN for the local history database
func parseFlags(cfg *Config) {
	args := filterArgs(os.Args[1:], "-a", "-t", "-o", "-d", "-db")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerAddr, "a", cfg.ServerAddr, "base URL of the timestamp service")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "output directory for finished archives")
	fs.StringVar(&cfg.DropDir, "d", cfg.DropDir, "drop directory")
	fs.StringVar(&cfg.DatabaseDSN, "db", cfg.DatabaseDSN, "sqlite DSN for the local history database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
