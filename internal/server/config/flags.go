package config

import (
	"flag"
	"os"

	"github.com/bridgehq/bridge/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   listen address of the HTTP API
//	-d string   postgres connection string
//	-k string   token signing key
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address of the HTTP API")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "postgres connection string")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "token signing key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
