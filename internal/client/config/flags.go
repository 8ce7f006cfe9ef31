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
//	-a string   base URL of the backend server
//	-s string   path of the local session store
//
// Args are filtered with flagx.FilterArgs so flags owned by other packages
// do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend server")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "path of the local session store")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
