package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the server (default from Config)
//	-db string  local database path (default from Config)
//	-ttl int    token expiry hint in minutes (default from Config)
//	-log-level  debug, info, warn or error
//
// args are filtered with flagx.FilterArgs first. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-db", "-ttl", "-log-level"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "server base URL")
	fs.StringVar(&cfg.LocalDBPath, "db", cfg.LocalDBPath, "local database path")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	ttl := fs.Int("ttl", int(cfg.TokenTTLHint.Minutes()), "token expiry hint (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenTTLHint = time.Duration(*ttl) * time.Minute
}
