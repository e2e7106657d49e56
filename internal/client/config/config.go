package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
)

// Config holds runtime settings for the itemkeeper CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the HTTP API.
//   - LocalDBPath: SQLite file holding the persisted session.
//   - TokenTTLHint: how long a stored token is offered before it is dropped locally.
//   - TokenHeaderName: request header carrying the token.
//   - LogLevel: diagnostics level written to stderr.
type Config struct {
	ServerEndpointAddr string
	LocalDBPath        string
	TokenTTLHint       time.Duration
	TokenHeaderName    string
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.LocalDBPath = "itemkeeper.db"
	c.TokenTTLHint = common.DefaultTokenValidity
	c.TokenHeaderName = common.TokenHeaderName
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. The TTL hint is clamped to the server's
// default token lifetime. It panics on unreadable sources.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	cfg.clampTTLHint()
	return cfg
}

// clampTTLHint keeps the local expiry hint within (0, server default TTL]. A
// saved token is never offered after the server would reject it.
func (c *Config) clampTTLHint() {
	if c.TokenTTLHint <= 0 || c.TokenTTLHint > common.DefaultTokenValidity {
		c.TokenTTLHint = common.DefaultTokenValidity
	}
}
