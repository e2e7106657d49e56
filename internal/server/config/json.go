package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/itemkeeper/internal/flagx"
	"github.com/dmitrijs2005/itemkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration file. Interval
// fields use timex.Duration so both "24h" and integer nanoseconds parse.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	TokenTransport        string         `json:"token_transport"`
	TokenHeaderName       string         `json:"token_header_name"`
	TokenCookieName       string         `json:"token_cookie_name"`
	LogFormat             string         `json:"log_format"`
	LogLevel              string         `json:"log_level"`
}

// parseJson overlays config with the JSON file named by -c/-config in args.
// Fields absent from the file keep their current values.
func parseJson(config *Config, args []string) error {
	jsonConfigFile := flagx.JsonConfigFlags(args)
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", jsonConfigFile, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.TokenTransport, c.TokenTransport)
	setString(&config.TokenHeaderName, c.TokenHeaderName)
	setString(&config.TokenCookieName, c.TokenCookieName)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.LogLevel, c.LogLevel)
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
