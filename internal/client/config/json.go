package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/itemkeeper/internal/flagx"
	"github.com/dmitrijs2005/itemkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	LocalDBPath        string         `json:"local_db_path"`
	TokenTTLHint       timex.Duration `json:"token_ttl_hint"`
	TokenHeaderName    string         `json:"token_header_name"`
	LogLevel           string         `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// Missing keys keep their current values. Read or parse errors panic.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.JsonConfigFlags(args)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.TokenTTLHint.Duration != 0 {
		cfg.TokenTTLHint = jc.TokenTTLHint.Duration
	}
	if jc.TokenHeaderName != "" {
		cfg.TokenHeaderName = jc.TokenHeaderName
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
