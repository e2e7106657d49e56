// Package config loads runtime configuration for the itemkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string    base URL of the itemkeeper HTTP API
//	-db string   path of the local SQLite database
//	-ttl int     local token expiry hint (minutes)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "24h" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8080",
//	  "local_db_path": "itemkeeper.db",
//	  "token_ttl_hint": "24h",
//	  "token_header_name": "x-auth-token"
//	}
//
// The token TTL hint only decides when the client stops offering a stored
// token. It should not exceed the server's token validity.
package config
