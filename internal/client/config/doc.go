// Package config loads runtime configuration for the BunFight CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with --config.
//  3. Environment: BUNFIGHT_SERVER, BUNFIGHT_GEOCODER, BUNFIGHT_TIMEOUT.
//  4. Command-line flags --server, --geocoder, --timeout.
//
// Layering is done by viper; flags are the root command's persistent flags.
//
// # JSON schema
//
//	{
//	  "server": "127.0.0.1:8080",
//	  "geocoder": "https://nominatim.openstreetmap.org",
//	  "timeout": "5s"
//	}
package config
