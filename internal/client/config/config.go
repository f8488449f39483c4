package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmitrijs2005/bunfight/internal/common"
)

// Keys shared by viper, the JSON file and the flag names.
const (
	KeyServer   = "server"
	KeyGeocoder = "geocoder"
	KeyTimeout  = "timeout"
	KeyConfig   = "config"
)

// Config holds runtime settings for the BunFight CLI.
//
// Fields:
//   - ServerURL: base URL (or host:port) of the BunFight API.
//   - GeocoderURL: base URL of a Nominatim-compatible reverse geocoder.
//   - Timeout: bound for every outgoing HTTP request.
type Config struct {
	ServerURL   string
	GeocoderURL string
	Timeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.GeocoderURL = "https://nominatim.openstreetmap.org"
	c.Timeout = 5 * time.Second
}

// Bind registers the persistent flags on root and wires them, the
// environment and the defaults into v.
func Bind(v *viper.Viper, root *cobra.Command) error {
	var d Config
	d.LoadDefaults()

	fs := root.PersistentFlags()
	fs.String(KeyServer, d.ServerURL, "BunFight server address")
	fs.String(KeyGeocoder, d.GeocoderURL, "reverse geocoding service URL")
	fs.Duration(KeyTimeout, d.Timeout, "request timeout")
	fs.String(KeyConfig, "", "JSON config file")

	v.SetDefault(KeyServer, d.ServerURL)
	v.SetDefault(KeyGeocoder, d.GeocoderURL)
	v.SetDefault(KeyTimeout, d.Timeout)

	v.SetEnvPrefix(common.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, k := range []string{KeyServer, KeyGeocoder, KeyTimeout, KeyConfig} {
		if err := v.BindPFlag(k, fs.Lookup(k)); err != nil {
			return fmt.Errorf("bind flag %s: %w", k, err)
		}
	}
	return nil
}

// Load reads the optional config file and resolves the final values.
func Load(v *viper.Viper) (*Config, error) {
	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	c := &Config{
		ServerURL:   v.GetString(KeyServer),
		GeocoderURL: v.GetString(KeyGeocoder),
		Timeout:     v.GetDuration(KeyTimeout),
	}
	if c.Timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive", common.ErrValidation)
	}
	return c, nil
}
