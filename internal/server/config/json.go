package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bunfight/internal/flagx"
	"github.com/dmitrijs2005/bunfight/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. StoreTimeout
// accepts "5s"-style strings as well as integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	StorageDriver    string         `json:"storage_driver"`
	DatabaseDSN      string         `json:"database_dsn"`
	StoreTimeout     timex.Duration `json:"store_timeout"`
	SeedFile         string         `json:"seed_file"`
	LogLevel         string         `json:"log_level"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	S3Prefix         string         `json:"s3_prefix"`
}

// parseJson overlays values from the JSON file named by -c/-config onto
// config. Fields absent from the file keep their current value. Nothing
// happens without the flag; an unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIfNotEmpty(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIfNotEmpty(&config.StorageDriver, c.StorageDriver)
	setIfNotEmpty(&config.DatabaseDSN, c.DatabaseDSN)
	setIfNotEmpty(&config.SeedFile, c.SeedFile)
	setIfNotEmpty(&config.LogLevel, c.LogLevel)
	setIfNotEmpty(&config.S3RootUser, c.S3RootUser)
	setIfNotEmpty(&config.S3RootPassword, c.S3RootPassword)
	setIfNotEmpty(&config.S3Bucket, c.S3Bucket)
	setIfNotEmpty(&config.S3Region, c.S3Region)
	setIfNotEmpty(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setIfNotEmpty(&config.S3Prefix, c.S3Prefix)

	if c.StoreTimeout.Duration > 0 {
		config.StoreTimeout = c.StoreTimeout.Duration
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
