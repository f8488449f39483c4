package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/bunfight/internal/common"
	"github.com/dmitrijs2005/bunfight/internal/flagx"
)

// parseEnv overlays BUNFIGHT_* environment variables onto config.
//
// Variables are first loaded from the file named by -env, or from ./.env
// when that flag is absent. Variables already set in the process
// environment win over the file. A missing ./.env is not an error; a
// missing or unreadable -env file, or an invalid duration, panics.
//
//	BUNFIGHT_ADDRESS, BUNFIGHT_STORAGE, BUNFIGHT_DATABASE_DSN,
//	BUNFIGHT_STORE_TIMEOUT ("5s"), BUNFIGHT_SEED_FILE, BUNFIGHT_LOG_LEVEL,
//	BUNFIGHT_S3_ROOT_USER, BUNFIGHT_S3_ROOT_PASSWORD, BUNFIGHT_S3_BUCKET,
//	BUNFIGHT_S3_REGION, BUNFIGHT_S3_BASE_ENDPOINT, BUNFIGHT_S3_PREFIX
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	fields := map[string]*string{
		"ADDRESS":          &config.EndpointAddrHTTP,
		"STORAGE":          &config.StorageDriver,
		"DATABASE_DSN":     &config.DatabaseDSN,
		"SEED_FILE":        &config.SeedFile,
		"LOG_LEVEL":        &config.LogLevel,
		"S3_ROOT_USER":     &config.S3RootUser,
		"S3_ROOT_PASSWORD": &config.S3RootPassword,
		"S3_BUCKET":        &config.S3Bucket,
		"S3_REGION":        &config.S3Region,
		"S3_BASE_ENDPOINT": &config.S3BaseEndpoint,
		"S3_PREFIX":        &config.S3Prefix,
	}
	for name, dst := range fields {
		if v, ok := lookupEnv(name); ok {
			*dst = v
		}
	}

	if v, ok := lookupEnv("STORE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.StoreTimeout = d
	}
}

func lookupEnv(name string) (string, bool) {
	return os.LookupEnv(common.EnvPrefix + "_" + name)
}
