package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bunfight/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-s string   storage driver: postgres, sqlite, memory, s3
//	-d string   PostgreSQL DSN or SQLite path
//	-t int      store timeout, seconds
//	-seed path  JSON seed file imported at startup
//	-l string   log level
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g. "http://127.0.0.1:9000/")
//	-x string   S3 key prefix
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and -env,
// handled by the other layers, do not make parsing fail.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d", "-t", "-seed", "-l", "-u", "-p", "-b", "-g", "-e", "-x"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.StorageDriver, "s", config.StorageDriver, "storage driver (postgres, sqlite, memory, s3)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	storeTimeout := fs.Int("t", int(config.StoreTimeout.Seconds()), "store timeout (in seconds)")

	fs.StringVar(&config.SeedFile, "seed", config.SeedFile, "JSON seed file")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3Prefix, "x", config.S3Prefix, "S3 key prefix")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only an explicit -t replaces sub-second timeouts set by earlier layers
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.StoreTimeout = time.Duration(*storeTimeout) * time.Second
		}
	})
}
