// Package repomanager opens the configured entry store and vends its
// repository. SQL backends get their schema from embedded goose migrations.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bunfight/internal/server/config"
	"github.com/dmitrijs2005/bunfight/internal/server/repositories/entries"
)

// Storage drivers accepted in config.StorageDriver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
	DriverS3       = "s3"
)

type RepositoryManager interface {
	// Entries returns the repository bound to the main connection.
	Entries() entries.Repository
	// Atomic runs fn with a repository whose writes are committed together
	// when the backend supports transactions, and one by one otherwise.
	Atomic(ctx context.Context, fn func(ctx context.Context, repo entries.Repository) error) error
	// Close releases the underlying connection.
	Close() error
}

// New opens the store selected by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	var (
		m   RepositoryManager
		err error
	)

	switch cfg.StorageDriver {
	case DriverPostgres:
		m, err = NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	case DriverSQLite:
		m, err = NewSQLiteRepositoryManager(ctx, cfg.DatabaseDSN)
	case DriverMemory:
		m = NewMemoryRepositoryManager()
	case DriverS3:
		m, err = NewS3RepositoryManager(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if err != nil {
		return nil, err
	}
	return m, nil
}
