package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/bunfight/internal/dbx"
	"github.com/dmitrijs2005/bunfight/internal/filex"
	"github.com/dmitrijs2005/bunfight/internal/server/migrations"
	"github.com/dmitrijs2005/bunfight/internal/server/repositories/entries"
)

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// SQLRepositoryManager serves entries from a database/sql connection.
type SQLRepositoryManager struct {
	db            *sql.DB
	gooseDialect  string
	migrationsDir string
	maxOpenConns  int
	newRepo       func(db dbx.DBTX) entries.Repository
}

func (m *SQLRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *SQLRepositoryManager) Entries() entries.Repository {
	return m.newRepo(m.db)
}

func (m *SQLRepositoryManager) Atomic(ctx context.Context, fn func(ctx context.Context, repo entries.Repository) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, m.newRepo(tx))
	})
}

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.gooseDialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, m.migrationsDir)
}

func openSQL(ctx context.Context, m *SQLRepositoryManager, driver, dsn string) (*SQLRepositoryManager, error) {
	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	m.db = db
	if m.maxOpenConns > 0 {
		db.SetMaxOpenConns(m.maxOpenConns)
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return m, nil
}

// NewPostgresRepositoryManager connects through pgx and migrates the schema.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*SQLRepositoryManager, error) {
	return openSQL(ctx, &SQLRepositoryManager{
		gooseDialect:  "pgx",
		migrationsDir: migrations.PostgresDir,
		newRepo:       func(db dbx.DBTX) entries.Repository { return entries.NewPostgresRepository(db) },
	}, "pgx", dsn)
}

// NewSQLiteRepositoryManager opens a SQLite database (file path or
// ":memory:") and migrates the schema.
func NewSQLiteRepositoryManager(ctx context.Context, dsn string) (*SQLRepositoryManager, error) {
	if _, err := filex.EnsureDBDir(dsn); err != nil {
		return nil, fmt.Errorf("db dir error: %w", err)
	}
	return openSQL(ctx, &SQLRepositoryManager{
		gooseDialect:  "sqlite3",
		migrationsDir: migrations.SQLiteDir,
		// one writer; also keeps ":memory:" databases on a single connection
		maxOpenConns: 1,
		newRepo:      func(db dbx.DBTX) entries.Repository { return entries.NewSQLiteRepository(db) },
	}, "sqlite", dsn)
}
