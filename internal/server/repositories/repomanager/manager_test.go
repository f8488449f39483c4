package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bunfight/internal/server/config"
	"github.com/dmitrijs2005/bunfight/internal/server/models"
	"github.com/dmitrijs2005/bunfight/internal/server/repositories/entries"
)

func entry(id, locality, term string) *models.Entry {
	return &models.Entry{ID: id, Locality: locality, Term: term, CreatedAt: time.Now().UTC()}
}

func TestNew_Memory(t *testing.T) {
	m, err := New(context.Background(), &config.Config{StorageDriver: DriverMemory})
	require.NoError(t, err)
	require.IsType(t, &MemoryRepositoryManager{}, m)
	assert.NoError(t, m.Close())
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), &config.Config{StorageDriver: "firestore"})
	require.EqualError(t, err, `unknown storage driver "firestore"`)
}

func TestSQLite_MigratesAndServesEntries(t *testing.T) {
	ctx := context.Background()
	m, err := New(ctx, &config.Config{StorageDriver: DriverSQLite, DatabaseDSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	repo := m.Entries()
	require.NoError(t, repo.Create(ctx, entry("a", "London", "bread")))

	got, err := repo.FindFirstByLocality(ctx, "London")
	require.NoError(t, err)
	assert.Equal(t, "bread", got.Term)
}

func TestSQLite_AtomicCommitsAndRollsBack(t *testing.T) {
	ctx := context.Background()
	m, err := NewSQLiteRepositoryManager(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	err = m.Atomic(ctx, func(ctx context.Context, repo entries.Repository) error {
		if err := repo.Create(ctx, entry("a", "London", "bread")); err != nil {
			return err
		}
		return repo.Create(ctx, entry("b", "Leeds", "barm"))
	})
	require.NoError(t, err)

	err = m.Atomic(ctx, func(ctx context.Context, repo entries.Repository) error {
		require.NoError(t, repo.Create(ctx, entry("c", "Bolton", "muffin")))
		return errors.New("boom")
	})
	require.EqualError(t, err, "boom")

	all, err := m.Entries().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "London", all[0].Locality)
	assert.Equal(t, "Leeds", all[1].Locality)
}

func TestMemory_AtomicUsesSameRepository(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRepositoryManager()

	require.NoError(t, m.Atomic(ctx, func(ctx context.Context, repo entries.Repository) error {
		return repo.Create(ctx, entry("a", "Leeds", "barm"))
	}))

	all, err := m.Entries().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func withSQLMockOpen(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	orig := sqlOpen
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" {
			return nil, errors.New("unexpected driver " + driver)
		}
		return db, nil
	}
	t.Cleanup(func() { sqlOpen = orig })
	return mock
}

func TestPostgres_RunsMigrationsFromPostgresDir(t *testing.T) {
	withSQLMockOpen(t)

	orig := gooseUpContext
	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	t.Cleanup(func() { gooseUpContext = orig })

	m, err := NewPostgresRepositoryManager(context.Background(), "postgres://x")
	require.NoError(t, err)
	assert.Equal(t, "postgres", gotDir)
	assert.NotNil(t, m.Conn())
	assert.IsType(t, &entries.PostgresRepository{}, m.Entries())
}

func TestPostgres_MigrationError(t *testing.T) {
	mock := withSQLMockOpen(t)
	mock.ExpectClose()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	t.Cleanup(func() { gooseUpContext = orig })

	_, err := NewPostgresRepositoryManager(context.Background(), "postgres://x")
	require.EqualError(t, err, "migration error: boom")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_OpenError(t *testing.T) {
	orig := sqlOpen
	sqlOpen = func(driver, dsn string) (*sql.DB, error) { return nil, errors.New("bad dsn") }
	t.Cleanup(func() { sqlOpen = orig })

	_, err := NewPostgresRepositoryManager(context.Background(), "::")
	require.EqualError(t, err, "db open error: bad dsn")
}

func TestS3_BuildsClientFromConfig(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-west-2", lo.Region)
		return aws.Config{Region: lo.Region}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) entries.S3API {
		for _, fn := range optFns {
			fn(&opts)
		}
		return s3.NewFromConfig(cfg, optFns...)
	}

	m, err := New(context.Background(), &config.Config{
		StorageDriver:  DriverS3,
		S3Region:       "eu-west-2",
		S3Bucket:       "vault",
		S3Prefix:       "bread/",
		S3BaseEndpoint: "http://127.0.0.1:9000",
	})
	require.NoError(t, err)
	assert.IsType(t, &entries.S3Repository{}, m.Entries())
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}

func TestS3_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no creds")
	}

	_, err := NewS3RepositoryManager(context.Background(), &config.Config{})
	require.EqualError(t, err, "aws config error: no creds")
}

func TestSQLite_FileInNewDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "var", "bunfight.db")

	m, err := NewSQLiteRepositoryManager(ctx, path)
	require.NoError(t, err)
	require.NoError(t, m.Entries().Create(ctx, entry("a", "Leeds", "barm")))
	require.NoError(t, m.Close())

	m, err = NewSQLiteRepositoryManager(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	all, err := m.Entries().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "barm", all[0].Term)
}
