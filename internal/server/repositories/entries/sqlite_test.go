package entries

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/bunfight/internal/common"
	"github.com/dmitrijs2005/bunfight/internal/server/models"
)

const sqliteSchema = `CREATE TABLE entries (
    seq        INTEGER PRIMARY KEY AUTOINCREMENT,
    id         TEXT     NOT NULL UNIQUE,
    locality   TEXT     NOT NULL CHECK (locality <> ''),
    term       TEXT     NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

func newSQLiteRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(sqliteSchema)
	require.NoError(t, err)
	return NewSQLiteRepository(db)
}

func TestSQLiteRepository_InsertionOrderAndFirstMatch(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	ts := time.Date(2019, 12, 7, 10, 0, 0, 0, time.UTC)

	// ids deliberately sort opposite to insertion order
	require.NoError(t, repo.Create(ctx, &models.Entry{ID: "z", Locality: "Leeds", Term: "barm", CreatedAt: ts}))
	require.NoError(t, repo.Create(ctx, &models.Entry{ID: "a", Locality: "Leeds", Term: "breadcake", CreatedAt: ts}))
	require.NoError(t, repo.Create(ctx, &models.Entry{ID: "m", Locality: "leeds", Term: "teacake", CreatedAt: ts}))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"z", "a", "m"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.True(t, all[0].CreatedAt.Equal(ts))

	first, err := repo.FindFirstByLocality(ctx, "Leeds")
	require.NoError(t, err)
	assert.Equal(t, "barm", first.Term)

	lower, err := repo.FindFirstByLocality(ctx, "leeds")
	require.NoError(t, err)
	assert.Equal(t, "teacake", lower.Term)

	_, err = repo.FindFirstByLocality(ctx, "LEEDS")
	assert.ErrorIs(t, err, common.ErrUnknown)
}

func TestSQLiteRepository_RejectsEmptyLocality(t *testing.T) {
	repo := newSQLiteRepo(t)

	err := repo.Create(context.Background(), &models.Entry{ID: "x", Locality: "", Term: "bread", CreatedAt: time.Now()})
	require.Error(t, err)
}
