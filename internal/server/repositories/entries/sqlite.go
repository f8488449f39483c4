package entries

import "github.com/dmitrijs2005/bunfight/internal/dbx"

var sqliteQueries = queries{
	insert: `INSERT INTO entries (id, locality, term, created_at)
		VALUES (?, ?, ?, ?)`,
	selectAll: `SELECT id, locality, term, created_at FROM entries
		ORDER BY seq`,
	selectFirst: `SELECT id, locality, term, created_at FROM entries
		WHERE locality = ? ORDER BY seq LIMIT 1`,
}

// SQLiteRepository stores entries in a SQLite file (modernc.org/sqlite).
type SQLiteRepository struct {
	sqlRepository
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{sqlRepository{db: db, q: sqliteQueries}}
}
