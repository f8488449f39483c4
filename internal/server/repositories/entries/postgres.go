package entries

import "github.com/dmitrijs2005/bunfight/internal/dbx"

var postgresQueries = queries{
	insert: `INSERT INTO entries (id, locality, term, created_at)
		VALUES ($1, $2, $3, $4)`,
	selectAll: `SELECT id, locality, term, created_at FROM entries
		ORDER BY seq`,
	selectFirst: `SELECT id, locality, term, created_at FROM entries
		WHERE locality = $1 ORDER BY seq LIMIT 1`,
}

// PostgresRepository stores entries in PostgreSQL through the pgx driver.
type PostgresRepository struct {
	sqlRepository
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{sqlRepository{db: db, q: postgresQueries}}
}
