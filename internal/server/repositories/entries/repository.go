// Package entries provides the append-only stores behind the bread
// directory: PostgreSQL, SQLite, in-memory and S3-backed.
//
// Every implementation keeps insertion order, which is the order ListAll
// returns and the order FindFirstByLocality scans.
package entries

import (
	"context"

	"github.com/dmitrijs2005/bunfight/internal/server/models"
)

type Repository interface {
	// ListAll returns every stored entry in insertion order.
	ListAll(ctx context.Context) ([]*models.Entry, error)
	// FindFirstByLocality returns the earliest entry whose locality equals
	// the argument exactly, or common.ErrUnknown.
	FindFirstByLocality(ctx context.Context, locality string) (*models.Entry, error)
	// Create appends entry. ID and CreatedAt must already be set.
	Create(ctx context.Context, entry *models.Entry) error
}
