package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bunfight/internal/common"
	"github.com/dmitrijs2005/bunfight/internal/dbx"
	"github.com/dmitrijs2005/bunfight/internal/server/models"
)

// queries differ between dialects only in placeholder syntax.
type queries struct {
	insert      string
	selectAll   string
	selectFirst string
}

// sqlRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type sqlRepository struct {
	db dbx.DBTX
	q  queries
}

func (r *sqlRepository) Create(ctx context.Context, entry *models.Entry) error {
	res, err := r.db.ExecContext(ctx, r.q.insert, entry.ID, entry.Locality, entry.Term, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

func (r *sqlRepository) ListAll(ctx context.Context) ([]*models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, r.q.selectAll)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Entry, 0)
	for rows.Next() {
		var item models.Entry
		if err := rows.Scan(&item.ID, &item.Locality, &item.Term, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *sqlRepository) FindFirstByLocality(ctx context.Context, locality string) (*models.Entry, error) {
	var item models.Entry
	err := r.db.QueryRowContext(ctx, r.q.selectFirst, locality).
		Scan(&item.ID, &item.Locality, &item.Term, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrUnknown
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select entry: %w", err)
	}
	return &item, nil
}
