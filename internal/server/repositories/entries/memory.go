package entries

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/bunfight/internal/common"
	"github.com/dmitrijs2005/bunfight/internal/server/models"
)

// MemoryRepository keeps entries in process memory. Contents are lost on restart.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []models.Entry
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, entry *models.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]*models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Entry, 0, len(r.entries))
	for i := range r.entries {
		e := r.entries[i]
		result = append(result, &e)
	}
	return result, nil
}

func (r *MemoryRepository) FindFirstByLocality(ctx context.Context, locality string) (*models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if r.entries[i].Locality == locality {
			e := r.entries[i]
			return &e, nil
		}
	}
	return nil, common.ErrUnknown
}
