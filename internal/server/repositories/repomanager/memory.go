package repomanager

import (
	"context"

	"github.com/dmitrijs2005/bunfight/internal/server/repositories/entries"
)

type MemoryRepositoryManager struct {
	entries *entries.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{entries: entries.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Entries() entries.Repository {
	return m.entries
}

func (m *MemoryRepositoryManager) Atomic(ctx context.Context, fn func(ctx context.Context, repo entries.Repository) error) error {
	return fn(ctx, m.entries)
}

func (m *MemoryRepositoryManager) Close() error {
	return nil
}
