package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/bunfight/internal/common"
	"github.com/dmitrijs2005/bunfight/internal/logging"
	"github.com/dmitrijs2005/bunfight/internal/server/models"
	"github.com/dmitrijs2005/bunfight/internal/server/repositories/entries"
	"github.com/dmitrijs2005/bunfight/internal/server/repositories/repomanager"
)

var (
	// newEntryID returns time-ordered IDs so that key order is insertion order
	// in stores without a sequence column.
	newEntryID = func() (string, error) {
		id, err := uuid.NewV7()
		if err != nil {
			return "", err
		}
		return id.String(), nil
	}

	now = func() time.Time { return time.Now().UTC() }
)

// BreadService is the bread directory: it looks up the local word for bread
// at a locality and accepts new submissions. Entries are append-only.
type BreadService struct {
	repomanager repomanager.RepositoryManager
	timeout     time.Duration
	logger      logging.Logger
}

func NewBreadService(repomanager repomanager.RepositoryManager, timeout time.Duration, logger logging.Logger) *BreadService {
	return &BreadService{
		repomanager: repomanager,
		timeout:     timeout,
		logger:      logger.With("module", "bread_service"),
	}
}

func (s *BreadService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, common.ErrStoreUnavailable, err)
}

func validate(locality, term string) error {
	if strings.TrimSpace(locality) == "" {
		return fmt.Errorf("%w: locality is required", common.ErrValidation)
	}
	if strings.TrimSpace(term) == "" {
		return fmt.Errorf("%w: term is required", common.ErrValidation)
	}
	return nil
}

// ListAll returns every stored entry in store order.
func (s *BreadService) ListAll(ctx context.Context) ([]*models.Entry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	all, err := s.repomanager.Entries().ListAll(ctx)
	if err != nil {
		return nil, storeError("list entries", err)
	}
	return all, nil
}

// Lookup returns the term of the first entry whose locality equals the
// argument exactly. It returns common.ErrUnknown when there is none.
func (s *BreadService) Lookup(ctx context.Context, locality string) (string, error) {
	if strings.TrimSpace(locality) == "" {
		return "", fmt.Errorf("%w: locality is required", common.ErrValidation)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	e, err := s.repomanager.Entries().FindFirstByLocality(ctx, locality)
	if errors.Is(err, common.ErrUnknown) {
		return "", common.ErrUnknown
	}
	if err != nil {
		return "", storeError("lookup", err)
	}
	return e.Term, nil
}

func newEntry(locality, term string) (*models.Entry, error) {
	id, err := newEntryID()
	if err != nil {
		return nil, fmt.Errorf("entry id: %w", err)
	}
	return &models.Entry{ID: id, Locality: locality, Term: term, CreatedAt: now()}, nil
}

// Submit appends a new entry. Duplicates are stored as separate entries.
func (s *BreadService) Submit(ctx context.Context, locality, term string) (*models.Entry, error) {
	if err := validate(locality, term); err != nil {
		return nil, err
	}

	e, err := newEntry(locality, term)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repomanager.Entries().Create(ctx, e); err != nil {
		return nil, storeError("submit", err)
	}

	s.logger.Info(ctx, "bread submitted", "locality", locality, "term", term, "id", e.ID)
	return e, nil
}

// Import appends a batch of entries, all or nothing where the store
// supports transactions. Every entry is validated before anything is written.
func (s *BreadService) Import(ctx context.Context, batch []models.Entry) (int, error) {
	for i, e := range batch {
		if err := validate(e.Locality, e.Term); err != nil {
			return 0, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.repomanager.Atomic(ctx, func(ctx context.Context, repo entries.Repository) error {
		for _, in := range batch {
			e, err := newEntry(in.Locality, in.Term)
			if err != nil {
				return err
			}
			if err := repo.Create(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, storeError("import", err)
	}
	return len(batch), nil
}

// Seed imports a JSON array of {"locality","term"} records from path, but
// only into an empty store so restarts do not duplicate the seed.
func (s *BreadService) Seed(ctx context.Context, path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var batch []models.Entry
	if err := json.Unmarshal(b, &batch); err != nil {
		return 0, fmt.Errorf("%w: seed file: %w", common.ErrValidation, err)
	}

	existing, err := s.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		s.logger.Info(ctx, "store not empty, seed skipped", "entries", len(existing))
		return 0, nil
	}

	n, err := s.Import(ctx, batch)
	if err != nil {
		return 0, err
	}
	s.logger.Info(ctx, "store seeded", "entries", n, "file", path)
	return n, nil
}
