// Package ledger owns the ordered collection of recorded sales and keeps it
// in step with durable storage.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"vendas/internal/core"
	"vendas/internal/log"
	"vendas/internal/storage/csvfile"
)

var ErrPersistence = errors.New("ledger persistence failed")

// PersistenceError reports a failed write of the ledger.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s ledger: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// Store is the in-memory ledger with write-through persistence. A mutation
// is committed to memory only after the persister accepted the new ledger,
// so memory and storage never disagree after a failed save.
type Store struct {
	mu        sync.Mutex
	persister Persister
	sales     []core.Sale
	logger    *log.Logger
	events    *log.StructuredLogger
}

func NewStore(persister Persister, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentLedger)
	return &Store{
		persister: persister,
		logger:    logger,
		events:    log.NewStructuredLogger(logger),
	}
}

// Load replaces the in-memory ledger with the persisted one and returns a
// copy of it. Unreadable storage yields an empty ledger; the cause is
// logged, never returned.
func (s *Store) Load(ctx context.Context) []core.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales, err := s.persister.Load(ctx)
	if err != nil {
		s.events.LogLedgerDegraded(ctx, err)
		sales = nil
	}
	s.sales = sales
	s.logger.DebugContext(ctx, "Ledger loaded", log.FieldCount, len(sales))
	return slices.Clone(s.sales)
}

// Append adds sale at the end of the ledger and persists the result.
func (s *Store) Append(ctx context.Context, sale core.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clone(s.sales), sale)
	if err := s.persister.Save(ctx, next); err != nil {
		return &PersistenceError{Op: log.OpAppend, Err: err}
	}
	s.sales = next
	s.events.LogSaleAppended(ctx, sale.Date, sale.Seller, sale.Product, sale.Region, sale.Quantity, sale.Total.Cents, len(next))
	return nil
}

// Clear empties the ledger and persists the empty ledger. Confirmation is
// the caller's job.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.Save(ctx, nil); err != nil {
		return &PersistenceError{Op: log.OpClear, Err: err}
	}
	removed := len(s.sales)
	s.sales = nil
	s.logger.InfoContext(ctx, "Ledger cleared", log.FieldCount, removed)
	return nil
}

// Save rewrites durable storage from memory.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.Save(ctx, s.sales); err != nil {
		return &PersistenceError{Op: log.OpSave, Err: err}
	}
	return nil
}

// Snapshot returns a copy of the ledger in entry order.
func (s *Store) Snapshot() []core.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.sales)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sales)
}

// Export writes the ledger to path in the flat-file format, whatever the
// configured persister is.
func (s *Store) Export(ctx context.Context, path string) error {
	sales := s.Snapshot()
	if err := csvfile.WriteFile(path, sales); err != nil {
		return &PersistenceError{Op: log.OpExport, Err: err}
	}
	s.logger.InfoContext(ctx, "Ledger exported", log.FieldPath, path, log.FieldCount, len(sales))
	return nil
}
