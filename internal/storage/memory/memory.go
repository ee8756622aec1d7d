// Package memory keeps the ledger in process memory only. It backs the
// "memory" data backend and tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"vendas/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Sale
	saves int
}

func New(seed ...core.Sale) *Store {
	return &Store{items: slices.Clone(seed)}
}

// Load returns a copy of the stored sales.
func (s *Store) Load(_ context.Context) ([]core.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items), nil
}

// Save replaces the stored sales with a copy of sales.
func (s *Store) Save(_ context.Context, sales []core.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Clone(sales)
	s.saves++
	return nil
}

// Saves reports how many times Save was called.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
