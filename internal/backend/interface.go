package backend

import (
	"context"

	"vendas/internal/ledger"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the persister and an optional cleanup function
type BackendResult struct {
	Persister ledger.Persister
	Cleanup   CleanupFunc
}

// Close runs the cleanup function if there is one
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates ledger persisters based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// csv
	LedgerPath string

	// sqlite
	SQLiteDBPath string
}

// BackendType represents the type of backend
type BackendType string

const (
	CSVBackend    BackendType = "csv"
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case CSVBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
