package backend

import (
	"context"
	"fmt"

	"vendas/internal/log"
	"vendas/internal/storage/csvfile"
	"vendas/internal/storage/memory"
	"vendas/internal/storage/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case CSVBackend:
		return f.createCSVBackend(ctx, config)
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(ctx)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createCSVBackend(ctx context.Context, config Config) (*BackendResult, error) {
	file := csvfile.New(config.LedgerPath)

	f.logger.InfoContext(ctx, "Initialized csv backend", log.FieldPath, file.Path())

	return &BackendResult{Persister: file}, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := sqlite.NewRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend", log.FieldPath, repo.Path())

	return &BackendResult{
		Persister: repo,
		Cleanup:   repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context) (*BackendResult, error) {
	f.logger.InfoContext(ctx, "Initialized memory backend, sales will not outlive the process")

	return &BackendResult{Persister: memory.New()}, nil
}
