package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vendas/internal/aggregate"
	"vendas/internal/catalog"
	"vendas/internal/core"
	"vendas/internal/ledger"
	"vendas/internal/log"
	"vendas/internal/report"
)

// SalesService is the single entry point for callers: it validates input,
// keeps the ledger, and produces reports from it.
type SalesService struct {
	store    *ledger.Store
	renderer *report.Renderer
	catalog  catalog.Catalog
	now      func() time.Time
	cleanup  func() error
	logger   *log.Logger
	events   *log.StructuredLogger
}

type Option func(*SalesService)

// WithClock replaces time.Now for report timestamps and file names.
func WithClock(now func() time.Time) Option {
	return func(s *SalesService) { s.now = now }
}

func WithCatalog(c catalog.Catalog) Option {
	return func(s *SalesService) { s.catalog = c }
}

// WithCleanup registers a function run by Close, typically the backend's.
func WithCleanup(fn func() error) Option {
	return func(s *SalesService) { s.cleanup = fn }
}

func NewSalesService(store *ledger.Store, renderer *report.Renderer, logger *log.Logger, opts ...Option) *SalesService {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentApp)
	s := &SalesService{
		store:    store,
		renderer: renderer,
		catalog:  catalog.Default(),
		now:      time.Now,
		logger:   logger,
		events:   log.NewStructuredLogger(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadLedger reads durable storage into memory and returns the ledger.
func (s *SalesService) LoadLedger(ctx context.Context) []core.Sale {
	return s.store.Load(ctx)
}

// ValidateAndBuildRecord turns raw form input into a sale. Nothing is
// stored.
func (s *SalesService) ValidateAndBuildRecord(ctx context.Context, in core.SaleInput) (core.Sale, error) {
	sale, err := core.BuildSale(in)
	if err != nil {
		s.events.LogError(ctx, "Sale rejected", err, log.ErrorTypeValidation, log.OpValidate, nil)
		return core.Sale{}, err
	}
	if !s.catalog.HasProduct(sale.Product) || !s.catalog.HasRegion(sale.Region) {
		s.logger.DebugContext(ctx, "Sale outside the catalog",
			log.FieldProduct, sale.Product, log.FieldRegion, sale.Region)
	}
	return sale, nil
}

// AppendAndPersist adds a validated sale to the ledger.
func (s *SalesService) AppendAndPersist(ctx context.Context, sale core.Sale) error {
	if err := s.store.Append(ctx, sale); err != nil {
		s.events.LogError(ctx, "Failed to record sale", err, log.ErrorTypePersistence, log.OpAppend, nil)
		return err
	}
	return nil
}

// RecordSale validates input and appends the resulting sale.
func (s *SalesService) RecordSale(ctx context.Context, in core.SaleInput) (core.Sale, error) {
	sale, err := s.ValidateAndBuildRecord(ctx, in)
	if err != nil {
		return core.Sale{}, err
	}
	if err := s.AppendAndPersist(ctx, sale); err != nil {
		return core.Sale{}, err
	}
	return sale, nil
}

// ComputeAggregates summarizes the current ledger.
func (s *SalesService) ComputeAggregates(ctx context.Context) (aggregate.Summary, error) {
	summary, err := aggregate.Compute(s.store.Snapshot())
	if err != nil {
		s.events.LogError(ctx, "Summary failed", err, log.ErrorTypeArithmetic, log.OpCompute, nil)
		return aggregate.Summary{}, err
	}
	return summary, nil
}

func (s *SalesService) RenderTextReport(ctx context.Context) (string, error) {
	summary, err := s.ComputeAggregates(ctx)
	if err != nil {
		return "", err
	}
	out, err := s.renderer.RenderText(summary, s.now())
	if err != nil {
		s.events.LogError(ctx, "Text report failed", err, log.ErrorTypeArithmetic, log.OpRender, nil)
		return "", err
	}
	return out, nil
}

// RenderDocumentReport writes a new document and returns its path.
func (s *SalesService) RenderDocumentReport(ctx context.Context) (string, error) {
	sales := s.store.Snapshot()
	summary, err := aggregate.Compute(sales)
	if err != nil {
		s.events.LogError(ctx, "Report aggregation failed", err, log.ErrorTypeArithmetic, log.OpCompute, nil)
		return "", err
	}
	return s.renderer.RenderDocument(ctx, summary, sales, s.now())
}

// ExportLedger copies the ledger to path in the flat-file format. An empty
// ledger exports the header only.
func (s *SalesService) ExportLedger(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("export path is required")
	}
	if err := s.store.Export(ctx, path); err != nil {
		s.events.LogError(ctx, "Export failed", err, log.ErrorTypePersistence, log.OpExport,
			log.NewFields().WithPath(path))
		return err
	}
	return nil
}

// ClearLedger removes every sale. The caller confirms beforehand.
func (s *SalesService) ClearLedger(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		s.events.LogError(ctx, "Failed to clear ledger", err, log.ErrorTypePersistence, log.OpClear, nil)
		return err
	}
	return nil
}

// SaveLedger rewrites durable storage from the loaded ledger, which
// normalizes legacy float amounts into the canonical decimal form.
func (s *SalesService) SaveLedger(ctx context.Context) error {
	if err := s.store.Save(ctx); err != nil {
		s.events.LogError(ctx, "Failed to rewrite ledger", err, log.ErrorTypePersistence, log.OpSave, nil)
		return err
	}
	return nil
}

func (s *SalesService) Count() int {
	return s.store.Len()
}

// Snapshot returns a copy of the ledger in entry order.
func (s *SalesService) Snapshot() []core.Sale {
	return s.store.Snapshot()
}

// LatestDocument returns the newest generated document.
func (s *SalesService) LatestDocument() (string, error) {
	return report.LatestDocument(s.renderer.ReportDir())
}

func (s *SalesService) Catalog() catalog.Catalog {
	return s.catalog
}

// Close releases the storage backend
func (s *SalesService) Close() error {
	if s.cleanup == nil {
		return nil
	}
	if err := s.cleanup(); err != nil {
		return fmt.Errorf("close sales service: %w", err)
	}
	return nil
}
