// Package report turns an aggregated ledger into the plain-text summary and
// the templated document.
package report

import (
	"vendas/internal/aggregate"
	"vendas/internal/core"
	"vendas/internal/log"
	"vendas/internal/ranking"
)

const (
	DefaultTopProducts = 10
	DefaultRecentSales = 20
	textTopProducts    = 5
)

// Options configures document generation. Zero values fall back to the
// defaults above.
type Options struct {
	TemplatePath string
	StylePath    string
	ReportDir    string
	Signature    string
	Currency     string
	TopProducts  int
	RecentSales  int
}

type Renderer struct {
	opts   Options
	assets AssetLoader
	format *ranking.Formatter
	logger *log.Logger
	events *log.StructuredLogger
}

func NewRenderer(opts Options, assets AssetLoader, logger *log.Logger) *Renderer {
	if opts.TopProducts <= 0 {
		opts.TopProducts = DefaultTopProducts
	}
	if opts.RecentSales <= 0 {
		opts.RecentSales = DefaultRecentSales
	}
	if assets == nil {
		assets = NewFileAssets(4)
	}
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentReport)
	return &Renderer{
		opts:   opts,
		assets: assets,
		format: ranking.NewFormatter(opts.Currency),
		logger: logger,
		events: log.NewStructuredLogger(logger),
	}
}

// ReportDir is where documents are written.
func (r *Renderer) ReportDir() string {
	return r.opts.ReportDir
}

// share is only called after the grand total was checked to be non-zero.
func (r *Renderer) share(value, total core.Money) string {
	p, _ := ranking.PercentOfTotal(value, total)
	return r.format.Percent(p)
}

func checkTotal(summary aggregate.Summary) error {
	if summary.TotalCount == 0 {
		return &aggregate.ArithmeticError{Kind: aggregate.EmptyLedger}
	}
	if summary.GrandTotal.IsZero() {
		return &aggregate.ArithmeticError{Kind: aggregate.DivideByZero}
	}
	return nil
}
