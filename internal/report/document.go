package report

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"vendas/internal/aggregate"
	"vendas/internal/core"
	"vendas/internal/log"
	"vendas/internal/ranking"
)

const (
	documentPrefix    = "relatorio_vendas_"
	documentExt       = ".html"
	documentStamp     = "20060102_150405"
	documentTimestamp = "02/01/2006 às 15:04"
	maxNameAttempts   = 1000
)

// RequiredPlaceholders must all occur in a template; without them the
// document would carry none of the headline figures.
var RequiredPlaceholders = []string{"VALOR_TOTAL", "TOTAL_VENDAS", "TICKET_MEDIO"}

// RenderDocument fills the template and writes it to a new file in the
// report directory, returning its path. Every check runs before the file
// is created, so a failed render leaves nothing behind.
func (r *Renderer) RenderDocument(ctx context.Context, summary aggregate.Summary, sales []core.Sale, now time.Time) (string, error) {
	content, err := r.Document(summary, sales, now)
	if err != nil {
		r.events.LogError(ctx, "Report generation aborted", err, errorType(err), log.OpRender, nil)
		return "", err
	}

	path, err := writeUnique(r.opts.ReportDir, documentPrefix+now.Format(documentStamp), content)
	if err != nil {
		r.events.LogError(ctx, "Failed to write report", err, log.ErrorTypeInternal, log.OpRender,
			log.NewFields().WithPath(r.opts.ReportDir))
		return "", err
	}
	r.events.LogReportWritten(ctx, path, summary.TotalCount)
	return path, nil
}

// Document returns the filled template without writing it.
func (r *Renderer) Document(summary aggregate.Summary, sales []core.Sale, now time.Time) (string, error) {
	if err := checkTotal(summary); err != nil {
		return "", err
	}

	tmpl, err := r.loadAsset("template", r.opts.TemplatePath)
	if err != nil {
		return "", err
	}
	style, err := r.loadAsset("stylesheet", r.opts.StylePath)
	if err != nil {
		return "", err
	}
	if missing := Missing(tmpl, RequiredPlaceholders...); len(missing) > 0 {
		return "", &ConfigurationError{
			Asset: "template",
			Path:  r.opts.TemplatePath,
			Err:   fmt.Errorf("missing placeholders %s", strings.Join(missing, ", ")),
		}
	}

	return r.placeholders(summary, sales, now, style).Apply(tmpl), nil
}

func (r *Renderer) loadAsset(asset, path string) (string, error) {
	if path == "" {
		return "", &ConfigurationError{Asset: asset, Path: path, Err: errors.New("path not configured")}
	}
	content, err := r.assets.Load(path)
	if err != nil {
		return "", &ConfigurationError{Asset: asset, Path: path, Err: err}
	}
	return content, nil
}

func (r *Renderer) placeholders(summary aggregate.Summary, sales []core.Sale, now time.Time, style string) Placeholders {
	total := summary.GrandTotal
	insights := summary.Insights()
	esc := html.EscapeString

	return Placeholders{
		"DATA_GERACAO":          func() string { return now.Format(documentTimestamp) },
		"VALOR_TOTAL":           func() string { return r.format.Amount(total) },
		"TOTAL_VENDAS":          func() string { return strconv.Itoa(summary.TotalCount) },
		"TICKET_MEDIO":          func() string { return r.format.Amount(summary.AverageTicket) },
		"TOTAL_VENDEDORES":      func() string { return strconv.Itoa(summary.DistinctSellers()) },
		"RANKING_VENDEDORES":    func() string { return r.sellerRows(summary) },
		"TOP_PRODUTOS":          func() string { return r.productRows(summary) },
		"VENDAS_REGIAO":         func() string { return r.regionRows(summary) },
		"ULTIMAS_VENDAS":        func() string { return r.recentRows(sales) },
		"MELHOR_VENDEDOR":       func() string { return esc(insights.BestSeller.Key) },
		"MELHOR_VENDEDOR_VALOR": func() string { return r.format.Amount(insights.BestSeller.SumTotal) },
		"MELHOR_PRODUTO":        func() string { return esc(insights.BestProduct.Key) },
		"MELHOR_PRODUTO_VALOR":  func() string { return r.format.Amount(insights.BestProduct.SumTotal) },
		"MELHOR_REGIAO":         func() string { return esc(insights.BestRegion.Key) },
		"MELHOR_REGIAO_PERC":    func() string { return r.share(insights.BestRegion.SumTotal, total) },
		"OPORTUNIDADE":          func() string { return "Expandir na região " + esc(insights.WorstRegion.Key) },
		"OPORTUNIDADE_DETALHE":  func() string { return r.format.Money(insights.WorstRegion.SumTotal) + " em vendas" },
		"ASSINATURA":            func() string { return esc(r.opts.Signature) },
		"ESTILO":                func() string { return style },
	}
}

func (r *Renderer) sellerRows(summary aggregate.Summary) string {
	var b strings.Builder
	for i, g := range ranking.Rank(summary.BySeller, ranking.ByTotal) {
		b.WriteString(ranking.MarkupRow(
			r.format.Position(i+1),
			g.Key,
			r.format.Money(g.SumTotal),
			r.share(g.SumTotal, summary.GrandTotal),
			r.format.Money(g.AverageTicket()),
		))
	}
	return b.String()
}

func (r *Renderer) productRows(summary aggregate.Summary) string {
	var b strings.Builder
	top := ranking.TopN(ranking.Rank(summary.ByProduct, ranking.ByTotal), r.opts.TopProducts)
	for i, g := range top {
		b.WriteString(ranking.MarkupRow(
			r.format.Position(i+1),
			g.Key,
			countLabel(g.SumQuantity, "unidade", "unidades"),
			r.format.Money(g.SumTotal),
			r.share(g.SumTotal, summary.GrandTotal),
		))
	}
	return b.String()
}

func (r *Renderer) regionRows(summary aggregate.Summary) string {
	var b strings.Builder
	for _, g := range ranking.Rank(summary.ByRegion, ranking.ByTotal) {
		b.WriteString(ranking.MarkupRow(
			g.Key,
			countLabel(g.Count, "venda", "vendas"),
			r.format.Money(g.SumTotal),
			r.share(g.SumTotal, summary.GrandTotal),
			r.format.Money(g.AverageTicket()),
		))
	}
	return b.String()
}

func (r *Renderer) recentRows(sales []core.Sale) string {
	var b strings.Builder
	for _, s := range ranking.Recent(sales, r.opts.RecentSales) {
		b.WriteString(ranking.MarkupRow(
			s.Date,
			s.Seller,
			s.Product,
			strconv.Itoa(s.Quantity),
			r.format.Money(s.UnitPrice),
			r.format.Money(s.Total),
			s.Region,
		))
	}
	return b.String()
}

// writeUnique creates dir/base.html, or dir/base_2.html and so on when the
// name is taken. Existing files are never overwritten.
func writeUnique(dir, base, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	for n := 1; n <= maxNameAttempts; n++ {
		name := base + documentExt
		if n > 1 {
			name = base + "_" + strconv.Itoa(n) + documentExt
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create report file: %w", err)
		}
		if _, err := f.WriteString(content); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("write report file: %w", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("close report file: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no free report name for %s in %s", base, dir)
}

// LatestDocument returns the most recently modified document in dir.
func LatestDocument(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoReports
	}
	if err != nil {
		return "", fmt.Errorf("read report directory: %w", err)
	}

	var (
		latest     string
		latestTime time.Time
	)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != documentExt {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest = filepath.Join(dir, e.Name())
			latestTime = info.ModTime()
		}
	}
	if latest == "" {
		return "", ErrNoReports
	}
	return latest, nil
}

func errorType(err error) string {
	switch {
	case errors.Is(err, ErrConfiguration):
		return log.ErrorTypeConfiguration
	case errors.Is(err, aggregate.ErrNoData), errors.Is(err, aggregate.ErrOverflow):
		return log.ErrorTypeArithmetic
	default:
		return log.ErrorTypeInternal
	}
}
