package report

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"vendas/internal/aggregate"
	"vendas/internal/ranking"
)

const (
	textTimestamp = "02/01/2006 15:04"
	rule          = "============================================================"
)

var (
	sellerColumns = []ranking.Column{
		{Width: 4}, {Width: 20}, {Width: 16, Align: ranking.AlignRight},
		{Width: 10, Align: ranking.AlignRight}, {Width: 7, Align: ranking.AlignRight},
		{Width: 16, Align: ranking.AlignRight},
	}
	productColumns = []ranking.Column{
		{Width: 4}, {Width: 20}, {Width: 14, Align: ranking.AlignRight},
		{Width: 16, Align: ranking.AlignRight}, {Width: 7, Align: ranking.AlignRight},
	}
	regionColumns = []ranking.Column{
		{Width: 16}, {Width: 10, Align: ranking.AlignRight},
		{Width: 16, Align: ranking.AlignRight}, {Width: 7, Align: ranking.AlignRight},
		{Width: 16, Align: ranking.AlignRight},
	}
	metricColumns = []ranking.Column{{Width: 18}, {Width: 16, Align: ranking.AlignRight}}
)

// RenderText builds the read-only text summary: header, global metrics,
// seller ranking, top five products and the region breakdown.
func (r *Renderer) RenderText(summary aggregate.Summary, now time.Time) (string, error) {
	if err := checkTotal(summary); err != nil {
		return "", err
	}

	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	section := func(title string) {
		line("")
		line(title)
		line(strings.Repeat("-", utf8.RuneCountInString(title)))
	}

	line("RELATÓRIO DE VENDAS")
	line("Gerado em " + now.Format(textTimestamp))
	line(rule)

	section("MÉTRICAS GERAIS")
	line(ranking.TextRow(metricColumns, "Valor total", r.format.Money(summary.GrandTotal)))
	line(ranking.TextRow(metricColumns, "Total de vendas", strconv.Itoa(summary.TotalCount)))
	line(ranking.TextRow(metricColumns, "Ticket médio", r.format.Money(summary.AverageTicket)))
	line(ranking.TextRow(metricColumns, "Vendedores", strconv.Itoa(summary.DistinctSellers())))

	section("RANKING DE VENDEDORES")
	for i, g := range ranking.Rank(summary.BySeller, ranking.ByTotal) {
		line(ranking.TextRow(sellerColumns,
			r.format.Position(i+1),
			g.Key,
			r.format.Money(g.SumTotal),
			countLabel(g.Count, "venda", "vendas"),
			r.share(g.SumTotal, summary.GrandTotal),
			r.format.Money(g.AverageTicket()),
		))
	}

	section("TOP 5 PRODUTOS")
	top := ranking.TopN(ranking.Rank(summary.ByProduct, ranking.ByTotal), textTopProducts)
	for i, g := range top {
		line(ranking.TextRow(productColumns,
			r.format.Position(i+1),
			g.Key,
			countLabel(g.SumQuantity, "unidade", "unidades"),
			r.format.Money(g.SumTotal),
			r.share(g.SumTotal, summary.GrandTotal),
		))
	}

	section("VENDAS POR REGIÃO")
	for _, g := range ranking.Rank(summary.ByRegion, ranking.ByTotal) {
		line(ranking.TextRow(regionColumns,
			g.Key,
			countLabel(g.Count, "venda", "vendas"),
			r.format.Money(g.SumTotal),
			r.share(g.SumTotal, summary.GrandTotal),
			r.format.Money(g.AverageTicket()),
		))
	}

	return b.String(), nil
}

func countLabel(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}
