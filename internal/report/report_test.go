package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendas/internal/aggregate"
	"vendas/internal/core"
)

const testTemplate = `<html><head><style>{{ESTILO}}</style></head><body>
<p>Gerado em {{DATA_GERACAO}}</p>
<p>R$ {{VALOR_TOTAL}} | {{TOTAL_VENDAS}} vendas | R$ {{TICKET_MEDIO}} | {{TOTAL_VENDEDORES}} vendedores</p>
<table>{{RANKING_VENDEDORES}}</table>
<table>{{TOP_PRODUTOS}}</table>
<table>{{VENDAS_REGIAO}}</table>
<table>{{ULTIMAS_VENDAS}}</table>
<p>{{MELHOR_VENDEDOR}} R$ {{MELHOR_VENDEDOR_VALOR}}</p>
<p>{{MELHOR_PRODUTO}} R$ {{MELHOR_PRODUTO_VALOR}}</p>
<p>{{MELHOR_REGIAO}} {{MELHOR_REGIAO_PERC}}</p>
<p>{{OPORTUNIDADE}}: {{OPORTUNIDADE_DETALHE}}</p>
<footer>{{ASSINATURA}} {{DESCONHECIDO}}</footer>
</body></html>`

var testNow = time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC)

type fixture struct {
	dir      string
	renderer *Renderer
}

func newFixture(t *testing.T, tmpl string) fixture {
	t.Helper()
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "templates", "relatorio.html")
	stylePath := filepath.Join(dir, "static", "estilo.css")
	require.NoError(t, os.MkdirAll(filepath.Dir(tmplPath), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Dir(stylePath), 0o755))
	require.NoError(t, os.WriteFile(tmplPath, []byte(tmpl), 0o644))
	require.NoError(t, os.WriteFile(stylePath, []byte("body{color:#333}"), 0o644))

	r := NewRenderer(Options{
		TemplatePath: tmplPath,
		StylePath:    stylePath,
		ReportDir:    filepath.Join(dir, "relatorios"),
		Signature:    "Equipe <Comercial>",
	}, NewFileAssets(4), nil)
	return fixture{dir: dir, renderer: r}
}

func mustSale(t *testing.T, seller, product, qty, price, region string) core.Sale {
	t.Helper()
	s, err := core.NewSale("05/03/2025", seller, product, qty, price, region)
	require.NoError(t, err)
	return s
}

func sampleSales(t *testing.T) []core.Sale {
	return []core.Sale{
		mustSale(t, "Ana", "Notebook", "1", "3500", "Sudeste"),
		mustSale(t, "Bruno", "Mouse", "2", "50", "Sul"),
		mustSale(t, "Ana", "SSD", "1", "400", "Sul"),
	}
}

func summarize(t *testing.T, sales []core.Sale) aggregate.Summary {
	t.Helper()
	s, err := aggregate.Compute(sales)
	require.NoError(t, err)
	return s
}

func reportFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRenderText(t *testing.T) {
	f := newFixture(t, testTemplate)
	out, err := f.renderer.RenderText(summarize(t, sampleSales(t)), testNow)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "RELATÓRIO DE VENDAS\nGerado em 05/03/2025 14:30\n"))
	for _, want := range []string{
		"R$ 4,000.00", "R$ 1,333.33",
		"R$ 3,900.00", "97.5%", "R$ 1,950.00",
		"2 unidades", "Sudeste", "87.5%", "12.5%", "R$ 250.00",
	} {
		assert.Contains(t, out, want)
	}

	order := []string{"MÉTRICAS GERAIS", "RANKING DE VENDEDORES", "TOP 5 PRODUTOS", "VENDAS POR REGIÃO"}
	last := -1
	for _, title := range order {
		i := strings.Index(out, title)
		require.Greater(t, i, last, "section %s out of order", title)
		last = i
	}

	ranking := out[strings.Index(out, "RANKING DE VENDEDORES"):strings.Index(out, "TOP 5 PRODUTOS")]
	assert.Less(t, strings.Index(ranking, "Ana"), strings.Index(ranking, "Bruno"))
}

func TestRenderTextLimitsProductsToFive(t *testing.T) {
	f := newFixture(t, testTemplate)
	var sales []core.Sale
	for _, p := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		sales = append(sales, mustSale(t, "Ana", "Produto "+p, "1", "10", "Sul"))
	}
	out, err := f.renderer.RenderText(summarize(t, sales), testNow)
	require.NoError(t, err)
	assert.Contains(t, out, "Produto E")
	assert.NotContains(t, out, "Produto F")
}

func TestRenderTextZeroTotal(t *testing.T) {
	f := newFixture(t, testTemplate)
	out, err := f.renderer.RenderText(summarize(t, []core.Sale{mustSale(t, "Ana", "Brinde", "3", "0", "Sul")}), testNow)
	assert.Empty(t, out)

	var arith *aggregate.ArithmeticError
	require.ErrorAs(t, err, &arith)
	assert.Equal(t, aggregate.DivideByZero, arith.Kind)
}

func TestRenderTextEmptySummary(t *testing.T) {
	f := newFixture(t, testTemplate)
	_, err := f.renderer.RenderText(aggregate.Summary{}, testNow)
	assert.ErrorIs(t, err, aggregate.ErrNoData)
}

func TestRenderDocument(t *testing.T) {
	f := newFixture(t, testTemplate)
	sales := sampleSales(t)

	path, err := f.renderer.RenderDocument(context.Background(), summarize(t, sales), sales, testNow)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.dir, "relatorios", "relatorio_vendas_20250305_143000.html"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(b)

	for _, want := range []string{
		"<style>body{color:#333}</style>",
		"Gerado em 05/03/2025 às 14:30",
		"R$ 4,000.00 | 3 vendas | R$ 1,333.33 | 2 vendedores",
		"<tr><td>#1</td><td>Ana</td><td>R$ 3,900.00</td><td>97.5%</td><td>R$ 1,950.00</td></tr>",
		"<tr><td>Sudeste</td><td>1 venda</td><td>R$ 3,500.00</td><td>87.5%</td><td>R$ 3,500.00</td></tr>",
		"<p>Ana R$ 3,900.00</p>",
		"<p>Notebook R$ 3,500.00</p>",
		"<p>Sudeste 87.5%</p>",
		"Expandir na região Sul: R$ 500.00 em vendas",
		"Equipe &lt;Comercial&gt; {{DESCONHECIDO}}",
	} {
		assert.Contains(t, doc, want)
	}

	// Latest entry comes first in the recent sales table.
	assert.Less(t, strings.Index(doc, "<td>SSD</td><td>1</td>"), strings.Index(doc, "<td>Notebook</td><td>1</td>"))
}

func TestRenderDocumentNamesNeverCollide(t *testing.T) {
	f := newFixture(t, testTemplate)
	sales := sampleSales(t)
	summary := summarize(t, sales)

	var paths []string
	for i := 0; i < 3; i++ {
		p, err := f.renderer.RenderDocument(context.Background(), summary, sales, testNow)
		require.NoError(t, err)
		paths = append(paths, filepath.Base(p))
	}
	assert.Equal(t, []string{
		"relatorio_vendas_20250305_143000.html",
		"relatorio_vendas_20250305_143000_2.html",
		"relatorio_vendas_20250305_143000_3.html",
	}, paths)
}

func TestRenderDocumentEscapesValues(t *testing.T) {
	f := newFixture(t, testTemplate)
	sales := []core.Sale{mustSale(t, "<script>x</script>", "A&B", "1", "10", "{{VALOR_TOTAL}}")}

	doc, err := f.renderer.Document(summarize(t, sales), sales, testNow)
	require.NoError(t, err)
	assert.NotContains(t, doc, "<script>")
	assert.Contains(t, doc, "&lt;script&gt;x&lt;/script&gt;")
	assert.Contains(t, doc, "A&amp;B")
	assert.Contains(t, doc, "<td>{{VALOR_TOTAL}}</td>")
}

func TestRenderDocumentConfigurationErrors(t *testing.T) {
	tests := []struct {
		name  string
		tmpl  string
		setup func(f fixture)
		asset string
	}{
		{
			name:  "missing template",
			tmpl:  testTemplate,
			setup: func(f fixture) { os.Remove(f.renderer.opts.TemplatePath) },
			asset: "template",
		},
		{
			name:  "missing stylesheet",
			tmpl:  testTemplate,
			setup: func(f fixture) { os.Remove(f.renderer.opts.StylePath) },
			asset: "stylesheet",
		},
		{
			name:  "template without required placeholders",
			tmpl:  "<html><body>{{DATA_GERACAO}} {{RANKING_VENDEDORES}}</body></html>",
			setup: func(fixture) {},
			asset: "template",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.tmpl)
			tt.setup(f)
			sales := sampleSales(t)

			path, err := f.renderer.RenderDocument(context.Background(), summarize(t, sales), sales, testNow)
			assert.Empty(t, path)
			require.ErrorIs(t, err, ErrConfiguration)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.asset, cfgErr.Asset)
			assert.Empty(t, reportFiles(t, filepath.Join(f.dir, "relatorios")))
		})
	}
}

func TestRenderDocumentZeroTotalWritesNothing(t *testing.T) {
	f := newFixture(t, testTemplate)
	sales := []core.Sale{mustSale(t, "Ana", "Brinde", "1", "0", "Sul")}

	_, err := f.renderer.RenderDocument(context.Background(), summarize(t, sales), sales, testNow)
	require.ErrorIs(t, err, aggregate.ErrNoData)
	assert.Empty(t, reportFiles(t, filepath.Join(f.dir, "relatorios")))
}

func TestLatestDocument(t *testing.T) {
	dir := t.TempDir()

	_, err := LatestDocument(filepath.Join(dir, "absent"))
	assert.ErrorIs(t, err, ErrNoReports)
	_, err = LatestDocument(dir)
	assert.ErrorIs(t, err, ErrNoReports)

	older := filepath.Join(dir, "relatorio_vendas_20250101_000000.html")
	newer := filepath.Join(dir, "relatorio_vendas_20250102_000000.html")
	require.NoError(t, os.WriteFile(older, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("c"), 0o644))
	require.NoError(t, os.Chtimes(older, testNow, testNow))
	require.NoError(t, os.Chtimes(newer, testNow.Add(time.Hour), testNow.Add(time.Hour)))

	got, err := LatestDocument(dir)
	require.NoError(t, err)
	assert.Equal(t, newer, got)
}
