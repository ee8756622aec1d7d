package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendas/internal/config"
	"vendas/internal/core"
	"vendas/internal/log"
)

func testConfig(dir, backend string) *config.Config {
	return &config.Config{
		DataBackend:  backend,
		LedgerPath:   filepath.Join(dir, "data", "vendas_salvas.csv"),
		SQLiteDBPath: filepath.Join(dir, "data", "vendas.db"),
		CatalogDir:   filepath.Join(dir, "data"),
		TemplatePath: filepath.Join(dir, "templates", "relatorio.html"),
		StylePath:    filepath.Join(dir, "static", "css", "estilo.css"),
		ReportDir:    filepath.Join(dir, "relatorios"),
		Signature:    "Equipe",
		TopProducts:  10,
		RecentSales:  20,
		LogLevel:     "debug",
		LogFormat:    "json",
	}
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(testConfig(t.TempDir(), "memory"), &buf)
	logger.Debug("hello")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"component":"cli"`)
}

func TestInitAssetsKeepsExistingFiles(t *testing.T) {
	cfg := testConfig(t.TempDir(), "memory")

	created, err := InitAssets(cfg, log.Discard())
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.TemplatePath, cfg.StylePath}, created)
	assert.DirExists(t, cfg.ReportDir)

	require.NoError(t, os.WriteFile(cfg.StylePath, []byte("custom"), 0o644))
	created, err = InitAssets(cfg, log.Discard())
	require.NoError(t, err)
	assert.Empty(t, created)

	b, err := os.ReadFile(cfg.StylePath)
	require.NoError(t, err)
	assert.Equal(t, "custom", string(b))
}

func TestBootstrapEndToEnd(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t.TempDir(), "csv")
	_, err := InitAssets(cfg, log.Discard())
	require.NoError(t, err)

	svc, err := Bootstrap(ctx, cfg, log.Discard())
	require.NoError(t, err)
	_, err = svc.RecordSale(ctx, core.SaleInput{
		Date: "05/03/2025", Seller: "Ana", Product: "Notebook", Quantity: "1", Price: "3500", Region: "Sudeste",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	// A fresh service sees the persisted sale.
	svc, err = Bootstrap(ctx, cfg, log.Discard())
	require.NoError(t, err)
	defer svc.Close()
	require.Len(t, svc.Snapshot(), 1)

	path, err := svc.RenderDocumentReport(ctx)
	require.NoError(t, err)
	doc, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "R$ 3,500.00")
	assert.NotContains(t, string(doc), "{{")
	assert.True(t, strings.HasPrefix(filepath.Base(path), "relatorio_vendas_"))
}

func TestBootstrapSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t.TempDir(), "sqlite")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.SQLiteDBPath), 0o755))

	svc, err := Bootstrap(ctx, cfg, log.Discard())
	require.NoError(t, err)
	_, err = svc.RecordSale(ctx, core.SaleInput{
		Seller: "Bruno", Product: "Mouse", Quantity: "2", Price: "49,90", Region: "Sul",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	svc, err = Bootstrap(ctx, cfg, log.Discard())
	require.NoError(t, err)
	defer svc.Close()
	sales := svc.Snapshot()
	require.Len(t, sales, 1)
	assert.Equal(t, int64(9980), sales[0].Total.Cents)
}

func TestBootstrapRejectsUnknownBackend(t *testing.T) {
	_, err := Bootstrap(context.Background(), testConfig(t.TempDir(), "sheets"), log.Discard())
	assert.Error(t, err)
}
