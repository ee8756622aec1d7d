// Package cli provides the initialization steps shared by the vendas
// commands: environment, logging, configuration and service wiring.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"vendas/internal/backend"
	"vendas/internal/catalog"
	"vendas/internal/config"
	"vendas/internal/ledger"
	"vendas/internal/log"
	"vendas/internal/report"
	"vendas/internal/services"
	"vendas/web"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the process logger from configuration and installs it
// as the slog default. Logs go to w so stdout stays free for reports.
func SetupLogger(cfg *config.Config, w io.Writer) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentCLI,
		Format:    cfg.LogFormat,
		Writer:    w,
	})
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Bootstrap opens the configured backend, loads the ledger and returns the
// service. The caller closes the service when done.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *log.Logger) (*services.SalesService, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	store := ledger.NewStore(res.Persister, logger)
	renderer := report.NewRenderer(report.Options{
		TemplatePath: cfg.TemplatePath,
		StylePath:    cfg.StylePath,
		ReportDir:    cfg.ReportDir,
		Signature:    cfg.Signature,
		TopProducts:  cfg.TopProducts,
		RecentSales:  cfg.RecentSales,
	}, report.NewFileAssets(4), logger)

	svc := services.NewSalesService(store, renderer, logger,
		services.WithCatalog(catalog.LoadFromDir(cfg.CatalogDir)),
		services.WithCleanup(res.Close),
	)
	loaded := svc.LoadLedger(ctx)
	logger.DebugContext(ctx, "Service ready",
		log.FieldBackend, backendCfg.Type.String(), log.FieldCount, len(loaded))
	return svc, nil
}

// InitAssets writes the default template and stylesheet where the
// configuration expects them and creates the report directory. Existing
// files are left alone. It returns the paths it created.
func InitAssets(cfg *config.Config, logger *log.Logger) ([]string, error) {
	tmpl, err := web.DefaultTemplate()
	if err != nil {
		return nil, fmt.Errorf("read embedded template: %w", err)
	}
	style, err := web.DefaultStylesheet()
	if err != nil {
		return nil, fmt.Errorf("read embedded stylesheet: %w", err)
	}

	var created []string
	for _, asset := range []struct {
		path    string
		content []byte
	}{
		{cfg.TemplatePath, tmpl},
		{cfg.StylePath, style},
	} {
		ok, err := writeIfAbsent(asset.path, asset.content)
		if err != nil {
			return created, err
		}
		if ok {
			created = append(created, asset.path)
			logger.Info("Asset created", log.FieldPath, asset.path)
		}
	}

	if err := os.MkdirAll(cfg.ReportDir, 0o755); err != nil {
		return created, fmt.Errorf("create report directory: %w", err)
	}
	return created, nil
}

func writeIfAbsent(path string, content []byte) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, f.Close()
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
