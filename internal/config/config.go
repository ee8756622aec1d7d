package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Storage
	DataBackend  string `envconfig:"DATA_BACKEND" default:"csv"`
	LedgerPath   string `envconfig:"LEDGER_PATH" default:"./data/vendas_salvas.csv"`
	SQLiteDBPath string `envconfig:"SQLITE_DB_PATH" default:"./data/vendas.db"`
	CatalogDir   string `envconfig:"CATALOG_DIR" default:"./data"`

	// Document report assets and output
	TemplatePath string `envconfig:"TEMPLATE_PATH" default:"./templates/relatorio.html"`
	StylePath    string `envconfig:"STYLE_PATH" default:"./static/css/estilo.css"`
	ReportDir    string `envconfig:"REPORT_DIR" default:"./relatorios"`
	Signature    string `envconfig:"REPORT_SIGNATURE" default:"Analista de Dados • Go • HTML • CSS"`
	TopProducts  int    `envconfig:"TOP_PRODUCTS" default:"10"`
	RecentSales  int    `envconfig:"RECENT_SALES" default:"20"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

var (
	validBackends   = []string{"csv", "sqlite", "memory"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case "csv":
		if c.LedgerPath == "" {
			errors = append(errors, "ledger path cannot be empty when using csv backend")
		} else if msg := ensureParentDir(c.LedgerPath); msg != "" {
			errors = append(errors, msg)
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if msg := ensureParentDir(c.SQLiteDBPath); msg != "" {
			errors = append(errors, msg)
		}
	}

	if c.TemplatePath == "" {
		errors = append(errors, "template path cannot be empty")
	}
	if c.StylePath == "" {
		errors = append(errors, "style path cannot be empty")
	}
	if c.ReportDir == "" {
		errors = append(errors, "report directory cannot be empty")
	}

	if c.TopProducts < 1 || c.TopProducts > 100 {
		errors = append(errors, fmt.Sprintf("invalid top products %d: must be between 1 and 100", c.TopProducts))
	}
	if c.RecentSales < 1 || c.RecentSales > 1000 {
		errors = append(errors, fmt.Sprintf("invalid recent sales %d: must be between 1 and 1000", c.RecentSales))
	}

	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validLogFormats))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ensureParentDir creates the directory holding path when it is missing and
// returns a validation message when that fails.
func ensureParentDir(path string) string {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return ""
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Sprintf("cannot create directory '%s': %v", dir, err)
		}
	}
	return ""
}
