package backend

import (
	"fmt"
	"strings"

	"vendas/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s (must be one of %s)",
			appConfig.DataBackend, strings.Join(GetBackendTypeStrings(), ", "))
	}

	return Config{
		Type:         backendType,
		LedgerPath:   appConfig.LedgerPath,
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s (must be one of %s)",
			c.Type, strings.Join(GetBackendTypeStrings(), ", "))
	}

	switch c.Type {
	case CSVBackend:
		if c.LedgerPath == "" {
			return fmt.Errorf("ledger path is required for csv backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{CSVBackend, SQLiteBackend, MemoryBackend}
}

// GetBackendTypeStrings returns all valid backend type strings
func GetBackendTypeStrings() []string {
	types := GetBackendTypes()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}
