package report

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every ConfigurationError.
	ErrConfiguration = errors.New("report configuration error")
	// ErrNoReports is returned by LatestDocument when nothing was generated yet.
	ErrNoReports = errors.New("no report found")
)

// ConfigurationError reports a missing or unusable report asset. Generation
// stops before anything is written.
type ConfigurationError struct {
	Asset string
	Path  string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Asset, e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
