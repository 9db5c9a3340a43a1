package testsupport

import (
	"path/filepath"
	"testing"

	"slate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Catalog.APIKey = "test"
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithCatalogKey sets the catalog API key on the test config.
func WithCatalogKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Catalog.APIKey = key
	}
}

// WithBudget overrides the default minute budgets on the test config.
func WithBudget(weekday, weekend int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Budget.WeekdayMinutes = weekday
		cfg.Budget.WeekendMinutes = weekend
	}
}
