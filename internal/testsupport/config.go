package testsupport

import (
	"path/filepath"
	"testing"

	"datesift/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a validated config rooted in a unique temp directory
// per test, with any provided options applied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.OutputRoot = filepath.Join(t.TempDir(), config.OrganizedDirName)
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithThreads overrides the worker pool size on the test config.
func WithThreads(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Organize.Threads = n
	}
}

// WithRemoveDuplicates enables the duplicate removal pass on the test config.
func WithRemoveDuplicates() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Organize.RemoveDuplicates = true
	}
}
