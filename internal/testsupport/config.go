package testsupport

import (
	"path/filepath"
	"testing"

	"pdfmatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Acknowledgment is not required unless WithAcknowledgment is passed, and
// nothing is created on disk.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "pdfs")
	cfgVal.Paths.DatasetDir = filepath.Join(base, "datasets")
	cfgVal.Paths.OutputDir = filepath.Join(base, "results")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Matching.RequireAcknowledgment = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAcknowledgment toggles matching.require_acknowledgment.
func WithAcknowledgment(required bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.RequireAcknowledgment = required
	}
}

// WithSources restricts the run to the named sources.
func WithSources(sources ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.Sources = sources
	}
}

// WithWorkbook enables the aggregate workbook export.
func WithWorkbook() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Export.Workbook = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
