package testsupport

import (
	"path/filepath"
	"testing"

	"boothvpm/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.RepositoryDir = filepath.Join(base, "repository")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithPackagingEnabled turns on repository packaging.
func WithPackagingEnabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Repository.Enabled = true
	}
}

// WithAutoPackage enables packaging and packaging on import.
func WithAutoPackage() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Repository.Enabled = true
		b.cfg.Repository.AutoPackage = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
