package testsupport

import (
	"path/filepath"
	"testing"

	"gifmaker/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config with quiet progress and a per-test log
// directory. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Progress.Style = "none"
	cfgVal.Logging.Dir = filepath.Join(base, "logs")

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

// WithOutputFilename overrides the artifact name.
func WithOutputFilename(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.Filename = name
	}
}

// WithDimensionPolicy sets frames.dimension_policy.
func WithDimensionPolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Frames.DimensionPolicy = policy
	}
}

// WithProgressStyle sets progress.style.
func WithProgressStyle(style string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Progress.Style = style
	}
}

// WithoutLogDir disables per-run log files.
func WithoutLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Dir = ""
	}
}
