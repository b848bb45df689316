package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"assetpress/internal/config"
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
	cfgVal.Paths.OutputDir = filepath.Join(base, "output-web")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	// Stdlib codecs keep the tests independent of the external tools.
	cfgVal.Convert.Format = "png"
	cfgVal.Convert.Quality = -1
	cfgVal.Convert.Extensions = []string{".png", ".jpg", ".jpeg"}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if builder.cfg.Convert.Quality < 0 {
		builder.cfg.Convert.Quality = builder.cfg.OutputFormat().DefaultQuality()
	}
	return builder.cfg
}

// WithFormat sets the output format on the test config.
func WithFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Convert.Format = format
	}
}

// WithPrefix sets the filename prefix on the test config.
func WithPrefix(prefix string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Convert.Prefix = prefix
	}
}

// WithExtensions replaces the source extension set on the test config.
func WithExtensions(extensions ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Convert.Extensions = extensions
	}
}

// WithTargetWidth overrides the maximum output width.
func WithTargetWidth(width int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Convert.TargetWidth = width
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the default external binaries are
// stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"cwebp", "avifenc", "pdftoppm"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
