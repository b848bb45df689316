package main

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"assetpress/internal/config"
	"assetpress/internal/testsupport"
)

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func setupCLIConfig(t *testing.T) (string, *config.Config) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)
	return configPath, cfg
}

func TestConvertCommandConvertsDirectory(t *testing.T) {
	configPath, cfg := setupCLIConfig(t)
	sourceDir := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(sourceDir, "Messe Stand.png"), 16, 16, color.NRGBA{R: 255, A: 255})

	output, err := runCLI(t, "--config", configPath, "convert", sourceDir)
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Converted 1, failed 0") {
		t.Fatalf("unexpected output:\n%s", output)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "messe-stand.png")); err != nil {
		t.Fatalf("expected converted file: %v", err)
	}
}

func TestConvertCommandDryRunWritesNothing(t *testing.T) {
	configPath, cfg := setupCLIConfig(t)
	sourceDir := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(sourceDir, "plakat.png"), 16, 16, color.NRGBA{G: 255, A: 255})

	output, err := runCLI(t, "--config", configPath, "convert", "--dry-run", sourceDir)
	if err != nil {
		t.Fatalf("convert --dry-run: %v\n%s", err, output)
	}
	if !strings.Contains(output, "plakat.png") || !strings.Contains(output, "1 outputs planned") {
		t.Fatalf("unexpected output:\n%s", output)
	}
	if entries, err := os.ReadDir(cfg.Paths.OutputDir); err == nil && len(entries) > 0 {
		t.Fatalf("dry run wrote files: %v", entries)
	}
}

func TestConvertCommandFlagOverrides(t *testing.T) {
	configPath, cfg := setupCLIConfig(t)
	sourceDir := t.TempDir()
	outDir := filepath.Join(testsupport.BaseDir(cfg), "elsewhere")
	testsupport.WritePNG(t, filepath.Join(sourceDir, "bild.png"), 16, 16, color.NRGBA{B: 255, A: 255})

	output, err := runCLI(t, "--config", configPath, "convert",
		"--out", outDir, "--prefix", "K41", "--width", "8", sourceDir)
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, output)
	}
	if _, err := os.Stat(filepath.Join(outDir, "k41-bild.png")); err != nil {
		t.Fatalf("expected prefixed file in override dir: %v", err)
	}
}

func TestConvertCommandRejectsBadFormat(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	if _, err := runCLI(t, "--config", configPath, "convert", "--format", "heic", t.TempDir()); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestReportCommandShowsLastRun(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	sourceDir := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(sourceDir, "team.png"), 16, 16, color.NRGBA{R: 128, A: 255})
	testsupport.WriteCorruptImage(t, filepath.Join(sourceDir, "kaputt.png"))

	if output, err := runCLI(t, "--config", configPath, "convert", sourceDir); err != nil {
		t.Fatalf("convert: %v\n%s", err, output)
	}

	output, err := runCLI(t, "--config", configPath, "report")
	if err != nil {
		t.Fatalf("report: %v\n%s", err, output)
	}
	if !strings.Contains(output, "converted: 1, failed: 1") {
		t.Fatalf("unexpected report:\n%s", output)
	}
	if !strings.Contains(output, "kaputt.png") {
		t.Fatalf("expected failed source in report:\n%s", output)
	}
}

func TestReportCommandWithoutRuns(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	output, err := runCLI(t, "--config", configPath, "report")
	if err != nil {
		t.Fatalf("report: %v\n%s", err, output)
	}
	if !strings.Contains(output, "No runs recorded yet") {
		t.Fatalf("unexpected output:\n%s", output)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	output, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, output)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config: %v", err)
	}

	if output, err = runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatalf("expected error without --overwrite, got:\n%s", output)
	}
	if output, err = runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v\n%s", err, output)
	}

	output, err = runCLI(t, "--config", target, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v\n%s", err, output)
	}
	if !strings.Contains(output, "[convert]") || !strings.Contains(output, "format") {
		t.Fatalf("unexpected show output:\n%s", output)
	}
}

func TestStatusCommandReportsChecks(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	output, _ := runCLI(t, "--config", configPath, "status")
	if !strings.Contains(output, "Check") || !strings.Contains(output, "pdftoppm") {
		t.Fatalf("unexpected status output:\n%s", output)
	}
}
