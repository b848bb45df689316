package workflow_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"assetpress/internal/logging"
	"assetpress/internal/services"
	"assetpress/internal/testsupport"
	"assetpress/internal/workflow"
)

func TestRunConvertsBatchAndSurvivesBadFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	sourceDir := t.TempDir()

	testsupport.WritePNG(t, filepath.Join(sourceDir, "Messe Stand.png"), 64, 48, color.NRGBA{R: 200, A: 255})
	testsupport.WritePNG(t, filepath.Join(sourceDir, "logo.png"), 32, 32, color.NRGBA{G: 200, A: 255})
	testsupport.WriteJPEG(t, filepath.Join(sourceDir, "team.jpg"), 40, 30, color.NRGBA{B: 200, A: 255})
	testsupport.WritePNG(t, filepath.Join(sourceDir, "nested", "detail.png"), 20, 20, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	testsupport.WriteCorruptImage(t, filepath.Join(sourceDir, "broken.png"))

	runner := workflow.NewRunner(cfg, logging.NewNop(), nil)
	summary, err := runner.Run(context.Background(), sourceDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Succeeded != 4 {
		t.Fatalf("Succeeded = %d, want 4", summary.Succeeded)
	}
	if summary.Failed != 1 {
		t.Fatalf("Failed = %d, want 1", summary.Failed)
	}
	if summary.RunID == "" {
		t.Fatal("expected non-empty run ID")
	}

	for _, name := range []string{"messe-stand.png", "logo.png", "team.png", "detail.png"} {
		path := filepath.Join(cfg.Paths.OutputDir, name)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected output %s: %v", name, err)
		}
	}

	var failed *workflow.Outcome
	for i := range summary.Outcomes {
		if !summary.Outcomes[i].OK() {
			failed = &summary.Outcomes[i]
		}
	}
	if failed == nil {
		t.Fatal("expected a failed outcome for the corrupt file")
	}
	if filepath.Base(failed.Source) != "broken.png" {
		t.Fatalf("failed source = %s, want broken.png", failed.Source)
	}
	if services.Fatal(failed.Err) {
		t.Fatalf("per-file failure should not be fatal: %v", failed.Err)
	}
}

func TestRunAppliesPrefixAndResolvesCollisions(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPrefix("ABC123"))
	sourceDir := t.TempDir()

	testsupport.WritePNG(t, filepath.Join(sourceDir, "foto.png"), 16, 16, color.NRGBA{R: 255, A: 255})
	testsupport.WriteJPEG(t, filepath.Join(sourceDir, "foto.jpg"), 16, 16, color.NRGBA{G: 255, A: 255})

	runner := workflow.NewRunner(cfg, logging.NewNop(), nil)
	summary, err := runner.Run(context.Background(), sourceDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Failed != 0 {
		t.Fatalf("Failed = %d, want 0", summary.Failed)
	}

	targets := make(map[string]bool)
	for _, outcome := range summary.Outcomes {
		targets[filepath.Base(outcome.Target)] = true
	}
	if !targets["abc123-foto.png"] || !targets["abc123-foto-001.png"] {
		t.Fatalf("targets = %v, want abc123-foto.png and abc123-foto-001.png", targets)
	}
}

func TestRunDownscalesToTargetWidth(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTargetWidth(8))
	sourceDir := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(sourceDir, "wide.png"), 32, 16, color.NRGBA{B: 120, A: 255})

	runner := workflow.NewRunner(cfg, logging.NewNop(), nil)
	summary, err := runner.Run(context.Background(), sourceDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("Succeeded = %d, want 1", summary.Succeeded)
	}

	img := decodePNG(t, filepath.Join(cfg.Paths.OutputDir, "wide.png"))
	bounds := img.Bounds()
	if bounds.Dx() != 8 || bounds.Dy() != 4 {
		t.Fatalf("output size = %dx%d, want 8x4", bounds.Dx(), bounds.Dy())
	}
}

func TestStartSessionRejectsConcurrentRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	sourceDir := t.TempDir()

	runner := workflow.NewRunner(cfg, logging.NewNop(), nil)
	first, err := runner.StartSession(context.Background(), sourceDir)
	if err != nil {
		t.Fatalf("first StartSession: %v", err)
	}
	defer first.Close(context.Background())

	if _, err := runner.StartSession(context.Background(), sourceDir); err == nil {
		t.Fatal("expected second session to fail while lock is held")
	} else if !services.Fatal(err) {
		t.Fatalf("expected a fatal error, got %v", err)
	}
}

func TestStartSessionRejectsMissingSourceDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := workflow.NewRunner(cfg, logging.NewNop(), nil)

	if _, err := runner.StartSession(context.Background(), filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing source directory")
	}
}

func TestPlanListsTargetsWithoutWriting(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	sourceDir := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(sourceDir, "Grüner Bericht.png"), 16, 16, color.NRGBA{G: 128, A: 255})
	testsupport.WritePNG(t, filepath.Join(sourceDir, "logo.png"), 16, 16, color.NRGBA{R: 128, A: 255})

	runner := workflow.NewRunner(cfg, logging.NewNop(), nil)
	planned, err := runner.Plan(context.Background(), sourceDir)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(planned) != 2 {
		t.Fatalf("planned %d items, want 2", len(planned))
	}

	names := make(map[string]bool)
	for _, item := range planned {
		names[filepath.Base(item.Target)] = true
	}
	if !names["gruener-bericht.png"] || !names["logo.png"] {
		t.Fatalf("planned names = %v", names)
	}

	if entries, err := os.ReadDir(cfg.Paths.OutputDir); err == nil && len(entries) > 0 {
		t.Fatalf("dry run wrote %d entries to the output directory", len(entries))
	}
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func TestRunSurvivesMalformedDocument(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithExtensions(".png", ".pdf"))
	sourceDir := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(sourceDir, "logo.png"), 16, 16, color.NRGBA{R: 200, A: 255})
	testsupport.WriteCorruptPDF(t, filepath.Join(sourceDir, "kaputt.pdf"))

	runner := workflow.NewRunner(cfg, logging.NewNop(), nil)
	summary, err := runner.Run(context.Background(), sourceDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Succeeded != 1 || summary.Failed != 1 {
		t.Fatalf("Succeeded = %d, Failed = %d, want 1 and 1", summary.Succeeded, summary.Failed)
	}
	for _, outcome := range summary.Outcomes {
		if outcome.OK() {
			continue
		}
		if filepath.Base(outcome.Source) != "kaputt.pdf" {
			t.Fatalf("failed source = %s, want kaputt.pdf", outcome.Source)
		}
		if services.Fatal(outcome.Err) {
			t.Fatalf("document failure should not be fatal: %v", outcome.Err)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "logo.png")); err != nil {
		t.Fatalf("expected surviving output: %v", err)
	}
}

func TestPlanFansOutDocumentPages(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithExtensions(".png", ".pdf"))
	sourceDir := t.TempDir()
	testsupport.WritePDF(t, filepath.Join(sourceDir, "Scan.pdf"), 3)
	testsupport.WritePNG(t, filepath.Join(sourceDir, "logo.png"), 16, 16, color.NRGBA{G: 200, A: 255})

	runner := workflow.NewRunner(cfg, logging.NewNop(), nil)
	planned, err := runner.Plan(context.Background(), sourceDir)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(planned) != 4 {
		t.Fatalf("planned %d items, want 4", len(planned))
	}

	names := make(map[string]bool)
	for _, item := range planned {
		names[filepath.Base(item.Target)] = true
	}
	for _, want := range []string{"scan-p001.png", "scan-p002.png", "scan-p003.png", "logo.png"} {
		if !names[want] {
			t.Fatalf("planned names = %v, missing %s", names, want)
		}
	}
}
