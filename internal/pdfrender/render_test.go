package pdfrender

import (
	"context"
	"path/filepath"
	"testing"

	"assetpress/internal/testsupport"
)

func TestDPI(t *testing.T) {
	cases := []struct {
		zoom float64
		want int
	}{
		{1.0, 72},
		{2.0, 144},
		{1.5, 108},
		{0.5, 36},
		{0.001, 1},
	}
	for _, tc := range cases {
		if got := NewRenderer(tc.zoom).DPI(); got != tc.want {
			t.Errorf("DPI(zoom=%v) = %d, want %d", tc.zoom, got, tc.want)
		}
	}
}

func TestBuildArgs(t *testing.T) {
	args := buildArgs(144, 3, "/in/scan.pdf", "/tmp/work/page")
	want := []string{"-png", "-r", "144", "-f", "3", "-l", "3", "/in/scan.pdf", "/tmp/work/page"}
	if len(args) != len(want) {
		t.Fatalf("args = %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestRenderPageRejectsBadIndex(t *testing.T) {
	if _, err := NewRenderer(1.0).RenderPage(context.Background(), "x.pdf", 0); err == nil {
		t.Fatal("expected error for page 0")
	}
}

func TestPageCountMissingFile(t *testing.T) {
	if _, err := PageCount("/does/not/exist.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPageCountReadsFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.pdf")
	testsupport.WritePDF(t, path, 3)

	count, err := PageCount(path)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if count != 3 {
		t.Fatalf("PageCount = %d, want 3", count)
	}
}

func TestPageCountMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kaputt.pdf")
	testsupport.WriteCorruptPDF(t, path)

	if _, err := PageCount(path); err == nil {
		t.Fatal("expected error for malformed document")
	}
}
