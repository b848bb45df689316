package deps

import (
	"testing"

	"assetpress/internal/encoding"
)

func TestRequirements(t *testing.T) {
	if reqs := Requirements(encoding.FormatJPEG, false); len(reqs) != 0 {
		t.Fatalf("jpg without pdf needs no tools, got %v", reqs)
	}
	if reqs := Requirements(encoding.FormatPNG, false); len(reqs) != 0 {
		t.Fatalf("png without pdf needs no tools, got %v", reqs)
	}

	reqs := Requirements(encoding.FormatWebP, true)
	if len(reqs) != 2 {
		t.Fatalf("webp with pdf: got %d requirements", len(reqs))
	}
	if reqs[0].Command != "cwebp" || reqs[1].Command != "pdftoppm" {
		t.Fatalf("unexpected commands: %v", reqs)
	}

	reqs = Requirements(encoding.FormatAVIF, false)
	if len(reqs) != 1 || reqs[0].Command != "avifenc" {
		t.Fatalf("avif: got %v", reqs)
	}
}

func TestCheckBinaries(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "Shell", Command: "sh", Description: "always present on CI"},
		{Name: "Ghost", Command: "definitely-not-a-real-binary-437", Optional: true},
		{Name: "Blank", Command: "  "},
	})
	if len(statuses) != 3 {
		t.Fatalf("got %d statuses", len(statuses))
	}
	if !statuses[0].Available {
		t.Errorf("sh should be available: %+v", statuses[0])
	}
	if statuses[1].Available {
		t.Error("missing binary reported available")
	}
	if statuses[2].Available || statuses[2].Detail != "command not configured" {
		t.Errorf("blank command: %+v", statuses[2])
	}

	missing := Missing(statuses)
	if len(missing) != 2 {
		t.Fatalf("Missing returned %d entries", len(missing))
	}
}
