package pdfrender

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"rsc.io/pdf"

	"assetpress/internal/imaging"
)

// Binary is the external rasterizer command.
const Binary = "pdftoppm"

// baseDPI is the rendering resolution at zoom 1.0.
const baseDPI = 72

// Renderer rasterizes PDF pages at a fixed zoom factor.
type Renderer struct {
	zoom float64
}

// NewRenderer creates a renderer. Zoom must be positive; 1.0 is roughly
// 72 DPI, 2.0 roughly 144 DPI.
func NewRenderer(zoom float64) *Renderer {
	return &Renderer{zoom: zoom}
}

// DPI returns the effective render resolution.
func (r *Renderer) DPI() int {
	dpi := int(math.Round(baseDPI * r.zoom))
	if dpi < 1 {
		dpi = 1
	}
	return dpi
}

// PageCount reports how many pages the document has. The pdf library panics
// on malformed input, so the panic is recovered into the returned error to
// keep one broken document from taking down a batch.
func PageCount(path string) (count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			count = 0
			err = fmt.Errorf("open pdf %s: malformed document: %v", path, r)
		}
	}()

	doc, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf %s: %w", path, err)
	}
	count = doc.NumPage()
	if count < 1 {
		return 0, fmt.Errorf("open pdf %s: document has no pages", path)
	}
	return count, nil
}

// RenderPage rasterizes the 1-based page into a pixel buffer.
func (r *Renderer) RenderPage(ctx context.Context, path string, page int) (image.Image, error) {
	if page < 1 {
		return nil, fmt.Errorf("render %s: page index %d out of range", path, page)
	}

	workDir, err := os.MkdirTemp("", "assetpress-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}
	defer os.RemoveAll(workDir)

	prefix := filepath.Join(workDir, "page")
	args := buildArgs(r.DPI(), page, path, prefix)
	cmd := exec.CommandContext(ctx, Binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return nil, fmt.Errorf("%s failed for %s page %d: %w (%s)", Binary, path, page, err, detail)
		}
		return nil, fmt.Errorf("%s failed for %s page %d: %w", Binary, path, page, err)
	}

	rendered, err := findRendered(workDir)
	if err != nil {
		return nil, fmt.Errorf("render %s page %d: %w", path, page, err)
	}
	img, _, err := imaging.Decode(rendered)
	if err != nil {
		return nil, fmt.Errorf("render %s page %d: %w", path, page, err)
	}
	return img, nil
}

// buildArgs assembles the pdftoppm invocation for a single page.
func buildArgs(dpi, page int, path, prefix string) []string {
	return []string{
		"-png",
		"-r", strconv.Itoa(dpi),
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		path,
		prefix,
	}
}

// findRendered locates the single PNG pdftoppm wrote into the work dir.
func findRendered(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "page*.png"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no rasterized page produced")
	}
	return matches[0], nil
}
