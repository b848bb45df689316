package encoding

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
)

// Encoder writes normalized pixel buffers to disk in the requested format.
// It is stateless apart from the external tool names, which are fixed.
type Encoder struct{}

// NewEncoder constructs an encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode writes img to path in the given format. Quality is clamped to 0-100
// and ignored for lossless output. The parent directory must already exist.
func (e *Encoder) Encode(ctx context.Context, img image.Image, format Format, quality int, path string) error {
	quality = clampQuality(quality)

	switch format {
	case FormatJPEG:
		return writeJPEG(img, quality, path)
	case FormatPNG:
		return writePNG(img, path)
	case FormatWebP, FormatAVIF:
		return e.encodeExternal(ctx, img, format, quality, path)
	default:
		return fmt.Errorf("encode %s: unsupported format", path)
	}
}

func writeJPEG(img image.Image, quality int, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: quality}); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("encode jpeg %s: %w", path, err)
	}
	return out.Close()
}

func writePNG(img image.Image, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(out, img); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("encode png %s: %w", path, err)
	}
	return out.Close()
}

// encodeExternal stages the pixels as a temporary PNG next to the target and
// hands it to the external encoder binary.
func (e *Encoder) encodeExternal(ctx context.Context, img image.Image, format Format, quality int, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".assetpress-*.png")
	if err != nil {
		return fmt.Errorf("stage temp png: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(tmp, img); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("stage temp png: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("stage temp png: %w", err)
	}

	switch format {
	case FormatWebP:
		return runEncoderTool(ctx, path, "cwebp", "-quiet", "-q", fmt.Sprint(quality), "-m", "6", tmpPath, "-o", path)
	case FormatAVIF:
		return runEncoderTool(ctx, path, "avifenc", "-q", fmt.Sprint(quality), tmpPath, path)
	default:
		return fmt.Errorf("encode %s: no external tool for %s", path, format)
	}
}

func clampQuality(q int) int {
	if q < 0 {
		return 0
	}
	if q > 100 {
		return 100
	}
	return q
}
