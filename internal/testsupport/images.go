package testsupport

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// WritePNG writes a solid-color PNG fixture of the given size.
func WritePNG(t testing.TB, path string, width, height int, fill color.Color) {
	t.Helper()
	writeImage(t, path, width, height, fill, func(f *os.File, img image.Image) error {
		return png.Encode(f, img)
	})
}

// WriteJPEG writes a solid-color JPEG fixture of the given size.
func WriteJPEG(t testing.TB, path string, width, height int, fill color.Color) {
	t.Helper()
	writeImage(t, path, width, height, fill, func(f *os.File, img image.Image) error {
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	})
}

// WriteCorruptImage writes a file with an image extension but garbage bytes.
func WriteCorruptImage(t testing.TB, path string) {
	t.Helper()
	mkdirFor(t, path)
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeImage(t testing.TB, path string, width, height int, fill color.Color, encode func(*os.File, image.Image) error) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}

	mkdirFor(t, path)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func mkdirFor(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
}
