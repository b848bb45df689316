package imaging

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// FitWidth computes output dimensions for a target maximum width. Sources at
// or below the target keep their dimensions; larger sources scale down
// proportionally with the height rounded to the nearest pixel and clamped to
// a minimum of 1. Images are never upscaled.
func FitWidth(width, height, targetWidth int) (int, int) {
	if width <= targetWidth {
		return width, height
	}
	ratio := float64(targetWidth) / float64(width)
	scaledHeight := int(math.Round(float64(height) * ratio))
	if scaledHeight < 1 {
		scaledHeight = 1
	}
	return targetWidth, scaledHeight
}

// Scale resamples img to width x height using Catmull-Rom interpolation. When
// the dimensions already match, the input is returned untouched.
func Scale(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
