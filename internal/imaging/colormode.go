package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"assetpress/internal/encoding"
)

// PixelMode classifies a decoded buffer for the color normalization rules.
type PixelMode int

const (
	// ModeOpaque is plain color or grayscale without an alpha channel.
	ModeOpaque PixelMode = iota
	// ModeAlpha carries a real alpha channel.
	ModeAlpha
	// ModePalette is palette-indexed color.
	ModePalette
	// ModeGrayAlpha is grayscale with an alpha channel. No standard library
	// decoder produces it today, but the rule table covers it so palette-free
	// gray+alpha sources from future decoders are handled.
	ModeGrayAlpha
	// ModeNonStandard is anything outside the web RGB family, such as the
	// CMYK buffers that come out of print-oriented JPEG and TIFF files.
	ModeNonStandard
)

func (m PixelMode) String() string {
	switch m {
	case ModeOpaque:
		return "opaque"
	case ModeAlpha:
		return "alpha"
	case ModePalette:
		return "palette"
	case ModeGrayAlpha:
		return "gray+alpha"
	case ModeNonStandard:
		return "non-standard"
	default:
		return "unknown"
	}
}

// Classify determines the pixel mode of a decoded buffer from its concrete type.
func Classify(img image.Image) PixelMode {
	switch img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64, *image.NYCbCrA:
		return ModeAlpha
	case *image.Paletted:
		return ModePalette
	case *image.Gray, *image.Gray16, *image.YCbCr:
		return ModeOpaque
	case *image.CMYK:
		return ModeNonStandard
	default:
		return ModeNonStandard
	}
}

// ColorPlan is the normalization decision for one buffer/format pairing.
type ColorPlan int

const (
	// PlanPassthrough leaves the buffer untouched.
	PlanPassthrough ColorPlan = iota
	// PlanFlattenWhite composites the buffer onto an opaque white background,
	// discarding transparency for formats that cannot carry it.
	PlanFlattenWhite
	// PlanOpaqueRGB converts to plain RGB without inventing an alpha channel.
	PlanOpaqueRGB
	// PlanFullAlpha converts to a full alpha-carrying color buffer.
	PlanFullAlpha
)

func (p ColorPlan) String() string {
	switch p {
	case PlanPassthrough:
		return "passthrough"
	case PlanFlattenWhite:
		return "flatten-white"
	case PlanOpaqueRGB:
		return "convert-rgb"
	case PlanFullAlpha:
		return "convert-rgba"
	default:
		return "unknown"
	}
}

// PlanFor applies the fixed normalization rule table. Alpha-incapable output
// flattens transparent, palette, and gray+alpha sources onto white and maps
// non-standard color spaces to RGB. Alpha-capable lossy output promotes
// palette and gray+alpha sources to full alpha and maps non-standard color
// spaces to RGB without inventing alpha. Lossless output promotes palette and
// gray+alpha sources to full alpha. Matching modes pass through.
func PlanFor(mode PixelMode, format encoding.Format) ColorPlan {
	if !format.SupportsAlpha() {
		switch mode {
		case ModeAlpha, ModePalette, ModeGrayAlpha:
			return PlanFlattenWhite
		case ModeNonStandard:
			return PlanOpaqueRGB
		default:
			return PlanPassthrough
		}
	}

	switch mode {
	case ModePalette, ModeGrayAlpha:
		return PlanFullAlpha
	case ModeNonStandard:
		return PlanOpaqueRGB
	default:
		return PlanPassthrough
	}
}

// ApplyPlan executes a color plan, returning the normalized buffer. The input
// is never mutated; passthrough returns it as-is.
func ApplyPlan(img image.Image, plan ColorPlan) image.Image {
	bounds := img.Bounds()
	switch plan {
	case PlanFlattenWhite:
		dst := image.NewNRGBA(bounds)
		draw.Draw(dst, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
		draw.Draw(dst, bounds, img, bounds.Min, draw.Over)
		return dst
	case PlanOpaqueRGB:
		dst := image.NewNRGBA(bounds)
		draw.Draw(dst, bounds, image.NewUniform(color.NRGBA{A: 255}), image.Point{}, draw.Src)
		draw.Draw(dst, bounds, img, bounds.Min, draw.Over)
		return dst
	case PlanFullAlpha:
		dst := image.NewNRGBA(bounds)
		draw.Draw(dst, bounds, img, bounds.Min, draw.Src)
		return dst
	default:
		return img
	}
}

// Normalize classifies img and applies the rule table for format in one step.
func Normalize(img image.Image, format encoding.Format) image.Image {
	return ApplyPlan(img, PlanFor(Classify(img), format))
}
