package encoding

import (
	"fmt"
	"strings"
)

// Format enumerates the supported output formats. The zero value is invalid
// so an unset format is never mistaken for a real one.
type Format int

const (
	FormatInvalid Format = iota
	FormatAVIF
	FormatWebP
	FormatPNG
	FormatJPEG
)

// Formats lists every valid output format in presentation order.
func Formats() []Format {
	return []Format{FormatAVIF, FormatWebP, FormatPNG, FormatJPEG}
}

// ParseFormat resolves a user-supplied format name. "jpeg" is accepted as an
// alias for "jpg". Unknown names return FormatInvalid and an error.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "avif":
		return FormatAVIF, nil
	case "webp":
		return FormatWebP, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	default:
		names := make([]string, 0, len(Formats()))
		for _, f := range Formats() {
			names = append(names, f.String())
		}
		return FormatInvalid, fmt.Errorf("unsupported output format %q (expected one of %s)", name, strings.Join(names, ", "))
	}
}

// String returns the canonical lowercase name.
func (f Format) String() string {
	switch f {
	case FormatAVIF:
		return "avif"
	case FormatWebP:
		return "webp"
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpg"
	default:
		return "invalid"
	}
}

// Ext returns the output filename extension, including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// SupportsAlpha reports whether the format can carry an alpha channel.
// JPEG cannot; transparent sources headed for it must be flattened first.
func (f Format) SupportsAlpha() bool {
	return f != FormatJPEG
}

// Lossless reports whether the format is lossless, in which case the quality
// setting is ignored.
func (f Format) Lossless() bool {
	return f == FormatPNG
}

// DefaultQuality returns the quality used when the caller supplies none:
// 80 for the lossy formats, 0 for PNG where quality has no meaning.
func (f Format) DefaultQuality() int {
	if f.Lossless() {
		return 0
	}
	return 80
}

// ExternalEncoder returns the name of the external binary that encodes this
// format, or "" when the standard library codec is used.
func (f Format) ExternalEncoder() string {
	switch f {
	case FormatWebP:
		return "cwebp"
	case FormatAVIF:
		return "avifenc"
	default:
		return ""
	}
}
