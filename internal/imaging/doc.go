// Package imaging prepares decoded pixel buffers for encoding.
//
// It classifies a buffer's pixel mode, decides how the mode must change for a
// given output format (flatten onto white, convert to opaque RGB, convert to
// full alpha, or pass through), computes never-upscale target dimensions, and
// performs the actual conversions and scaling with golang.org/x/image/draw.
package imaging
