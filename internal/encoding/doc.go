// Package encoding defines the closed set of output formats and writes
// encoded image files.
//
// PNG and JPEG are produced with the standard library codecs. WebP and AVIF
// are produced by handing a temporary PNG to the external cwebp and avifenc
// tools, mirroring how the rest of the pipeline drives external binaries.
// Callers are expected to check tool availability through package deps before
// starting a run.
package encoding
