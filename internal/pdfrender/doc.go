// Package pdfrender turns PDF pages into pixel buffers.
//
// Page enumeration is done in-process with rsc.io/pdf; the actual
// rasterization is delegated to the external pdftoppm tool (poppler-utils),
// which writes a PNG per page that is decoded back into memory. The zoom
// factor maps onto render DPI with 1.0 equal to 72 DPI.
package pdfrender
