// Package naming derives CMS-friendly output names from source file names.
//
// The pipeline has three independent pieces:
//   - Slugify turns an arbitrary file stem into a lowercase ASCII slug
//     restricted to [a-z0-9-].
//   - NormalizePrefix and ApplyPrefix handle the optional filename prefix
//     without ever prefixing twice.
//   - PageSuffix numbers the pages of multi-page documents.
//
// Everything here is a pure string transform with no I/O; collision handling
// against the output directory lives in package target.
package naming
