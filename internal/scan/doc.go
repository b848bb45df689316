// Package scan discovers convertible source files under a directory tree.
//
// Selection is by case-insensitive extension membership; hidden directories
// and the output directory (when nested inside the source tree) are skipped,
// and callers can drop additional paths with doublestar exclude globs matched
// against the source-relative path.
package scan
