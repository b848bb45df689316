// Package watch converts files as they appear in a source directory. It keeps
// one conversion session open so collision counters stay consistent across
// everything converted while watching.
package watch
