package naming

import "fmt"

// PageSuffix returns the name suffix for the given 1-based page index,
// zero-padded to three digits: 1 -> "-p001", 42 -> "-p042". Indexes past 999
// widen naturally instead of truncating.
func PageSuffix(index int) string {
	return fmt.Sprintf("-p%03d", index)
}
