package target

import (
	"fmt"
	"os"
	"path/filepath"
)

// Registry counts how many times each candidate filename has been claimed
// during the current run. Keys are the undisambiguated filename (base name
// plus extension); values are the highest counter handed out for that key.
type Registry struct {
	taken map[string]int
}

// NewRegistry returns an empty registry for a fresh run.
func NewRegistry() *Registry {
	return &Registry{taken: make(map[string]int)}
}

// Len reports how many distinct candidate names have been claimed.
func (r *Registry) Len() int {
	return len(r.taken)
}

// Allocator hands out unique output paths inside a single directory, backed
// by a run-scoped Registry. Not safe for concurrent use; the conversion loop
// calls it sequentially.
type Allocator struct {
	dir      string
	registry *Registry
}

// NewAllocator creates an allocator writing into dir, recording claims in the
// provided registry.
func NewAllocator(dir string, registry *Registry) *Allocator {
	return &Allocator{dir: dir, registry: registry}
}

// Dir returns the output directory the allocator writes into.
func (a *Allocator) Dir() string {
	return a.dir
}

// Allocate returns a path for base+ext that is unique among all paths handed
// out this run. The first claim of a name always returns the plain form, even
// if a file of that name is left on disk from an earlier run; rerunning into
// the same directory overwrites those. Repeat claims get "-NNN" counters,
// skipping over any counter value whose file already exists on disk, and the
// registry remembers the last counter used for each name.
func (a *Allocator) Allocate(base, ext string) string {
	candidate := base + ext
	if _, claimed := a.registry.taken[candidate]; !claimed {
		a.registry.taken[candidate] = 0
		return filepath.Join(a.dir, candidate)
	}

	num := a.registry.taken[candidate] + 1
	numbered := numberedName(base, num, ext)
	for pathExists(filepath.Join(a.dir, numbered)) {
		num++
		numbered = numberedName(base, num, ext)
	}
	a.registry.taken[candidate] = num
	return filepath.Join(a.dir, numbered)
}

func numberedName(base string, num int, ext string) string {
	return fmt.Sprintf("%s-%03d%s", base, num, ext)
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
