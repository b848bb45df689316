// Package preflight runs the pre-run environment checks: directory
// permissions, free disk space, and external codec availability.
package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"assetpress/internal/config"
	"assetpress/internal/deps"
)

// Result captures the outcome of one check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// minFreeBytes is the free-space floor below which the disk check fails.
const minFreeBytes = 256 << 20

// RunAll executes every check applicable to the given config.
func RunAll(cfg *config.Config) []Result {
	results := []Result{
		CheckWritableDir("Output directory", cfg.Paths.OutputDir),
		CheckDiskSpace("Output disk space", cfg.Paths.OutputDir),
	}

	for _, status := range deps.CheckBinaries(deps.Requirements(cfg.OutputFormat(), cfg.WantsPDF())) {
		results = append(results, Result{
			Name:   status.Name,
			Passed: status.Available,
			Detail: statusDetail(status),
		})
	}
	return results
}

// CheckSourceDir verifies the source directory exists and is readable.
func CheckSourceDir(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not set"}
	}
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not a directory", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", path)}
}

// CheckWritableDir verifies the directory exists (creating it if needed) and
// is writable.
func CheckWritableDir(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not set"}
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDiskSpace verifies the filesystem holding path has workable headroom.
func CheckDiskSpace(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not set"}
	}
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%s (%.1f GiB free)", path, float64(free)/(1<<30))
	if free < minFreeBytes {
		return Result{Name: name, Detail: detail + " - below minimum"}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

func statusDetail(status deps.Status) string {
	if status.Available {
		return status.Command + " found"
	}
	return status.Detail
}
