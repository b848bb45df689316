package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"assetpress/internal/encoding"
)

// Requirement defines an external tool the converter relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external tools relevant to a run: the encoder for
// the requested output format (when it is not built in) and the PDF page
// rasterizer when documents are in scope.
func Requirements(format encoding.Format, includePDF bool) []Requirement {
	var reqs []Requirement
	if binary := format.ExternalEncoder(); binary != "" {
		reqs = append(reqs, Requirement{
			Name:        strings.ToUpper(format.String()) + " encoder",
			Command:     binary,
			Description: fmt.Sprintf("Required to encode %s output", format),
		})
	}
	if includePDF {
		reqs = append(reqs, Requirement{
			Name:        "PDF rasterizer",
			Command:     "pdftoppm",
			Description: "Required to render PDF pages (poppler-utils)",
		})
	}
	return reqs
}

// AllRequirements lists every external tool any configuration can use,
// for the status command.
func AllRequirements() []Requirement {
	return []Requirement{
		{Name: "WEBP encoder", Command: "cwebp", Description: "Required to encode webp output", Optional: true},
		{Name: "AVIF encoder", Command: "avifenc", Description: "Required to encode avif output", Optional: true},
		{Name: "PDF rasterizer", Command: "pdftoppm", Description: "Required to render PDF pages (poppler-utils)", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Missing filters statuses down to the unavailable ones.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available {
			missing = append(missing, status)
		}
	}
	return missing
}
