package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks bad parameters caught before a run starts.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration (paths, permissions).
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks failures of the external codec binaries.
	ErrExternalTool = errors.New("external tool error")
	// ErrNotFound marks missing inputs or capabilities.
	ErrNotFound = errors.New("not found")
	// ErrTransient marks per-item failures that do not disqualify the batch.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether an error must stop the run before any file is
// processed. Validation and configuration problems are fatal; everything else
// is recorded against the item it hit and the batch continues.
func Fatal(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrConfiguration)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
