package encoding

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// runEncoderTool invokes an external encoder binary and surfaces its output
// when it fails. The target file is removed on failure so a bad run never
// leaves a truncated output behind.
func runEncoderTool(ctx context.Context, target, binary string, args ...string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		_ = os.Remove(target)
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return fmt.Errorf("%s failed for %s: %w (%s)", binary, target, err, detail)
		}
		return fmt.Errorf("%s failed for %s: %w", binary, target, err)
	}
	return nil
}
