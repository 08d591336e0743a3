// Package clients wraps the external command line tools the pipeline
// shells out to: the Montreal Forced Aligner and ffprobe. Both are
// consumed as black boxes; this package only builds argv, runs the
// process, and decodes what comes back.
package clients

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// output runs a command and captures combined output, trimmed.
func output(ctx context.Context, binary string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	out, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(out))
	if err != nil {
		return text, fmt.Errorf("%s %s: %w: %s", binary, strings.Join(args, " "), err, text)
	}
	return text, nil
}
