package utils

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command with optional stdin and returns
// its standard output. Tests substitute a fake runner; production code uses
// RunCommand.
type CommandRunner func(ctx context.Context, stdin string, name string, args ...string) ([]byte, error)

// RunCommand runs an external command and returns its standard output.
// On a non-zero exit the returned error carries the command name and whatever
// the tool printed on stderr, so the user sees the external CLI's own message.
func RunCommand(ctx context.Context, stdin string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %s: %w", name, msg, err)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return stdout.Bytes(), nil
}
