package fly

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/manuka/internal/envfile"
	"github.com/PolarWolf314/manuka/internal/utils"
)

// Client shells out to the Fly.io CLI. Like the 1Password client it assumes
// the CLI is already authenticated.
type Client struct {
	binary string
	run    utils.CommandRunner
}

// NewClient returns a Client invoking the given fly binary. A nil runner
// falls back to running real subprocesses.
func NewClient(binary string, run utils.CommandRunner) *Client {
	if binary == "" {
		binary = "fly"
	}
	if run == nil {
		run = utils.RunCommand
	}
	return &Client{binary: binary, run: run}
}

// SetSecrets uploads the set as application secrets on app in one batched
// `fly secrets import` invocation, with KEY=value lines on stdin. Stdin
// keeps secret values out of the process argument list. Secrets absent from
// the set are left alone; `fly secrets import` is additive.
//
// Returns the CLI's own output (typically the staged release description)
// for display.
func (c *Client) SetSecrets(ctx context.Context, app string, set envfile.SecretSet) (string, error) {
	stdin, err := envfile.Serialize(set)
	if err != nil {
		return "", err
	}

	output, err := c.run(ctx, stdin, c.binary, "secrets", "import", "--app", app)
	if err != nil {
		return "", fmt.Errorf("failed to set secrets on app %s: %w", app, err)
	}

	return strings.TrimSpace(string(output)), nil
}
