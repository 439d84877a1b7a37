package utils

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	merrors "github.com/PolarWolf314/manuka/internal/errors"
)

// repositoryURLRegex matches both SSH and HTTPS git remote URLs:
//
//	git@github.com:acme/widgets.git
//	https://github.com/acme/widgets.git
var repositoryURLRegex = regexp.MustCompile(`^(https|git)(://|@)([^/:]+)[/:]([^/:]+)/(.+)\.git$`)

// ParseRepositoryURL extracts "<owner>/<repo>" from a git remote URL.
func ParseRepositoryURL(url string) (string, error) {
	match := repositoryURLRegex.FindStringSubmatch(strings.TrimSpace(url))
	if match == nil {
		return "", fmt.Errorf("%w: %q is not a recognized repository URL", merrors.ErrGitRemote, strings.TrimSpace(url))
	}
	return match[4] + "/" + match[5], nil
}

// RepositoryFromOrigin derives "<owner>/<repo>" from the origin remote of the
// repository containing the current directory.
func RepositoryFromOrigin(ctx context.Context, run CommandRunner) (string, error) {
	output, err := run(ctx, "", "git", "config", "--get", "remote.origin.url")
	if err != nil {
		return "", fmt.Errorf(`%w: either not in a git repository or remote "origin" is not set`, merrors.ErrGitRemote)
	}

	return ParseRepositoryURL(string(output))
}
