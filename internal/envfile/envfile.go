package envfile

import (
	"fmt"
	"os"
	"sort"
	"strings"

	merrors "github.com/PolarWolf314/manuka/internal/errors"

	"github.com/joho/godotenv"
)

// SecretSet is an unordered mapping from key to secret value. Keys are
// case-sensitive; assigning an existing key overwrites its value.
type SecretSet map[string]string

// Parse reads env-syntax text (KEY=value, one per line) into a SecretSet.
func Parse(content string) (SecretSet, error) {
	values, err := godotenv.Unmarshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env content: %w", err)
	}
	return SecretSet(values), nil
}

// Load reads and parses the env file at path.
// Returns ErrEnvFileNotFound if the file does not exist.
func Load(path string) (SecretSet, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", merrors.ErrEnvFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(string(content))
}

// Serialize renders the set as env-syntax text, one KEY=value per line with
// keys sorted for deterministic output. Keys must be non-empty. Values are
// written unquoted, so any value Parse would read back differently is not
// representable in this narrow syntax.
func Serialize(set SecretSet) (string, error) {
	keys := make([]string, 0, len(set))
	for key := range set {
		if key == "" {
			return "", fmt.Errorf("%w: empty key", merrors.ErrValueNotRepresentable)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		value := set[key]
		if !survivesUnquoted(value) {
			return "", fmt.Errorf("%w: value of %s would not survive an unquoted write", merrors.ErrValueNotRepresentable, key)
		}
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(value)
		b.WriteString("\n")
	}

	return b.String(), nil
}

// survivesUnquoted reports whether an unquoted value parses back unchanged:
// no "=" or newline, no "#" (read as a comment), no leading quote character
// (stripped on read), and no surrounding whitespace (trimmed on read).
func survivesUnquoted(value string) bool {
	if strings.ContainsAny(value, "=\n#") {
		return false
	}
	if strings.HasPrefix(value, `"`) || strings.HasPrefix(value, "'") {
		return false
	}
	return value == strings.TrimSpace(value)
}

// Write serializes the set and writes it to path, readable only by the owner.
func Write(path string, set SecretSet) error {
	content, err := Serialize(set)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// ChangedKeys returns the keys of local that are new or hold a different
// value than in remote, sorted. This is what a push will actually modify;
// keys only present in remote are never touched.
func ChangedKeys(local, remote SecretSet) []string {
	var changed []string
	for key, value := range local {
		if remoteValue, ok := remote[key]; !ok || remoteValue != value {
			changed = append(changed, key)
		}
	}
	sort.Strings(changed)
	return changed
}
