package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/PolarWolf314/manuka/internal/audit"
	merrors "github.com/PolarWolf314/manuka/internal/errors"
)

func TestMain(m *testing.M) {
	// Plain-text assertions below rely on color being off.
	os.Setenv("NO_COLOR", "1")
	os.Exit(m.Run())
}

func TestErrorMessageKnownErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{"note not found", merrors.ErrNoteNotFound, "Create a secure note"},
		{"ambiguous", merrors.ErrNoteAmbiguous, "exactly one matches"},
		{"git remote", merrors.ErrGitRemote, "origin"},
		{"env file missing", merrors.ErrEnvFileNotFound, "manuka local get"},
		{"empty note", merrors.ErrNoteEmpty, "at least one field"},
		{"unrepresentable value", merrors.ErrValueNotRepresentable, "adjust it in 1Password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := errorMessage(fmt.Errorf("context: %w", tt.err))
			if !strings.Contains(msg, "✗") {
				t.Errorf("errorMessage() = %q, want an error marker", msg)
			}
			if !strings.Contains(msg, tt.wantHint) {
				t.Errorf("errorMessage() = %q, want hint containing %q", msg, tt.wantHint)
			}
		})
	}
}

func TestErrorMessageUnknownError(t *testing.T) {
	msg := errorMessage(errors.New("something odd"))
	if !strings.Contains(msg, "something odd") {
		t.Errorf("errorMessage() = %q, want the raw error text", msg)
	}
}

func TestFormatLogEntry(t *testing.T) {
	entry := audit.Entry{
		Timestamp: "2026-08-31T09:30:00.000000Z",
		Operation: "fly-import",
		Locator:   "fly:myapp",
		App:       "myapp",
		KeysCount: 3,
	}

	line := formatLogEntry(entry)
	for _, want := range []string{"fly-import", "fly:myapp", "app=myapp", "3 key(s)"} {
		if !strings.Contains(line, want) {
			t.Errorf("formatLogEntry() = %q, want it to contain %q", line, want)
		}
	}
}

func TestFormatLogEntryOmitsEmptyFields(t *testing.T) {
	entry := audit.Entry{
		Timestamp: "2026-08-31T09:30:00.000000Z",
		Operation: "local-get",
		Locator:   "repo:acme/widgets",
		File:      ".env",
	}

	line := formatLogEntry(entry)
	if strings.Contains(line, "app=") {
		t.Errorf("formatLogEntry() = %q, should omit the app field", line)
	}
	if !strings.Contains(line, "file=.env") {
		t.Errorf("formatLogEntry() = %q, want file=.env", line)
	}
}
