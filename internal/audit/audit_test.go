package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/manuka/internal/configs"
)

func withTempStateDir(t *testing.T) {
	t.Helper()

	original := configs.UserManukaSettings
	tempDir := t.TempDir()
	configs.UserManukaSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempDir, "config"),
		UserStatePath:   filepath.Join(tempDir, "state"),
		Username:        "testuser",
	}

	t.Cleanup(func() {
		configs.UserManukaSettings = original
	})
}

func TestLogAndReadEntries(t *testing.T) {
	withTempStateDir(t)

	Log(Entry{Operation: "local-get", Locator: "repo:acme/widgets", File: ".env", KeysCount: 3})
	Log(Entry{Operation: "fly-import", Locator: "fly:myapp", App: "myapp", KeysCount: 1})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries(): %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ReadEntries() returned %d entries, want 2", len(entries))
	}

	first := entries[0]
	if first.Operation != "local-get" {
		t.Errorf("first.Operation = %q, want %q", first.Operation, "local-get")
	}
	if first.User != "testuser" {
		t.Errorf("first.User = %q, want %q", first.User, "testuser")
	}
	if first.ID == "" {
		t.Error("first.ID should be populated automatically")
	}
	if first.Timestamp == "" {
		t.Error("first.Timestamp should be populated automatically")
	}
	if first.KeysCount != 3 {
		t.Errorf("first.KeysCount = %d, want 3", first.KeysCount)
	}

	second := entries[1]
	if second.App != "myapp" {
		t.Errorf("second.App = %q, want %q", second.App, "myapp")
	}
}

func TestLogNeverRecordsSecretValues(t *testing.T) {
	withTempStateDir(t)

	Log(Entry{Operation: "local-push", Locator: "repo:acme/widgets", KeysCount: 1})

	data, err := os.ReadFile(LogPath())
	if err != nil {
		t.Fatalf("ReadFile(): %v", err)
	}
	if strings.Contains(string(data), "keys\":[") {
		t.Errorf("audit log should hold counts only, got: %s", data)
	}
}

func TestParseEntriesSkipsMalformedLines(t *testing.T) {
	data := []byte(`{"id":"1","op":"local-get"}` + "\n" +
		"not json\n" +
		`{"id":"2","op":"fly-import"}` + "\n")

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries(): %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ParseEntries() returned %d entries, want 2", len(entries))
	}
	if entries[0].ID != "1" || entries[1].ID != "2" {
		t.Errorf("ParseEntries() = %v, want ids 1 and 2", entries)
	}
}

func TestParseEntriesEmpty(t *testing.T) {
	entries, err := ParseEntries(nil)
	if err != nil {
		t.Fatalf("ParseEntries(nil): %v", err)
	}
	if entries != nil {
		t.Errorf("ParseEntries(nil) = %v, want nil", entries)
	}
}
