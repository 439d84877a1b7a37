package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/manuka/internal/configs"

	"github.com/google/uuid"
)

// Entry represents a single sync history entry.
type Entry struct {
	ID        string `json:"id"`   // Random UUID for the entry.
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // Local username performing the sync.
	Operation string `json:"op"`   // Operation name (local-get, local-push, fly-import, fly-edit).

	// Optional fields depending on operation.
	Locator   string `json:"locator,omitempty"`    // Note locator that was resolved.
	NoteTitle string `json:"note,omitempty"`       // Title of the matched note.
	App       string `json:"app,omitempty"`        // For fly operations.
	File      string `json:"file,omitempty"`       // For local operations.
	KeysCount int    `json:"keys_count,omitempty"` // Number of secrets moved.
}

// Log appends an entry to the sync history.
// If logging fails it returns silently; a sync must never fail just because
// its history entry could not be written.
func Log(entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.User == "" {
		entry.User = configs.UserManukaSettings.Username
	}

	logPath := LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the sync history file.
func LogPath() string {
	return filepath.Join(configs.UserManukaSettings.UserStatePath, "audit.jsonl")
}

// ReadEntries loads all sync history entries.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(LogPath())
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into history entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
