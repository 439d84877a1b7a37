package onepassword

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PolarWolf314/manuka/internal/envfile"
	merrors "github.com/PolarWolf314/manuka/internal/errors"
	"github.com/PolarWolf314/manuka/internal/utils"
)

// StampSection is the note section holding fields manuka writes for itself
// (sync timestamps). Fields under it are never treated as secrets.
const StampSection = "Generated by manuka"

// FileNameField is the optional metadata field naming the local env file.
const FileNameField = "file_name"

// Stamp field labels.
const (
	StampLastImported = "last imported at"
	StampLastEdited   = "last edited at"
)

// StampTimeFormat is the timestamp layout used for stamp fields.
const StampTimeFormat = "2006/01/02 15:04:05"

// Client shells out to the 1Password CLI (`op`). The CLI's session state is
// the only authentication; the client assumes `op` is already signed in.
type Client struct {
	binary string
	run    utils.CommandRunner
}

// NewClient returns a Client invoking the given op binary. A nil runner
// falls back to running real subprocesses.
func NewClient(binary string, run utils.CommandRunner) *Client {
	if binary == "" {
		binary = "op"
	}
	if run == nil {
		run = utils.RunCommand
	}
	return &Client{binary: binary, run: run}
}

// Section identifies the note section a field belongs to.
type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Field is a single named text field on a secure note.
type Field struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Value   string   `json:"value"`
	Purpose string   `json:"purpose,omitempty"`
	Section *Section `json:"section,omitempty"`
}

// Item is a full secure note as returned by `op item get`.
type Item struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// itemSummary is the subset of `op item list` output the resolver needs.
type itemSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ResolveNote finds the one secure note whose title contains locator and
// returns it in full.
//
// Returns ErrNoteNotFound when no title matches and ErrNoteAmbiguous when
// more than one does. The arity check is deliberate: silently picking the
// first of several matches could sync secrets into the wrong project.
func (c *Client) ResolveNote(ctx context.Context, locator string) (*Item, error) {
	summaries, err := c.listSecureNotes(ctx)
	if err != nil {
		return nil, err
	}

	var matches []itemSummary
	for _, summary := range summaries {
		if strings.Contains(summary.Title, locator) {
			matches = append(matches, summary)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: no secure note title contains %q", merrors.ErrNoteNotFound, locator)
	case 1:
		return c.getItem(ctx, matches[0].ID)
	default:
		titles := make([]string, len(matches))
		for i, match := range matches {
			titles[i] = match.Title
		}
		return nil, fmt.Errorf("%w: %q matches %s", merrors.ErrNoteAmbiguous, locator, strings.Join(titles, ", "))
	}
}

// listSecureNotes lists every secure note visible to the signed-in session.
func (c *Client) listSecureNotes(ctx context.Context) ([]itemSummary, error) {
	output, err := c.run(ctx, "", c.binary,
		"item", "list", "--categories", "Secure Note", "--format", "json")
	if err != nil {
		return nil, fmt.Errorf("failed to list secure notes: %w", err)
	}

	var summaries []itemSummary
	if err := json.Unmarshal(output, &summaries); err != nil {
		return nil, fmt.Errorf("failed to parse op item list output: %w", err)
	}

	return summaries, nil
}

// getItem fetches the full item by id.
func (c *Client) getItem(ctx context.Context, id string) (*Item, error) {
	output, err := c.run(ctx, "", c.binary, "item", "get", id, "--format", "json")
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}

	var item Item
	if err := json.Unmarshal(output, &item); err != nil {
		return nil, fmt.Errorf("failed to parse op item get output: %w", err)
	}

	return &item, nil
}

// SecretFields extracts the note's secret fields into a SecretSet, skipping
// the built-in notes field and all manuka metadata (file_name and anything
// under the stamp section).
func SecretFields(item *Item) envfile.SecretSet {
	set := envfile.SecretSet{}
	for _, field := range item.Fields {
		if !isSecretField(field) {
			continue
		}
		set[field.Label] = field.Value
	}
	return set
}

func isSecretField(field Field) bool {
	if field.Label == "" {
		return false
	}
	if field.ID == "notesPlain" || field.Purpose == "NOTES" {
		return false
	}
	if field.Label == FileNameField {
		return false
	}
	if field.Section != nil && field.Section.Label == StampSection {
		return false
	}
	return true
}

// FileName returns the value of the note's file_name field, or "" when the
// note does not configure one.
func FileName(item *Item) string {
	for _, field := range item.Fields {
		if field.Label == FileNameField {
			return field.Value
		}
	}
	return ""
}

// PushFields writes the given secrets onto the note as text fields in a
// single `op item edit` invocation. Existing fields are updated, new ones
// added. Fields absent from the set are left alone; removal must be done by
// hand in 1Password so that a stale local checkout can never destroy a
// secret that only exists remotely.
func (c *Client) PushFields(ctx context.Context, id string, set envfile.SecretSet) error {
	if len(set) == 0 {
		return nil
	}

	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	args := []string{"item", "edit", id}
	for _, key := range keys {
		// "." and "[" are section/type markers in op's assignment syntax. A
		// key carrying them would land the field somewhere else entirely.
		if strings.ContainsAny(key, ".[]=") {
			return fmt.Errorf("%w: key %s cannot be addressed as a plain field", merrors.ErrValueNotRepresentable, key)
		}
		args = append(args, fmt.Sprintf("%s[text]=%s", key, set[key]))
	}

	if _, err := c.run(ctx, "", c.binary, args...); err != nil {
		return fmt.Errorf("failed to update note fields: %w", err)
	}

	return nil
}

// WriteStamp records a sync timestamp on the note under the stamp section.
// Failures are returned but callers treat stamps as best-effort.
func (c *Client) WriteStamp(ctx context.Context, id, label, value string) error {
	assignment := fmt.Sprintf("%s.%s[text]=%s", StampSection, label, value)

	if _, err := c.run(ctx, "", c.binary, "item", "edit", id, assignment); err != nil {
		return fmt.Errorf("failed to write %s stamp: %w", label, err)
	}

	return nil
}
