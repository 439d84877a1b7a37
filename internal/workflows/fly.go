package workflows

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"reflect"

	"github.com/PolarWolf314/manuka/internal/audit"
	"github.com/PolarWolf314/manuka/internal/envfile"
	merrors "github.com/PolarWolf314/manuka/internal/errors"
	"github.com/PolarWolf314/manuka/internal/fly"
	"github.com/PolarWolf314/manuka/internal/onepassword"

	"github.com/kballard/go-shellquote"
)

// FlyImportOptions configures the fly import workflow.
type FlyImportOptions struct {
	// App is the Fly.io application name.
	App string

	// OnePassword is the 1Password CLI client.
	OnePassword *onepassword.Client

	// Fly is the Fly.io CLI client.
	Fly *fly.Client
}

// FlyImportResult contains the outcome of a fly import operation.
type FlyImportResult struct {
	// Locator is the note locator (fly:<app-name>).
	Locator string

	// NoteTitle is the title of the matched secure note.
	NoteTitle string

	// App is the Fly.io application the secrets were set on.
	App string

	// KeysCount is the number of secrets set.
	KeysCount int

	// Output is the fly CLI's own message (typically the staged release).
	Output string
}

// FlyImport resolves the note for the app and uploads its fields as Fly.io
// application secrets in one batched CLI invocation.
func FlyImport(ctx context.Context, opts FlyImportOptions) (*FlyImportResult, error) {
	locator := "fly:" + opts.App

	item, err := opts.OnePassword.ResolveNote(ctx, locator)
	if err != nil {
		return nil, err
	}

	set := onepassword.SecretFields(item)
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: %s", merrors.ErrNoteEmpty, item.Title)
	}

	output, err := opts.Fly.SetSecrets(ctx, opts.App, set)
	if err != nil {
		return nil, err
	}

	stamp(ctx, opts.OnePassword, item.ID, onepassword.StampLastImported)
	audit.Log(audit.Entry{
		Operation: "fly-import",
		Locator:   locator,
		NoteTitle: item.Title,
		App:       opts.App,
		KeysCount: len(set),
	})

	return &FlyImportResult{
		Locator:   locator,
		NoteTitle: item.Title,
		App:       opts.App,
		KeysCount: len(set),
		Output:    output,
	}, nil
}

// EditorRunner opens path in an interactive editor and blocks until the
// editor exits. Tests substitute a function that rewrites the file.
type EditorRunner func(ctx context.Context, editor, path string) error

// RunEditor is the default EditorRunner. The editor command may carry its
// own arguments ("code --wait"); the file path is appended last. The editor
// is attached to the user's terminal.
func RunEditor(ctx context.Context, editor, path string) error {
	parts, err := shellquote.Split(editor)
	if err != nil || len(parts) == 0 {
		return fmt.Errorf("invalid editor command %q", editor)
	}

	cmd := exec.CommandContext(ctx, parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", parts[0], err)
	}

	return nil
}

// FlyEditOptions configures the fly edit workflow.
type FlyEditOptions struct {
	// App is the Fly.io application name.
	App string

	// OnePassword is the 1Password CLI client.
	OnePassword *onepassword.Client

	// Editor is the editor command to run.
	Editor string

	// RunEditor opens the temp file in the editor. Nil uses RunEditor.
	RunEditor EditorRunner
}

// FlyEditResult contains the outcome of a fly edit operation.
type FlyEditResult struct {
	// Locator is the note locator (fly:<app-name>).
	Locator string

	// NoteTitle is the title of the matched secure note.
	NoteTitle string

	// NoteID is the id of the matched note, for a follow-up import.
	NoteID string

	// Changed reports whether the edit modified any secrets.
	Changed bool

	// KeysCount is the number of secrets after the edit.
	KeysCount int

	// ChangedKeys are the keys the edit added or modified.
	ChangedKeys []string
}

// FlyEdit pulls the note's fields into a temp file, opens the editor, and
// pushes any changes back to the note. The push follows the conservative
// merge rule: deleting a line from the temp file does not delete the field
// from the note.
//
// The caller decides whether to follow up with FlyImport; FlyEdit itself
// never touches Fly.io.
func FlyEdit(ctx context.Context, opts FlyEditOptions) (*FlyEditResult, error) {
	locator := "fly:" + opts.App

	item, err := opts.OnePassword.ResolveNote(ctx, locator)
	if err != nil {
		return nil, err
	}

	set := onepassword.SecretFields(item)
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: %s", merrors.ErrNoteEmpty, item.Title)
	}

	tempFile, err := os.CreateTemp("", "manuka-*.env")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	tempFile.Close()
	defer os.Remove(tempPath)

	if err := envfile.Write(tempPath, set); err != nil {
		return nil, err
	}

	runEditor := opts.RunEditor
	if runEditor == nil {
		runEditor = RunEditor
	}
	if err := runEditor(ctx, opts.Editor, tempPath); err != nil {
		return nil, err
	}

	edited, err := envfile.Load(tempPath)
	if err != nil {
		return nil, err
	}

	result := &FlyEditResult{
		Locator:   locator,
		NoteTitle: item.Title,
		NoteID:    item.ID,
		KeysCount: len(edited),
	}

	if reflect.DeepEqual(edited, set) {
		return result, nil
	}

	result.Changed = true
	result.ChangedKeys = envfile.ChangedKeys(edited, set)

	if err := opts.OnePassword.PushFields(ctx, item.ID, edited); err != nil {
		return nil, err
	}

	stamp(ctx, opts.OnePassword, item.ID, onepassword.StampLastEdited)
	audit.Log(audit.Entry{
		Operation: "fly-edit",
		Locator:   locator,
		NoteTitle: item.Title,
		App:       opts.App,
		KeysCount: len(edited),
	})

	return result, nil
}
