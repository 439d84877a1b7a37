package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/PolarWolf314/manuka/internal/audit"
	"github.com/PolarWolf314/manuka/internal/configs"
	"github.com/PolarWolf314/manuka/internal/envfile"
	merrors "github.com/PolarWolf314/manuka/internal/errors"
	"github.com/PolarWolf314/manuka/internal/fly"
	"github.com/PolarWolf314/manuka/internal/onepassword"
)

// fakeNote is the note state behind the fake op CLI.
type fakeNote struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Fields []fakeField `json:"fields"`

	edits [][]string
}

type fakeField struct {
	ID      string       `json:"id"`
	Label   string       `json:"label"`
	Value   string       `json:"value"`
	Purpose string       `json:"purpose,omitempty"`
	Section *fakeSection `json:"section,omitempty"`
}

type fakeSection struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// testEnv bundles the fakes for one workflow test.
type testEnv struct {
	notes     []*fakeNote
	originURL string
	flyCalls  []flyCall
}

type flyCall struct {
	args  []string
	stdin string
}

func (e *testEnv) opRun(ctx context.Context, stdin, name string, args ...string) ([]byte, error) {
	switch {
	case len(args) >= 2 && args[0] == "item" && args[1] == "list":
		type summary struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		}
		summaries := make([]summary, len(e.notes))
		for i, note := range e.notes {
			summaries[i] = summary{ID: note.ID, Title: note.Title}
		}
		return json.Marshal(summaries)

	case len(args) >= 3 && args[0] == "item" && args[1] == "get":
		for _, note := range e.notes {
			if note.ID == args[2] {
				return json.Marshal(note)
			}
		}
		return nil, fmt.Errorf(`op: "%s" isn't an item`, args[2])

	case len(args) >= 3 && args[0] == "item" && args[1] == "edit":
		for _, note := range e.notes {
			if note.ID == args[2] {
				note.edits = append(note.edits, args[3:])
				return []byte("{}"), nil
			}
		}
		return nil, fmt.Errorf(`op: "%s" isn't an item`, args[2])
	}

	return nil, fmt.Errorf("unexpected op invocation: %v", args)
}

func (e *testEnv) gitRun(ctx context.Context, stdin, name string, args ...string) ([]byte, error) {
	if e.originURL == "" {
		return nil, errors.New("exit status 1")
	}
	return []byte(e.originURL + "\n"), nil
}

func (e *testEnv) flyRun(ctx context.Context, stdin, name string, args ...string) ([]byte, error) {
	e.flyCalls = append(e.flyCalls, flyCall{args: args, stdin: stdin})
	return []byte("Secrets are staged for the first deployment\n"), nil
}

// setup redirects config/state to temp dirs and chdirs into a scratch dir.
func setup(t *testing.T) *testEnv {
	t.Helper()

	original := configs.UserManukaSettings
	tempDir := t.TempDir()
	configs.UserManukaSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempDir, "config"),
		UserStatePath:   filepath.Join(tempDir, "state"),
		Username:        "testuser",
	}

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	workDir := t.TempDir()
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change back to original directory: %v", err)
		}
		configs.UserManukaSettings = original
	})

	return &testEnv{originURL: "git@github.com:acme/widgets.git"}
}

func (e *testEnv) localOptions() LocalOptions {
	return LocalOptions{
		OnePassword: onepassword.NewClient("op", e.opRun),
		Git:         e.gitRun,
		Config:      &configs.UserConfig{},
	}
}

func widgetsNote() *fakeNote {
	return &fakeNote{
		ID:    "a1",
		Title: "repo:acme/widgets",
		Fields: []fakeField{
			{ID: "notesPlain", Label: "notesPlain", Purpose: "NOTES"},
			{ID: "f1", Label: "API_KEY", Value: "abc"},
			{ID: "f2", Label: "DB_URL", Value: "foo"},
		},
	}
}

func TestLocalGetWritesEnvFile(t *testing.T) {
	env := setup(t)
	env.notes = []*fakeNote{widgetsNote()}

	result, err := LocalGet(context.Background(), env.localOptions())
	if err != nil {
		t.Fatalf("LocalGet(): %v", err)
	}

	if result.Locator != "repo:acme/widgets" {
		t.Errorf("result.Locator = %q, want %q", result.Locator, "repo:acme/widgets")
	}
	if result.File != ".env" {
		t.Errorf("result.File = %q, want %q", result.File, ".env")
	}
	if result.KeysCount != 2 {
		t.Errorf("result.KeysCount = %d, want 2", result.KeysCount)
	}

	written, err := envfile.Load(".env")
	if err != nil {
		t.Fatalf("Load(.env): %v", err)
	}
	want := envfile.SecretSet{"API_KEY": "abc", "DB_URL": "foo"}
	if !reflect.DeepEqual(written, want) {
		t.Errorf(".env contents = %v, want %v", written, want)
	}
}

func TestLocalGetHonorsFileNameField(t *testing.T) {
	env := setup(t)
	note := widgetsNote()
	note.Fields = append(note.Fields, fakeField{ID: "f3", Label: "file_name", Value: ".env.production"})
	env.notes = []*fakeNote{note}

	result, err := LocalGet(context.Background(), env.localOptions())
	if err != nil {
		t.Fatalf("LocalGet(): %v", err)
	}

	if result.File != ".env.production" {
		t.Errorf("result.File = %q, want %q", result.File, ".env.production")
	}
	if _, err := os.Stat(".env.production"); err != nil {
		t.Errorf("expected .env.production to exist: %v", err)
	}

	// The file_name field itself must not leak into the env file.
	written, _ := envfile.Load(".env.production")
	if _, ok := written["file_name"]; ok {
		t.Error("file_name metadata leaked into the env file")
	}
}

func TestLocalGetNoMatchingNote(t *testing.T) {
	env := setup(t)
	env.notes = []*fakeNote{{ID: "z9", Title: "fly:otherapp"}}

	_, err := LocalGet(context.Background(), env.localOptions())
	if !errors.Is(err, merrors.ErrNoteNotFound) {
		t.Fatalf("LocalGet() error = %v, want ErrNoteNotFound", err)
	}
}

func TestLocalGetAmbiguousNotes(t *testing.T) {
	env := setup(t)
	env.notes = []*fakeNote{
		widgetsNote(),
		{ID: "a2", Title: "backup repo:acme/widgets"},
	}

	_, err := LocalGet(context.Background(), env.localOptions())
	if !errors.Is(err, merrors.ErrNoteAmbiguous) {
		t.Fatalf("LocalGet() error = %v, want ErrNoteAmbiguous", err)
	}
}

func TestLocalGetNoOriginRemote(t *testing.T) {
	env := setup(t)
	env.originURL = ""

	_, err := LocalGet(context.Background(), env.localOptions())
	if !errors.Is(err, merrors.ErrGitRemote) {
		t.Fatalf("LocalGet() error = %v, want ErrGitRemote", err)
	}
}

func TestLocalGetEmptyNote(t *testing.T) {
	env := setup(t)
	env.notes = []*fakeNote{{ID: "a1", Title: "repo:acme/widgets"}}

	_, err := LocalGet(context.Background(), env.localOptions())
	if !errors.Is(err, merrors.ErrNoteEmpty) {
		t.Fatalf("LocalGet() error = %v, want ErrNoteEmpty", err)
	}
}

func TestLocalPushUpdatesChangedKeysOnly(t *testing.T) {
	env := setup(t)
	note := widgetsNote()
	env.notes = []*fakeNote{note}

	// Local file updates API_KEY but knows nothing about DB_URL.
	if err := envfile.Write(".env", envfile.SecretSet{"API_KEY": "xyz"}); err != nil {
		t.Fatalf("Write(.env): %v", err)
	}

	result, err := LocalPush(context.Background(), env.localOptions())
	if err != nil {
		t.Fatalf("LocalPush(): %v", err)
	}

	if !reflect.DeepEqual(result.ChangedKeys, []string{"API_KEY"}) {
		t.Errorf("result.ChangedKeys = %v, want [API_KEY]", result.ChangedKeys)
	}

	// First edit call is the field push; it must only assign local keys.
	if len(note.edits) == 0 {
		t.Fatal("expected at least one op item edit call")
	}
	push := note.edits[0]
	if !reflect.DeepEqual(push, []string{"API_KEY[text]=xyz"}) {
		t.Errorf("push assignments = %v, want [API_KEY[text]=xyz]", push)
	}
	for _, assignment := range push {
		if strings.HasPrefix(assignment, "DB_URL") {
			t.Errorf("push must not touch remote-only field DB_URL, got %v", push)
		}
	}
}

func TestLocalPushMissingFile(t *testing.T) {
	env := setup(t)
	env.notes = []*fakeNote{widgetsNote()}

	_, err := LocalPush(context.Background(), env.localOptions())
	if !errors.Is(err, merrors.ErrEnvFileNotFound) {
		t.Fatalf("LocalPush() error = %v, want ErrEnvFileNotFound", err)
	}
}

func TestLocalPushStampsLastEdited(t *testing.T) {
	env := setup(t)
	note := widgetsNote()
	env.notes = []*fakeNote{note}

	if err := envfile.Write(".env", envfile.SecretSet{"API_KEY": "xyz"}); err != nil {
		t.Fatalf("Write(.env): %v", err)
	}

	if _, err := LocalPush(context.Background(), env.localOptions()); err != nil {
		t.Fatalf("LocalPush(): %v", err)
	}

	if len(note.edits) != 2 {
		t.Fatalf("expected push + stamp edits, got %d", len(note.edits))
	}
	stamp := note.edits[1][0]
	if !strings.HasPrefix(stamp, "Generated by manuka.last edited at[text]=") {
		t.Errorf("stamp assignment = %q, want a last edited at stamp", stamp)
	}
}

func TestLocalGetRecordsHistory(t *testing.T) {
	env := setup(t)
	env.notes = []*fakeNote{widgetsNote()}

	if _, err := LocalGet(context.Background(), env.localOptions()); err != nil {
		t.Fatalf("LocalGet(): %v", err)
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries(): %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("history has %d entries, want 1", len(entries))
	}
	if entries[0].Operation != "local-get" || entries[0].Locator != "repo:acme/widgets" {
		t.Errorf("history entry = %+v, want local-get of repo:acme/widgets", entries[0])
	}
}

func (e *testEnv) flyImportOptions(app string) FlyImportOptions {
	return FlyImportOptions{
		App:         app,
		OnePassword: onepassword.NewClient("op", e.opRun),
		Fly:         fly.NewClient("fly", e.flyRun),
	}
}

func TestFlyImportSetsSecrets(t *testing.T) {
	env := setup(t)
	env.notes = []*fakeNote{{
		ID:    "b2",
		Title: "fly:myapp",
		Fields: []fakeField{
			{ID: "f1", Label: "TOKEN", Value: "secret1"},
		},
	}}

	result, err := FlyImport(context.Background(), env.flyImportOptions("myapp"))
	if err != nil {
		t.Fatalf("FlyImport(): %v", err)
	}

	if result.KeysCount != 1 {
		t.Errorf("result.KeysCount = %d, want 1", result.KeysCount)
	}

	if len(env.flyCalls) != 1 {
		t.Fatalf("fly invoked %d times, want 1", len(env.flyCalls))
	}
	call := env.flyCalls[0]
	if !reflect.DeepEqual(call.args, []string{"secrets", "import", "--app", "myapp"}) {
		t.Errorf("fly args = %v", call.args)
	}
	if call.stdin != "TOKEN=secret1\n" {
		t.Errorf("fly stdin = %q, want %q", call.stdin, "TOKEN=secret1\n")
	}
}

func TestFlyImportStampsLastImported(t *testing.T) {
	env := setup(t)
	note := &fakeNote{
		ID:     "b2",
		Title:  "fly:myapp",
		Fields: []fakeField{{ID: "f1", Label: "TOKEN", Value: "secret1"}},
	}
	env.notes = []*fakeNote{note}

	if _, err := FlyImport(context.Background(), env.flyImportOptions("myapp")); err != nil {
		t.Fatalf("FlyImport(): %v", err)
	}

	if len(note.edits) != 1 {
		t.Fatalf("expected one stamp edit, got %d", len(note.edits))
	}
	if !strings.HasPrefix(note.edits[0][0], "Generated by manuka.last imported at[text]=") {
		t.Errorf("stamp assignment = %q", note.edits[0][0])
	}
}

func TestFlyImportNoMatchingNote(t *testing.T) {
	env := setup(t)

	_, err := FlyImport(context.Background(), env.flyImportOptions("myapp"))
	if !errors.Is(err, merrors.ErrNoteNotFound) {
		t.Fatalf("FlyImport() error = %v, want ErrNoteNotFound", err)
	}
	if len(env.flyCalls) != 0 {
		t.Errorf("fly must not be invoked when resolution fails")
	}
}
