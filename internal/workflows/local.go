package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/PolarWolf314/manuka/internal/audit"
	"github.com/PolarWolf314/manuka/internal/configs"
	"github.com/PolarWolf314/manuka/internal/envfile"
	merrors "github.com/PolarWolf314/manuka/internal/errors"
	"github.com/PolarWolf314/manuka/internal/onepassword"
	"github.com/PolarWolf314/manuka/internal/utils"
)

// LocalOptions configures the local get and push workflows.
type LocalOptions struct {
	// OnePassword is the 1Password CLI client.
	OnePassword *onepassword.Client

	// Git runs the git subprocess used to derive the locator.
	// Nil falls back to real subprocesses.
	Git utils.CommandRunner

	// Config is the loaded user configuration.
	Config *configs.UserConfig
}

// LocalGetResult contains the outcome of a local get operation.
type LocalGetResult struct {
	// Locator is the derived note locator (repo:<owner>/<repo>).
	Locator string

	// NoteTitle is the title of the matched secure note.
	NoteTitle string

	// File is the env file that was written.
	File string

	// KeysCount is the number of secrets written.
	KeysCount int
}

// LocalGet resolves the secure note for the current repository and writes
// its fields to the note's configured env file (default .env).
//
// Returns ErrGitRemote if no usable origin remote exists, ErrNoteNotFound /
// ErrNoteAmbiguous from resolution, and ErrNoteEmpty if the note has no
// secret fields (an empty note is more likely a misconfigured note than an
// intent to truncate the local file).
func LocalGet(ctx context.Context, opts LocalOptions) (*LocalGetResult, error) {
	locator, err := repositoryLocator(ctx, opts.Git)
	if err != nil {
		return nil, err
	}

	item, err := opts.OnePassword.ResolveNote(ctx, locator)
	if err != nil {
		return nil, err
	}

	set := onepassword.SecretFields(item)
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: %s", merrors.ErrNoteEmpty, item.Title)
	}

	file := targetFile(item, opts.Config)
	if err := envfile.Write(file, set); err != nil {
		return nil, err
	}

	audit.Log(audit.Entry{
		Operation: "local-get",
		Locator:   locator,
		NoteTitle: item.Title,
		File:      file,
		KeysCount: len(set),
	})

	return &LocalGetResult{
		Locator:   locator,
		NoteTitle: item.Title,
		File:      file,
		KeysCount: len(set),
	}, nil
}

// LocalPushResult contains the outcome of a local push operation.
type LocalPushResult struct {
	// Locator is the derived note locator.
	Locator string

	// NoteTitle is the title of the matched secure note.
	NoteTitle string

	// File is the env file that was read.
	File string

	// KeysCount is the number of local secrets pushed.
	KeysCount int

	// ChangedKeys are the keys that were new or had a different value on
	// the note. Keys only present on the note are never touched.
	ChangedKeys []string
}

// LocalPush reads the note's configured env file and writes its entries
// onto the secure note. The merge is conservative: fields on the note that
// are absent from the file survive untouched, so a stale checkout cannot
// destroy a remotely-added secret. Deleting a field means deleting it in
// 1Password itself.
//
// Returns ErrEnvFileNotFound if the env file does not exist.
func LocalPush(ctx context.Context, opts LocalOptions) (*LocalPushResult, error) {
	locator, err := repositoryLocator(ctx, opts.Git)
	if err != nil {
		return nil, err
	}

	item, err := opts.OnePassword.ResolveNote(ctx, locator)
	if err != nil {
		return nil, err
	}

	file := targetFile(item, opts.Config)
	local, err := envfile.Load(file)
	if err != nil {
		return nil, err
	}

	changed := envfile.ChangedKeys(local, onepassword.SecretFields(item))

	if err := opts.OnePassword.PushFields(ctx, item.ID, local); err != nil {
		return nil, err
	}

	// Stamps and history are best-effort; the push already succeeded.
	stamp(ctx, opts.OnePassword, item.ID, onepassword.StampLastEdited)
	audit.Log(audit.Entry{
		Operation: "local-push",
		Locator:   locator,
		NoteTitle: item.Title,
		File:      file,
		KeysCount: len(local),
	})

	return &LocalPushResult{
		Locator:     locator,
		NoteTitle:   item.Title,
		File:        file,
		KeysCount:   len(local),
		ChangedKeys: changed,
	}, nil
}

// repositoryLocator derives repo:<owner>/<repo> from the origin remote.
func repositoryLocator(ctx context.Context, git utils.CommandRunner) (string, error) {
	if git == nil {
		git = utils.RunCommand
	}

	repository, err := utils.RepositoryFromOrigin(ctx, git)
	if err != nil {
		return "", err
	}

	return "repo:" + repository, nil
}

// targetFile resolves the env file for a note: the note's file_name field
// wins, then the configured default.
func targetFile(item *onepassword.Item, config *configs.UserConfig) string {
	if name := onepassword.FileName(item); name != "" {
		return name
	}
	return config.EnvFile()
}

// stamp records a sync timestamp on the note, ignoring failures.
func stamp(ctx context.Context, client *onepassword.Client, id, label string) {
	now := time.Now().Format(onepassword.StampTimeFormat)
	_ = client.WriteStamp(ctx, id, label, now)
}
