package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	merrors "github.com/PolarWolf314/manuka/internal/errors"
	"github.com/PolarWolf314/manuka/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinnerWithFlags creates and starts a spinner with explicit verbose and
// debug flags. Returns the spinner and a function that should be deferred to
// clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup
// function automatically calls ui.EnsureNewline() on the final message before
// printing it. This ensures consistent output formatting across all commands.
func startSpinnerWithFlags(message string, verbose, debug bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// If we can't set spinner color, just continue without it.
	_ = s.Color("cyan")

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// errorMessage renders a workflow error as a friendly final message.
// The error itself still propagates so the process exits non-zero.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, merrors.ErrNoteNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Create a secure note in 1Password whose title contains the locator"

	case errors.Is(err, merrors.ErrNoteAmbiguous):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Rename or archive the extra notes so exactly one matches"

	case errors.Is(err, merrors.ErrGitRemote):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run this inside a repository with an " + ui.Highlight.Sprint("origin") + " remote"

	case errors.Is(err, merrors.ErrEnvFileNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("manuka local get") + " first, or create the file"

	case errors.Is(err, merrors.ErrNoteEmpty):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Add at least one field to the note before syncing"

	case errors.Is(err, merrors.ErrValueNotRepresentable):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Env syntax cannot carry this entry; adjust it in 1Password"

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}
