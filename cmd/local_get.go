package cmd

import (
	"fmt"

	"github.com/PolarWolf314/manuka/internal/configs"
	"github.com/PolarWolf314/manuka/internal/onepassword"
	"github.com/PolarWolf314/manuka/internal/ui"
	"github.com/PolarWolf314/manuka/internal/workflows"
	"github.com/spf13/cobra"
)

var localGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Write the repository's secrets from 1Password to the env file",
	Long: `Pulls every field from the repository's secure note and writes them to
the env file, one KEY=value per line.

The note is found by the locator repo:<owner>/<repo> from the origin remote.
Exactly one secure note title must contain the locator.

Examples:
  # Inside a checkout of github.com/acme/widgets
  manuka local get

  # With verbose output
  manuka local get --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		LocalLogger.Infof("Starting local get command")
		spinner, cleanup := startSpinnerWithFlags("Pulling secrets from 1Password...", localVerbose, localDebug)
		defer cleanup()

		config, err := configs.LoadUserConfig()
		if err != nil {
			return LocalLogger.ErrorfAndReturn("failed to load user config: %v", err)
		}

		opts := workflows.LocalOptions{
			OnePassword: onepassword.NewClient(config.OpBinary(), nil),
			Config:      config,
		}

		result, err := workflows.LocalGet(cmd.Context(), opts)
		if err != nil {
			spinner.FinalMSG = errorMessage(err)
			return err
		}

		LocalLogger.Infof("Wrote %d secrets to %s", result.KeysCount, result.File)

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Updated " + ui.Path.Sprint(result.File) +
			" from " + ui.Highlight.Sprint(result.NoteTitle) + "\n" +
			ui.Info.Sprint("→") + fmt.Sprintf(" %d secret(s) written", result.KeysCount)
		return nil
	},
}
