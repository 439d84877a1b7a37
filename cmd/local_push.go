package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/manuka/internal/configs"
	"github.com/PolarWolf314/manuka/internal/onepassword"
	"github.com/PolarWolf314/manuka/internal/ui"
	"github.com/PolarWolf314/manuka/internal/workflows"
	"github.com/spf13/cobra"
)

var localPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push the env file's secrets to the repository's 1Password note",
	Long: `Reads the env file and writes its entries onto the repository's secure
note, adding new fields and updating changed ones.

Fields that exist on the note but not in the file are left untouched, so a
stale checkout can never destroy a secret that was added remotely. To delete
a field, remove it in 1Password itself.

Examples:
  # Push .env (or the note's file_name) to 1Password
  manuka local push`,
	RunE: func(cmd *cobra.Command, args []string) error {
		LocalLogger.Infof("Starting local push command")
		spinner, cleanup := startSpinnerWithFlags("Pushing secrets to 1Password...", localVerbose, localDebug)
		defer cleanup()

		config, err := configs.LoadUserConfig()
		if err != nil {
			return LocalLogger.ErrorfAndReturn("failed to load user config: %v", err)
		}

		opts := workflows.LocalOptions{
			OnePassword: onepassword.NewClient(config.OpBinary(), nil),
			Config:      config,
		}

		result, err := workflows.LocalPush(cmd.Context(), opts)
		if err != nil {
			spinner.FinalMSG = errorMessage(err)
			return err
		}

		LocalLogger.Infof("Pushed %d secrets from %s", result.KeysCount, result.File)

		finalMessage := ui.Success.Sprint("✓") + " Pushed " + ui.Path.Sprint(result.File) +
			" to " + ui.Highlight.Sprint(result.NoteTitle)
		if len(result.ChangedKeys) > 0 {
			finalMessage += "\n" + ui.Info.Sprint("→") + fmt.Sprintf(" %d field(s) added or updated: %s",
				len(result.ChangedKeys), strings.Join(result.ChangedKeys, ", "))
		} else {
			finalMessage += "\n" + ui.Info.Sprint("→") + " Already up to date " +
				ui.Muted.Sprint("no fields changed")
		}

		spinner.FinalMSG = finalMessage
		return nil
	},
}
