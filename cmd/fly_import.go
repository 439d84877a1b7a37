package cmd

import (
	"fmt"

	"github.com/PolarWolf314/manuka/internal/configs"
	"github.com/PolarWolf314/manuka/internal/fly"
	"github.com/PolarWolf314/manuka/internal/onepassword"
	"github.com/PolarWolf314/manuka/internal/ui"
	"github.com/PolarWolf314/manuka/internal/workflows"
	"github.com/spf13/cobra"
)

var flyImportCmd = &cobra.Command{
	Use:   "import [app-name]",
	Short: "Upload a note's secrets as Fly.io application secrets",
	Long: `Pulls every field from the app's secure note (locator fly:<app-name>)
and sets them as secrets on the Fly.io application in one batched call.

Secrets already set on the app but absent from the note are left alone.

Examples:
  manuka fly import myapp`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName := args[0]
		FlyLogger.Infof("Starting fly import command for app %s", appName)
		spinner, cleanup := startSpinnerWithFlags("Importing secrets to Fly.io...", flyVerbose, flyDebug)
		defer cleanup()

		config, err := configs.LoadUserConfig()
		if err != nil {
			return FlyLogger.ErrorfAndReturn("failed to load user config: %v", err)
		}

		opts := workflows.FlyImportOptions{
			App:         appName,
			OnePassword: onepassword.NewClient(config.OpBinary(), nil),
			Fly:         fly.NewClient(config.FlyBinary(), nil),
		}

		result, err := workflows.FlyImport(cmd.Context(), opts)
		if err != nil {
			spinner.FinalMSG = errorMessage(err)
			return err
		}

		FlyLogger.Infof("Set %d secrets on app %s", result.KeysCount, result.App)

		finalMessage := ui.Success.Sprint("✓") + " Imported " + ui.Highlight.Sprint(result.NoteTitle) +
			" to Fly.io app " + ui.Highlight.Sprint(result.App) + "\n" +
			ui.Info.Sprint("→") + fmt.Sprintf(" %d secret(s) set", result.KeysCount)
		if result.Output != "" {
			finalMessage += "\n" + ui.Muted.Sprint(result.Output)
		}

		spinner.FinalMSG = finalMessage
		return nil
	},
}
