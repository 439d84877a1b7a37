package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/manuka/internal/configs"
	"github.com/PolarWolf314/manuka/internal/fly"
	"github.com/PolarWolf314/manuka/internal/onepassword"
	"github.com/PolarWolf314/manuka/internal/ui"
	"github.com/PolarWolf314/manuka/internal/workflows"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

var (
	flyEditEditor     string
	flyEditAutoYes    bool
	flyEditSkipImport bool
)

func init() {
	flyEditCmd.Flags().StringVar(&flyEditEditor, "editor", "", "editor command (default: config, then $EDITOR, then vi)")
	flyEditCmd.Flags().BoolVarP(&flyEditAutoYes, "yes", "y", false, "import to Fly.io after editing without asking")
	flyEditCmd.Flags().BoolVar(&flyEditSkipImport, "no-import", false, "never import to Fly.io after editing")
}

var flyEditCmd = &cobra.Command{
	Use:   "edit [app-name]",
	Short: "Edit a note's secrets in your editor",
	Long: `Opens the app's secure note fields in your editor as env-syntax text and
pushes any changes back to 1Password.

Removing a line does not delete the field from the note; deletions must be
done in 1Password itself. After a change you are offered a follow-up import
to the Fly.io app.

Examples:
  manuka fly edit myapp

  # Use a specific editor and import without asking
  manuka fly edit myapp --editor "code --wait" --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName := args[0]
		FlyLogger.Infof("Starting fly edit command for app %s", appName)

		config, err := configs.LoadUserConfig()
		if err != nil {
			return FlyLogger.ErrorfAndReturn("failed to load user config: %v", err)
		}

		editor := flyEditEditor
		if editor == "" {
			editor = config.Editor()
		}
		FlyLogger.Debugf("Using editor: %s", editor)

		opClient := onepassword.NewClient(config.OpBinary(), nil)

		// No spinner here: the editor owns the terminal.
		result, err := workflows.FlyEdit(cmd.Context(), workflows.FlyEditOptions{
			App:         appName,
			OnePassword: opClient,
			Editor:      editor,
		})
		if err != nil {
			fmt.Println(errorMessage(err))
			return err
		}

		if !result.Changed {
			fmt.Println(ui.Info.Sprint("→") + " No changes detected, nothing to push " +
				ui.Muted.Sprint(result.NoteTitle))
			return nil
		}

		fmt.Println(ui.Success.Sprint("✓") + " Updated " + ui.Highlight.Sprint(result.NoteTitle) +
			": " + strings.Join(result.ChangedKeys, ", "))

		if flyEditSkipImport {
			return nil
		}

		importNow := flyEditAutoYes
		if !importNow {
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Secrets updated in 1Password. Import them to the Fly.io app %s now?", appName),
			}
			if err := survey.AskOne(prompt, &importNow); err != nil {
				return FlyLogger.ErrorfAndReturn("failed to read confirmation: %v", err)
			}
		}
		if !importNow {
			return nil
		}

		importResult, err := workflows.FlyImport(cmd.Context(), workflows.FlyImportOptions{
			App:         appName,
			OnePassword: opClient,
			Fly:         fly.NewClient(config.FlyBinary(), nil),
		})
		if err != nil {
			fmt.Println(errorMessage(err))
			return err
		}

		fmt.Println(ui.Success.Sprint("✓") + fmt.Sprintf(" Imported %d secret(s) to Fly.io app ", importResult.KeysCount) +
			ui.Highlight.Sprint(importResult.App))
		if importResult.Output != "" {
			fmt.Println(ui.Muted.Sprint(importResult.Output))
		}
		return nil
	},
}
