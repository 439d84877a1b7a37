package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/manuka/cmd"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "manuka",
	Short: "Manuka - Sync 1Password secure note secrets to env files and Fly.io.",
	Long: `Manuka keeps secrets in 1Password secure notes and syncs them to the
places that consume them: a local env file or a Fly.io application.

It shells out to the already-authenticated op and fly CLIs; no secret ever
touches Manuka's own storage.

Notes are found by title substring:
  repo:<owner>/<repo>   for a repository (derived from the origin remote)
  fly:<app-name>        for a Fly.io application

Usage:
  manuka <command> [flags]

Available Commands:
  local      Sync with the current repository's env file
  fly        Sync with a Fly.io application
  log        View the sync history

Run 'manuka help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("Manuka", "alligator2", "green", true)
		banner.Print()
		fmt.Println("Run 'manuka --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.LocalCmd)
	rootCmd.AddCommand(cmd.FlyCmd)
	rootCmd.AddCommand(cmd.LogCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
