package cmd

import (
	logger "github.com/PolarWolf314/manuka/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flyVerbose bool
	flyDebug   bool
	FlyLogger  logger.Logger

	FlyCmd = &cobra.Command{
		Use:   "fly",
		Short: "Sync secrets between 1Password and a Fly.io application",
		Long: `Syncs the secure note for a Fly.io application with the app's secrets.

The note is located by the title substring fly:<app-name>.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			FlyLogger = logger.Logger{
				Verbose: flyVerbose,
				Debug:   flyDebug,
			}
			FlyLogger.Debugf("Initializing fly command with verbose=%t, debug=%t", flyVerbose, flyDebug)
		},
	}
)

func init() {
	FlyCmd.PersistentFlags().BoolVarP(&flyVerbose, "verbose", "v", false, "enable verbose output")
	FlyCmd.PersistentFlags().BoolVarP(&flyDebug, "debug", "d", false, "enable debug output")

	FlyCmd.AddCommand(flyImportCmd)
	FlyCmd.AddCommand(flyEditCmd)
}

// GetFlyCmd returns the FlyCmd for testing.
func GetFlyCmd() *cobra.Command {
	return FlyCmd
}
