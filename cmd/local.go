package cmd

import (
	logger "github.com/PolarWolf314/manuka/internal/logging"
	"github.com/spf13/cobra"
)

var (
	localVerbose bool
	localDebug   bool
	LocalLogger  logger.Logger

	LocalCmd = &cobra.Command{
		Use:   "local",
		Short: "Sync secrets between 1Password and a local env file",
		Long: `Syncs the secure note for the current repository with its env file.

The note is located by the title substring repo:<owner>/<repo>, derived from
the git remote named "origin". An optional file_name field on the note picks
the env file (default .env).`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			LocalLogger = logger.Logger{
				Verbose: localVerbose,
				Debug:   localDebug,
			}
			LocalLogger.Debugf("Initializing local command with verbose=%t, debug=%t", localVerbose, localDebug)
		},
	}
)

func init() {
	LocalCmd.PersistentFlags().BoolVarP(&localVerbose, "verbose", "v", false, "enable verbose output")
	LocalCmd.PersistentFlags().BoolVarP(&localDebug, "debug", "d", false, "enable debug output")

	LocalCmd.AddCommand(localGetCmd)
	LocalCmd.AddCommand(localPushCmd)
}

// GetLocalCmd returns the LocalCmd for testing.
func GetLocalCmd() *cobra.Command {
	return LocalCmd
}
