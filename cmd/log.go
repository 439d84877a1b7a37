package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/manuka/internal/audit"
	merrors "github.com/PolarWolf314/manuka/internal/errors"
	logger "github.com/PolarWolf314/manuka/internal/logging"
	"github.com/PolarWolf314/manuka/internal/ui"
	"github.com/PolarWolf314/manuka/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logVerbose   bool
	logDebug     bool
	logLimit     int
	logReverse   bool
	logOperation string
	logApp       string
	logSince     string
	logUntil     string
	logJSON      bool
	LogLogger    logger.Logger
)

func init() {
	LogCmd.Flags().BoolVarP(&logVerbose, "verbose", "v", false, "enable verbose output")
	LogCmd.Flags().BoolVarP(&logDebug, "debug", "d", false, "enable debug output")
	LogCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	LogCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	LogCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	LogCmd.Flags().StringVar(&logApp, "app", "", "filter by Fly.io application name")
	LogCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	LogCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	LogCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// LogCmd shows the local history of sync operations.
var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "View the sync history",
	Long: `Displays the local history of sync operations.

Shows which notes were synced where and when. Secret values are never
recorded, only key counts.

Examples:
  manuka log                          # View full history
  manuka log -n 10                    # Last 10 entries
  manuka log --reverse                # Most recent first
  manuka log --operation fly-import   # Filter by operation
  manuka log --app myapp              # Filter by Fly.io app
  manuka log --since 2026-01-01       # Filter by date
  manuka log --json                   # JSON output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		LogLogger = logger.Logger{Verbose: logVerbose, Debug: logDebug}
		LogLogger.Infof("Starting log command")

		result, err := workflows.Log(cmd.Context(), workflows.LogOptions{
			Limit:      logLimit,
			Reverse:    logReverse,
			Operations: logOperation,
			App:        logApp,
			Since:      logSince,
			Until:      logUntil,
		})
		if errors.Is(err, merrors.ErrNoAuditLog) {
			fmt.Println(ui.Info.Sprint("→") + " No sync history yet")
			return nil
		}
		if err != nil {
			fmt.Println(errorMessage(err))
			return err
		}

		if logJSON {
			data, err := json.MarshalIndent(result.Entries, "", "  ")
			if err != nil {
				return LogLogger.ErrorfAndReturn("failed to marshal entries: %v", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if len(result.Entries) == 0 {
			fmt.Println(ui.Info.Sprint("→") + " No entries match the given filters " +
				ui.Muted.Sprintf("%d total", result.TotalEntriesBeforeFilter))
			return nil
		}

		for _, entry := range result.Entries {
			fmt.Println(formatLogEntry(entry))
		}
		return nil
	},
}

// formatLogEntry renders one history entry as a single line.
func formatLogEntry(entry audit.Entry) string {
	ts := entry.Timestamp
	if parsed, err := time.Parse(time.RFC3339, entry.Timestamp); err == nil {
		ts = parsed.Local().Format("2006-01-02 15:04")
	}

	var parts []string
	parts = append(parts, ui.Muted.Sprint(ts), ui.Highlight.Sprint(entry.Operation))
	if entry.Locator != "" {
		parts = append(parts, entry.Locator)
	}
	if entry.App != "" {
		parts = append(parts, "app="+entry.App)
	}
	if entry.File != "" {
		parts = append(parts, "file="+entry.File)
	}
	if entry.KeysCount > 0 {
		parts = append(parts, fmt.Sprintf("%d key(s)", entry.KeysCount))
	}

	return strings.Join(parts, "  ")
}
