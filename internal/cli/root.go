package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "dvn",
	Short: "DevNotes - DevOps notes corpus maintenance toolchain",
	Long: `DevNotes (dvn) maintains a markdown corpus of DevOps study notes:
crisis-scenario documents and interview Q&A documents.

It provides CLI commands for scrubbing chat-export fluff out of raw Q&A
dumps, renumbering and reordering questions, linting the corpus against
documentation-quality rules, and tracking corpus health through stats,
metrics, and alerts.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dvn %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
