package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opskit/devnotes/internal/core"
)

var (
	reorderInPlace bool
	reorderDryRun  bool
	reorderOutput  string
)

var reorderCmd = &cobra.Command{
	Use:   "reorder <file.md>",
	Short: "Sort questions back into numeric order",
	Long: `Sort the questions of a Q&A document back into their original numeric
order and renumber them 1..N. No scrubbing happens; reorder is purely
structural.

By default the result is written to an _ordered sibling file.`,
	Args: cobra.ExactArgs(1),
	RunE: runReorder,
}

func init() {
	reorderCmd.Flags().BoolVarP(&reorderInPlace, "in-place", "i", false, "Rewrite the source file")
	reorderCmd.Flags().BoolVarP(&reorderDryRun, "dry-run", "n", false, "Report what would change without writing")
	reorderCmd.Flags().StringVarP(&reorderOutput, "output", "o", "", "Write the reordered document to this path")
	rootCmd.AddCommand(reorderCmd)
}

func runReorder(cmd *cobra.Command, args []string) error {
	if Cleaner == nil {
		return fmt.Errorf("no workspace found; run 'dvn init' first")
	}

	report, err := Cleaner.ReorderFile(args[0], core.CleanOptions{
		InPlace:    reorderInPlace,
		DryRun:     reorderDryRun,
		OutputPath: reorderOutput,
	})
	if err != nil {
		return err
	}

	if reorderDryRun {
		fmt.Printf("dry run: %s\n", args[0])
	} else if report.OutputPath != "" {
		fmt.Printf("wrote %s\n", relToCwd(report.OutputPath))
	}
	if report.Reordered {
		fmt.Fprintf(cmd.OutOrStderr(), "%d question(s) resorted into numeric order\n", report.Questions)
	} else {
		fmt.Fprintln(cmd.OutOrStderr(), "already in order")
	}
	return nil
}
