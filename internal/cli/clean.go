package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opskit/devnotes/internal/core"
	"github.com/opskit/devnotes/pkg/models"
)

var (
	cleanInPlace  bool
	cleanStdout   bool
	cleanDryRun   bool
	cleanOutput   string
	cleanRenumber string
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file.md>",
	Short: "Scrub, renumber, and canonicalize a Q&A document",
	Long: `Run the clean pipeline on a Q&A document: scrub chat-export fluff,
renumber questions, and render the canonical form.

By default the result is written to a _clean sibling file so the source
stays untouched. Scenario documents are refused; clean exists for raw
Q&A exports.`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanInPlace, "in-place", "i", false, "Rewrite the source file")
	cleanCmd.Flags().BoolVar(&cleanStdout, "stdout", false, "Write the cleaned document to stdout")
	cleanCmd.Flags().BoolVarP(&cleanDryRun, "dry-run", "n", false, "Report what would change without writing")
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "Write the cleaned document to this path")
	cleanCmd.Flags().StringVar(&cleanRenumber, "renumber", "", "Renumber mode: topic, global, or keep")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	if Cleaner == nil {
		return fmt.Errorf("no workspace found; run 'dvn init' first")
	}
	path := args[0]

	mode, err := parseRenumberMode(cleanRenumber)
	if err != nil {
		return err
	}

	if cleanStdout {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cleaning %s: %w", path, err)
		}
		out, report, err := Cleaner.CleanText(path, src, mode)
		if err != nil {
			return err
		}
		fmt.Print(out)
		printCleanSummary(cmd, report)
		return nil
	}

	report, err := Cleaner.CleanFile(path, core.CleanOptions{
		InPlace:    cleanInPlace,
		DryRun:     cleanDryRun,
		OutputPath: cleanOutput,
		Renumber:   mode,
	})
	if err != nil {
		return err
	}

	if cleanDryRun {
		fmt.Printf("dry run: %s\n", path)
	} else if report.OutputPath != "" {
		fmt.Printf("wrote %s\n", relToCwd(report.OutputPath))
	}
	printCleanSummary(cmd, report)
	return nil
}

func printCleanSummary(cmd *cobra.Command, report *models.CleanReport) {
	w := cmd.OutOrStderr()
	fmt.Fprintf(w, "%d topic(s), %d question(s) (%d answered, %d unanswered)\n",
		report.Topics, report.Questions, report.Answers, report.Unanswered)
	fmt.Fprintf(w, "fluff removed: %d, renumbered: %d, changed: %v\n",
		report.FluffRemoved, report.Renumbered, report.Changed)
}

// parseRenumberMode validates a --renumber flag value. Empty means "use
// the configured default".
func parseRenumberMode(raw string) (models.RenumberMode, error) {
	switch mode := models.RenumberMode(raw); mode {
	case "", models.RenumberTopic, models.RenumberGlobal, models.RenumberKeep:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid renumber mode %q (expected topic, global, or keep)", raw)
	}
}
