package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/opskit/devnotes/pkg/models"
)

var (
	statsJSON bool
	statsDocs bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Long: `Scan the corpus and show aggregate statistics: document counts by kind,
challenges and options across scenarios, questions and answers across
Q&A documents, and open lint findings from the manifest.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output statistics as JSON")
	statsCmd.Flags().BoolVar(&statsDocs, "docs", false, "List per-document statistics")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if Catalog == nil {
		return fmt.Errorf("no workspace found; run 'dvn init' first")
	}

	stats, err := Catalog.BuildStats()
	if err != nil {
		return err
	}

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("formatting stats as JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Corpus: %s (%s across %d document(s))\n\n",
		stats.Root, humanize.Bytes(uint64(stats.TotalBytes)), stats.TotalDocs())

	fmt.Printf("  %-24s %d\n", "Scenario documents:", stats.Scenarios)
	fmt.Printf("  %-24s %d\n", "Q&A documents:", stats.QADocs)
	fmt.Printf("  %-24s %d\n", "Freeform documents:", stats.Freeform)
	fmt.Println()
	fmt.Printf("  %-24s %d\n", "Challenges:", stats.Challenges)
	fmt.Printf("  %-24s %d\n", "Resolution options:", stats.Options)
	fmt.Printf("  %-24s %d\n", "Success indicators:", stats.SuccessIndicators)
	fmt.Println()
	fmt.Printf("  %-24s %d\n", "Topics:", stats.Topics)
	fmt.Printf("  %-24s %d\n", "Questions:", stats.Questions)
	fmt.Printf("  %-24s %d\n", "Answered:", stats.Answers)
	fmt.Printf("  %-24s %d\n", "Unanswered:", stats.Unanswered)

	if stats.LintErrors > 0 || stats.LintWarnings > 0 {
		fmt.Println()
		fmt.Printf("  %-24s %d\n", "Open lint errors:", stats.LintErrors)
		fmt.Printf("  %-24s %d\n", "Open lint warnings:", stats.LintWarnings)
	}

	if statsDocs && len(stats.Documents) > 0 {
		fmt.Println("\nDocuments:")
		docs := make([]models.DocStats, len(stats.Documents))
		copy(docs, stats.Documents)
		sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
		for _, d := range docs {
			fmt.Printf("  %-8s %-40s %8s  %s\n",
				d.Kind, d.Path, humanize.Bytes(uint64(d.Size)), humanize.Time(d.ModTime))
		}
	}
	return nil
}
