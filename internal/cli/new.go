package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opskit/devnotes/pkg/models"
)

var newCmd = &cobra.Command{
	Use:   "new <scenario|qa> <title>",
	Short: "Create a skeleton document in the notes directory",
	Long: `Create a skeleton document of the given kind in the notes directory.

The title is slugified into the filename; "Kafka Consumer Lag" becomes
kafka-consumer-lag.md. Existing files are never overwritten.`,
	Args:      cobra.MinimumNArgs(2),
	ValidArgs: []string{"scenario", "qa"},
	RunE:      runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	if DocCreator == nil {
		return fmt.Errorf("no workspace found; run 'dvn init' first")
	}

	var kind models.DocKind
	switch args[0] {
	case "scenario":
		kind = models.KindScenario
	case "qa":
		kind = models.KindQA
	default:
		return fmt.Errorf("unknown document kind %q (expected scenario or qa)", args[0])
	}

	title := strings.TrimSpace(strings.Join(args[1:], " "))
	path, err := DocCreator.Create(kind, title)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s\n", relToCwd(path))
	return nil
}
