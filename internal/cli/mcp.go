package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opskit/devnotes/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
	Long: `Expose the DevNotes toolchain over the Model Context Protocol so AI
coding assistants can lint, clean, and inspect the corpus.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Linter == nil || Cleaner == nil {
			return fmt.Errorf("no workspace found; run 'dvn init' first")
		}
		server := mcp.NewServer(NotesDir, Linter, Cleaner, Catalog, AlertEngine, appVersion)
		return server.Run(cmd.Context())
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
