package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opskit/devnotes/internal/core"
)

var initNotesDir string

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a DevNotes workspace",
	Long: `Initialize a DevNotes workspace in the given directory (default: the
current directory).

Creates the notes directory, the .devnotes state directory with an empty
manifest, and a .devnotes.yaml configuration file. Existing files are
never overwritten; re-running init on a workspace is safe.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initNotesDir, "notes-dir", "notes",
		"Directory (relative to the workspace root) holding the corpus")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	base := "."
	if len(args) == 1 {
		base = args[0]
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return fmt.Errorf("resolving workspace path: %w", err)
	}

	ws := Workspace
	if ws == nil {
		// init runs before a workspace exists, so app wiring may not have
		// produced services. Build a standalone initializer.
		ws = core.NewWorkspaceInitializer(core.NewTemplateManager(), nil)
	}

	result, err := ws.Init(core.InitConfig{BasePath: abs, NotesDir: initNotesDir})
	if err != nil {
		return err
	}

	for _, p := range result.Created {
		fmt.Printf("  created %s\n", relToCwd(p))
	}
	for _, p := range result.Skipped {
		fmt.Printf("  exists  %s\n", relToCwd(p))
	}
	fmt.Printf("\nWorkspace ready at %s\n", abs)
	fmt.Println("Next: dvn new qa \"My first topic\" or drop markdown into the notes directory.")
	return nil
}

// relToCwd renders a path relative to the working directory when that is
// shorter, for friendlier output.
func relToCwd(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || len(rel) >= len(path) {
		return path
	}
	return rel
}
