package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opskit/devnotes/internal/core"
)

var hookForce bool

// hookMarker identifies a pre-commit hook written by dvn, so install can
// tell its own hook from a foreign one.
const hookMarker = "# managed by dvn"

const hookScript = `#!/bin/sh
` + hookMarker + `
exec dvn hook run
`

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the git pre-commit hook",
	Long: `Manage the git pre-commit hook that lints staged corpus documents.

'dvn hook install' writes a pre-commit hook into the repository's hooks
directory. 'dvn hook run' is what the hook executes: it lints the staged
markdown files under the notes directory and blocks the commit when the
lint fails.`,
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the pre-commit hook into the current repository",
	Args:  cobra.NoArgs,
	RunE:  runHookInstall,
}

var hookRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Lint staged corpus documents (invoked by the pre-commit hook)",
	Args:  cobra.NoArgs,
	RunE:  runHookRun,
}

func init() {
	hookInstallCmd.Flags().BoolVar(&hookForce, "force", false, "Overwrite an existing foreign pre-commit hook")
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookRunCmd)
	rootCmd.AddCommand(hookCmd)
}

func runHookInstall(cmd *cobra.Command, args []string) error {
	if Git == nil {
		return fmt.Errorf("git integration not initialized")
	}

	hooksDir, err := Git.HooksDir(".")
	if err != nil {
		return fmt.Errorf("locating hooks directory: %w", err)
	}
	if err := os.MkdirAll(hooksDir, 0o750); err != nil {
		return fmt.Errorf("creating hooks directory: %w", err)
	}

	target := filepath.Join(hooksDir, "pre-commit")
	if existing, err := os.ReadFile(target); err == nil {
		if !strings.Contains(string(existing), hookMarker) && !hookForce {
			return fmt.Errorf("%s exists and was not written by dvn; re-run with --force to overwrite", target)
		}
	}

	if err := os.WriteFile(target, []byte(hookScript), 0o755); err != nil { //nolint:gosec // hooks must be executable
		return fmt.Errorf("writing pre-commit hook: %w", err)
	}
	fmt.Printf("Installed pre-commit hook at %s\n", target)
	return nil
}

func runHookRun(cmd *cobra.Command, args []string) error {
	if Git == nil || Linter == nil {
		return fmt.Errorf("no workspace found; run 'dvn init' first")
	}

	top, err := Git.TopLevel(".")
	if err != nil {
		return err
	}
	staged, err := Git.StagedFiles(top)
	if err != nil {
		return err
	}

	paths := stagedCorpusPaths(top, NotesDir, staged)
	if len(paths) == 0 {
		return nil
	}

	report, err := Linter.Run(core.LintOptions{Paths: paths})
	if err != nil {
		return err
	}
	if err := printLintReport(report); err != nil {
		return err
	}

	failOn, err := resolveFailOn()
	if err != nil {
		return err
	}
	if report.FailsAt(failOn) {
		return fmt.Errorf("commit blocked: %d staged document(s) fail lint at or above %s", len(paths), failOn)
	}
	return nil
}

// stagedCorpusPaths filters staged repo-relative files down to markdown
// documents inside notesDir, returned relative to notesDir.
func stagedCorpusPaths(repoRoot, notesDir string, staged []string) []string {
	var out []string
	for _, s := range staged {
		if !strings.HasSuffix(s, ".md") {
			continue
		}
		abs := filepath.Join(repoRoot, filepath.FromSlash(s))
		rel, err := filepath.Rel(notesDir, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		out = append(out, rel)
	}
	return out
}
