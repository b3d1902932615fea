package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/opskit/devnotes/internal/core"
	"github.com/opskit/devnotes/internal/integration"
	"github.com/opskit/devnotes/internal/observability"
	"github.com/opskit/devnotes/pkg/models"
)

var (
	lintJSON   bool
	lintWatch  bool
	lintNotify bool
	lintFailOn string
)

var lintCmd = &cobra.Command{
	Use:   "lint [path...]",
	Short: "Lint the corpus against the documentation-quality rules",
	Long: `Lint the notes corpus, or only the given documents (paths relative to
the notes directory), against the documentation-quality rules.

Exits non-zero when any finding sits at or above the fail-on severity
(default from .devnotes.yaml). With --watch, stays running and re-lints
documents as they change.`,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "Emit the lint report as JSON")
	lintCmd.Flags().BoolVar(&lintWatch, "watch", false, "Watch the notes directory and re-lint on change")
	lintCmd.Flags().BoolVar(&lintNotify, "notify", false, "Send a Slack notification when the run fails")
	lintCmd.Flags().StringVar(&lintFailOn, "fail-on", "", "Severity that fails the run: error, warning, or info")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	if Linter == nil {
		return fmt.Errorf("no workspace found; run 'dvn init' first")
	}

	failOn, err := resolveFailOn()
	if err != nil {
		return err
	}

	if lintWatch {
		return runLintWatch(cmd.Context(), failOn)
	}

	report, err := Linter.Run(core.LintOptions{Paths: args})
	if err != nil {
		return err
	}
	if err := printLintReport(report); err != nil {
		return err
	}

	if report.FailsAt(failOn) {
		if lintNotify {
			notifyLintFailure(report)
		}
		return fmt.Errorf("lint failed: %d error(s), %d warning(s) at or above %s",
			report.Errors, report.Warnings, failOn)
	}
	return nil
}

// resolveFailOn picks the failure severity: the --fail-on flag wins over
// the workspace configuration, which defaults to error.
func resolveFailOn() (models.Severity, error) {
	raw := lintFailOn
	if raw == "" && Config != nil {
		raw = string(Config.FailOn)
	}
	if raw == "" {
		raw = string(models.SeverityError)
	}
	switch sev := models.Severity(raw); sev {
	case models.SeverityError, models.SeverityWarning, models.SeverityInfo:
		return sev, nil
	default:
		return "", fmt.Errorf("invalid fail-on severity %q (expected error, warning, or info)", raw)
	}
}

func runLintWatch(ctx context.Context, failOn models.Severity) error {
	debounce := time.Duration(0)
	if Config != nil && Config.WatchDebounceMS > 0 {
		debounce = time.Duration(Config.WatchDebounceMS) * time.Millisecond
	}
	watcher, err := integration.NewCorpusWatcher(NotesDir, debounce)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	lintPaths := func(paths []string) {
		sort.Strings(paths)
		report, err := Linter.Run(core.LintOptions{Paths: paths})
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint: %s\n", err)
			return
		}
		if err := printLintReport(report); err != nil {
			fmt.Fprintf(os.Stderr, "lint: %s\n", err)
			return
		}
		if lintNotify && report.FailsAt(failOn) {
			notifyLintFailure(report)
		}
	}

	// Full pass first, then incremental passes per change.
	lintPaths(nil)
	if err := watcher.Start(lintPaths); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", NotesDir)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}

func printLintReport(report *models.LintReport) error {
	if lintJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	for _, f := range report.Findings {
		loc := f.Path
		if f.Line > 0 {
			loc = fmt.Sprintf("%s:%d", f.Path, f.Line)
		}
		fmt.Printf("%-7s %-22s %s  %s\n", f.Severity, f.Rule, loc, f.Message)
	}
	if len(report.Findings) > 0 {
		fmt.Println()
	}
	fmt.Printf("%d document(s) linted in %dms: %d error(s), %d warning(s)\n",
		report.Documents, report.DurationMS, report.Errors, report.Warnings)
	return nil
}

// notifyLintFailure condenses a failed lint run into a single alert and
// sends it through the configured notifier. Failures to notify are
// reported but never fail the lint itself.
func notifyLintFailure(report *models.LintReport) {
	if Notifier == nil {
		fmt.Fprintln(os.Stderr, "lint: --notify set but no webhook configured (notify.webhook_url)")
		return
	}
	alert := observability.Alert{
		ID:        fmt.Sprintf("lint-run-%s", report.RunID),
		Condition: "lint_run_failed",
		Severity:  observability.SeverityHigh,
		Message: fmt.Sprintf("lint of %s found %d error(s) and %d warning(s) across %d document(s)",
			report.Scope, report.Errors, report.Warnings, report.Documents),
		TriggeredAt: time.Now().UTC(),
	}
	if err := Notifier.Notify([]observability.Alert{alert}); err != nil {
		fmt.Fprintf(os.Stderr, "lint: sending notification: %s\n", err)
	}
}
