package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var completionInstall bool

// completionShell describes one supported shell: how to generate its
// script, where a user-local install lives, and how to load it ad hoc.
type completionShell struct {
	generate    func(io.Writer) error
	installRel  []string
	loadHint    string
	postInstall string
}

var completionShells = map[string]completionShell{
	"bash": {
		generate:    func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) },
		installRel:  []string{".local", "share", "bash-completion", "completions", "dvn"},
		loadHint:    `eval "$(dvn completion bash)"`,
		postInstall: "Restart your shell or source the installed file.",
	},
	"zsh": {
		generate:    func(w io.Writer) error { return rootCmd.GenZshCompletion(w) },
		installRel:  []string{".local", "share", "zsh", "site-functions", "_dvn"},
		loadHint:    `eval "$(dvn completion zsh)"`,
		postInstall: "Ensure the directory is in your fpath, then run: autoload -Uz compinit && compinit",
	},
	"fish": {
		generate:    func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
		installRel:  []string{".config", "fish", "completions", "dvn.fish"},
		loadHint:    "dvn completion fish | source",
		postInstall: "Completions are picked up by new fish sessions automatically.",
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Set up shell completions for dvn",
	Long: `Set up shell tab-completions for dvn commands, flags, and arguments.

Supported shells: bash, zsh, fish

Quick install (writes the script into your user completion directory):

  dvn completion bash --install

Or print the completion script to stdout (for manual setup):

  dvn completion bash`,
	ValidArgs: []string{"bash", "zsh", "fish"},
	Args:      cobra.ExactArgs(1),
	RunE:      runCompletion,
}

func init() {
	completionCmd.Flags().BoolVar(&completionInstall, "install", false,
		"Install completions into your shell profile")

	// Remove Cobra's default completion command and add ours.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
	shell, ok := completionShells[args[0]]
	if !ok {
		return fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish)", args[0])
	}

	if completionInstall {
		return installCompletion(args[0], shell)
	}

	// Hints go to stderr so the script can be piped from stdout.
	fmt.Fprintf(cmd.OutOrStderr(), "# To load completions in your current session:\n#   %s\n#\n# To install permanently:\n#   dvn completion %s --install\n#\n", shell.loadHint, args[0])
	return shell.generate(cmd.OutOrStdout())
}

func installCompletion(name string, shell completionShell) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("detecting home directory: %w", err)
	}
	target := filepath.Join(append([]string{home}, shell.installRel...)...)

	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("creating completion directory: %w", err)
	}
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating completion file %s: %w", target, err)
	}
	genErr := shell.generate(f)
	closeErr := f.Close()
	if genErr != nil {
		return genErr
	}
	if closeErr != nil {
		return fmt.Errorf("closing completion file %s: %w", target, closeErr)
	}

	fmt.Printf("%s completions installed to %s\n", name, target)
	fmt.Println(shell.postInstall)
	return nil
}
