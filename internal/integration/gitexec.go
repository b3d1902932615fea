package integration

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitExecutor runs the git subcommands the pre-commit hook needs.
type GitExecutor interface {
	// StagedFiles returns the paths of files staged for commit, relative
	// to the repository root. Deleted files are excluded.
	StagedFiles(repoDir string) ([]string, error)
	// TopLevel returns the absolute path of the repository root.
	TopLevel(dir string) (string, error)
	// HooksDir returns the absolute path of the repository's hooks
	// directory, honoring core.hooksPath.
	HooksDir(dir string) (string, error)
}

type gitExecutor struct{}

// NewGitExecutor creates a GitExecutor shelling out to the git binary.
func NewGitExecutor() GitExecutor {
	return &gitExecutor{}
}

// runGit executes git with the given arguments in dir and returns
// trimmed stdout. Stderr is folded into the error.
func (g *gitExecutor) runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (g *gitExecutor) StagedFiles(repoDir string) ([]string, error) {
	out, err := g.runGit(repoDir, "diff", "--cached", "--name-only", "--diff-filter=ACM")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

func (g *gitExecutor) TopLevel(dir string) (string, error) {
	return g.runGit(dir, "rev-parse", "--show-toplevel")
}

func (g *gitExecutor) HooksDir(dir string) (string, error) {
	out, err := g.runGit(dir, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(out) {
		return out, nil
	}
	top, err := g.TopLevel(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(top, out), nil
}
