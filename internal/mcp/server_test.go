package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/opskit/devnotes/internal/core"
)

const serverQA = `# Ops Q&A

## 1. Basics

1. Q: What is an SLO?
A: A target for a service level indicator.

2. Q: What is an error budget?
`

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	notes := t.TempDir()
	if err := os.WriteFile(filepath.Join(notes, "ops.md"), []byte(serverQA), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	scrubber, err := core.NewScrubber(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	linter := core.NewLinter(core.LintConfig{NotesDir: notes}, scrubber, nil, nil)
	cleaner := core.NewCleaner(scrubber, "", nil)
	return NewServer(notes, linter, cleaner, nil, nil, "test"), notes
}

func TestNewServer(t *testing.T) {
	s, _ := newTestServer(t)
	if s.MCPServer() == nil {
		t.Fatalf("underlying server missing")
	}

	// An empty version falls back to "dev".
	if s := NewServer("", nil, nil, nil, nil, ""); s.MCPServer() == nil {
		t.Fatalf("underlying server missing for default version")
	}
}

func TestHandleLintCorpus(t *testing.T) {
	s, _ := newTestServer(t)

	res, out, err := s.handleLintCorpus(context.Background(), nil, lintCorpusInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != nil {
		t.Fatalf("unexpected error result: %+v", res)
	}
	if out.Documents != 1 || out.RunID == "" {
		t.Fatalf("output = %+v", out)
	}
	// The fixture carries an unanswered question.
	if out.Errors == 0 {
		t.Fatalf("expected errors, got %+v", out)
	}
}

func TestHandleLintCorpus_NoLinter(t *testing.T) {
	s := NewServer("", nil, nil, nil, nil, "test")

	res, _, err := s.handleLintCorpus(context.Background(), nil, lintCorpusInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil || !res.IsError {
		t.Fatalf("expected error result, got %+v", res)
	}
}

func TestHandleCleanDocument(t *testing.T) {
	s, notes := newTestServer(t)
	path := filepath.Join(notes, "ops.md")

	res, out, err := s.handleCleanDocument(context.Background(), nil, cleanDocumentInput{Path: path, DryRun: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != nil {
		t.Fatalf("unexpected error result: %+v", res)
	}
	if out.Questions != 2 || out.Unanswered != 1 {
		t.Fatalf("output = %+v", out)
	}
}

func TestHandleCleanDocument_RelativePath(t *testing.T) {
	s, _ := newTestServer(t)

	// Relative paths resolve against the notes dir, not the server's cwd.
	res, out, err := s.handleCleanDocument(context.Background(), nil, cleanDocumentInput{Path: "ops.md", DryRun: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != nil {
		t.Fatalf("unexpected error result: %+v", res)
	}
	if out.Questions != 2 {
		t.Fatalf("output = %+v", out)
	}
}

func TestHandleCleanDocument_MissingPath(t *testing.T) {
	s, _ := newTestServer(t)

	res, _, err := s.handleCleanDocument(context.Background(), nil, cleanDocumentInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil || !res.IsError {
		t.Fatalf("expected error result, got %+v", res)
	}
}

func TestHandleCorpusStats_NoCatalog(t *testing.T) {
	s, _ := newTestServer(t)

	res, _, err := s.handleCorpusStats(context.Background(), nil, corpusStatsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil || !res.IsError {
		t.Fatalf("expected error result, got %+v", res)
	}
}

func TestHandleGetAlerts_NoEngine(t *testing.T) {
	s, _ := newTestServer(t)

	res, _, err := s.handleGetAlerts(context.Background(), nil, getAlertsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil || !res.IsError {
		t.Fatalf("expected error result, got %+v", res)
	}
}
