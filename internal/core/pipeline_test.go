package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opskit/devnotes/pkg/models"
)

const rawExport = `# Database Q&A

1. Q: What is replication lag?
A: The delay between a write on the primary and its visibility on a replica.

Do you want me to continue to #2?

5. Q: What causes bloat?
A: Dead tuples that vacuum has not yet reclaimed.

If you want, I can expand this into a full operations guide. Do you want me to do that next?
`

func newTestCleaner(t *testing.T) Cleaner {
	t.Helper()
	s, err := NewScrubber(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewCleaner(s, models.RenumberTopic, nil)
}

func TestCleanText_ScrubsAndRenumbers(t *testing.T) {
	c := newTestCleaner(t)

	out, report, err := c.CleanText("raw.md", []byte(rawExport), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(out, "Do you want") {
		t.Fatalf("fluff survived cleaning:\n%s", out)
	}
	if !strings.Contains(out, "2. Q: What causes bloat?") {
		t.Fatalf("renumbering failed:\n%s", out)
	}
	if report.FluffRemoved == 0 {
		t.Fatalf("report.FluffRemoved = 0")
	}
	if report.Questions != 2 || report.Unanswered != 0 {
		t.Fatalf("report = %+v", report)
	}
	if report.Renumbered != 1 {
		t.Fatalf("renumbered = %d, want 1", report.Renumbered)
	}
	if !report.Changed {
		t.Fatalf("report should mark the document changed")
	}
}

func TestCleanText_IdempotentOnCanonicalOutput(t *testing.T) {
	c := newTestCleaner(t)

	first, _, err := c.CleanText("raw.md", []byte(rawExport), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, report, err := c.CleanText("raw.md", []byte(first), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second != first {
		t.Fatalf("cleaning canonical output changed it:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if report.Changed {
		t.Fatalf("second clean reported a change")
	}
	if report.FluffRemoved != 0 {
		t.Fatalf("second clean removed %d fluff matches", report.FluffRemoved)
	}
}

func TestCleanText_RefusesScenario(t *testing.T) {
	c := newTestCleaner(t)

	src := "# S\n\n## C\n\n**Scenario:** trouble\n\n**Option A: Fix**\n- do it\n"
	if _, _, err := c.CleanText("scenario.md", []byte(src), ""); err == nil {
		t.Fatalf("expected scenario documents to be refused")
	}
}

func TestCleanFile_WritesSiblingByDefault(t *testing.T) {
	c := newTestCleaner(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "raw.md")
	if err := os.WriteFile(src, []byte(rawExport), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	report, err := c.CleanFile(src, CleanOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := filepath.Join(dir, "raw_clean.md")
	if report.OutputPath != want {
		t.Fatalf("output path = %q, want %q", report.OutputPath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("sibling file not written: %v", err)
	}

	// Source untouched.
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("reading source: %v", err)
	}
	if string(data) != rawExport {
		t.Fatalf("source file was modified")
	}
}

func TestCleanFile_InPlaceAndDryRun(t *testing.T) {
	c := newTestCleaner(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "raw.md")
	if err := os.WriteFile(src, []byte(rawExport), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := c.CleanFile(src, CleanOptions{DryRun: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(src)
	if string(data) != rawExport {
		t.Fatalf("dry run wrote to disk")
	}

	if _, err := c.CleanFile(src, CleanOptions{InPlace: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ = os.ReadFile(src)
	if strings.Contains(string(data), "Do you want") {
		t.Fatalf("in-place clean left fluff behind")
	}
}

func TestReorderFile_SortsQuestions(t *testing.T) {
	c := newTestCleaner(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "shuffled.md")
	content := "# T\n\n3. Q: third?\nA: c.\n\n1. Q: first?\nA: a.\n\n2. Q: second?\nA: b.\n"
	if err := os.WriteFile(src, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	report, err := c.ReorderFile(src, CleanOptions{InPlace: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Reordered {
		t.Fatalf("report should mark questions moved")
	}

	data, _ := os.ReadFile(src)
	out := string(data)
	fi := strings.Index(out, "first?")
	si := strings.Index(out, "second?")
	ti := strings.Index(out, "third?")
	if !(fi < si && si < ti) {
		t.Fatalf("questions not sorted:\n%s", out)
	}
}

func TestReorderFile_RefusesScenario(t *testing.T) {
	c := newTestCleaner(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "scenario.md")
	content := "# S\n\n## C\n\n**Option A: Fix**\n- do\n"
	if err := os.WriteFile(src, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := c.ReorderFile(src, CleanOptions{}); err == nil {
		t.Fatalf("expected scenario documents to be refused")
	}
}
