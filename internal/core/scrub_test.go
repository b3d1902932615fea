package core

import (
	"strings"
	"testing"
)

func newTestScrubber(t *testing.T) *Scrubber {
	t.Helper()
	s, err := NewScrubber(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestScrub_RemovesChatFluff(t *testing.T) {
	s := newTestScrubber(t)

	tests := []struct {
		name  string
		input string
	}{
		{"continue prompt", "Do you want me to continue to #41?"},
		{"proceed exchange", "You said:\nProceed\nChatGPT said:\nPerfect."},
		{"expansion offer", "If you want, I can continue with replication topics."},
		{"meta commentary", "We've now covered the core material."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "Q: Real question?\nA: Real answer.\n" + tt.input + "\n"
			result := s.Scrub(text)
			if result.Removed == 0 {
				t.Fatalf("expected fluff to be removed from %q", tt.input)
			}
			if !strings.Contains(result.Text, "Real answer.") {
				t.Fatalf("real content lost: %q", result.Text)
			}
		})
	}
}

func TestScrub_CleanTextUntouched(t *testing.T) {
	s := newTestScrubber(t)
	text := "Q: What is a vacuum?\nA: Reclaims dead tuples.\n"

	result := s.Scrub(text)
	if result.Removed != 0 {
		t.Fatalf("clean text reported %d removals", result.Removed)
	}
	if result.Text != text {
		t.Fatalf("clean text rewritten:\n%q\n%q", text, result.Text)
	}
}

func TestScrub_SpacedFluffRemovedInOnePass(t *testing.T) {
	s := newTestScrubber(t)

	// A space run inside a fluff phrase must not hide it from the first
	// scrub: the result has to be a fixpoint.
	first := s.Scrub("keep this. At  this point we stop. keep that.")
	if first.Removed == 0 {
		t.Fatalf("spaced fluff survived: %q", first.Text)
	}
	if strings.Contains(first.Text, "this point") {
		t.Fatalf("fluff residue in first pass: %q", first.Text)
	}

	second := s.Scrub(first.Text)
	if second.Removed != 0 || second.Text != first.Text {
		t.Fatalf("scrub not idempotent:\n%q\n%q", first.Text, second.Text)
	}
}

func TestScrub_KeepsAnswerContinuations(t *testing.T) {
	s := newTestScrubber(t)

	// Lines that merely open like chat scaffolding are real content.
	text := "1. Q: How do we prepare for the failover drill?\n" +
		"A: Start with a runbook.\n" +
		"Here's a checklist your team should keep on hand during the drill.\n" +
		"If you want resilience, add a second region.\n" +
		"Perfect. Now the drill can run unattended.\n"

	result := s.Scrub(text)
	if result.Removed != 0 {
		t.Fatalf("benign lines removed (%d):\n%s", result.Removed, result.Text)
	}
	for _, want := range []string{"checklist", "second region", "unattended"} {
		if !strings.Contains(result.Text, want) {
			t.Fatalf("%q lost:\n%s", want, result.Text)
		}
	}
}

func TestScrub_NormalizesMojibakeAndRuns(t *testing.T) {
	s := newTestScrubber(t)

	result := s.Scrub("primary â†’ replica  sync....")
	if !strings.Contains(result.Text, "primary -> replica sync.") {
		t.Fatalf("normalization failed: %q", result.Text)
	}
}

func TestScrub_ExtraPatterns(t *testing.T) {
	s, err := NewScrubber([]string{`As an AI language model[^.\n]*\.`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := s.Scrub("As an AI language model I cannot.\nA: Real answer.\n")
	if result.Removed == 0 {
		t.Fatalf("extra pattern not applied")
	}
	if !strings.Contains(result.Text, "Real answer.") {
		t.Fatalf("content lost: %q", result.Text)
	}
}

func TestNewScrubber_InvalidPattern(t *testing.T) {
	if _, err := NewScrubber([]string{`(`}); err == nil {
		t.Fatalf("expected error for invalid pattern")
	}
}

func TestMatches_ReportsWithoutRewriting(t *testing.T) {
	s := newTestScrubber(t)

	if !s.Matches("Do you want me to continue to #9?") {
		t.Fatalf("Matches should detect fluff")
	}
	if s.Matches("Q: Clean question?\nA: Clean answer.") {
		t.Fatalf("Matches fired on clean text")
	}
}
