package core

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// scrubInputGenerator mixes arbitrary text with known fluff phrases and
// irregular spacing, so the properties get inputs the scrubber actually
// has opinions about.
func scrubInputGenerator() *rapid.Generator[string] {
	segment := rapid.OneOf(
		rapid.String(),
		rapid.SampledFrom([]string{
			"At  this point we stop.",
			"Do you want me to continue to #3?",
			"We've now  covered the basics.",
			"If you want, I can expand this list.",
			"A: Real answer about replication.",
		}),
	)
	return rapid.Custom(func(rt *rapid.T) string {
		parts := rapid.SliceOfN(segment, 1, 5).Draw(rt, "parts")
		sep := rapid.SampledFrom([]string{" ", "  ", "\n"}).Draw(rt, "sep")
		return strings.Join(parts, sep)
	})
}

// Feature: devnotes, Property: Scrub Idempotence
// Scrubbing already-scrubbed text removes nothing and changes nothing.
func TestProperty_ScrubIdempotent(t *testing.T) {
	s, err := NewScrubber(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rapid.Check(t, func(rt *rapid.T) {
		input := scrubInputGenerator().Draw(rt, "input")

		first := s.Scrub(input)
		second := s.Scrub(first.Text)

		if second.Removed != 0 {
			t.Fatalf("second scrub removed %d matches from %q", second.Removed, first.Text)
		}
		if second.Text != first.Text {
			t.Fatalf("second scrub changed text:\n%q\n%q", first.Text, second.Text)
		}
	})
}

// Feature: devnotes, Property: Scrubbed Text Has No Residue
// After a scrub, Matches reports no remaining fluff.
func TestProperty_ScrubLeavesNoResidue(t *testing.T) {
	s, err := NewScrubber(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rapid.Check(t, func(rt *rapid.T) {
		input := scrubInputGenerator().Draw(rt, "input")

		result := s.Scrub(input)
		if s.Matches(result.Text) {
			t.Fatalf("residue remains after scrub: %q", result.Text)
		}
	})
}
