package core

import (
	"testing"

	"pgregory.net/rapid"
)

// qaTextGenerator draws short prose fragments safe to embed in Q&A lines:
// no newlines, no leading markers the parser would reclassify.
func qaTextGenerator() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-z][a-z ]{2,40}[a-z]`)
}

// qaDocGenerator draws a canonical Q&A document source.
func qaDocGenerator() *rapid.Generator[string] {
	return rapid.Custom(func(rt *rapid.T) string {
		out := "# " + qaTextGenerator().Draw(rt, "title") + "\n\n"
		topics := rapid.IntRange(1, 4).Draw(rt, "topics")
		q := 0
		for ti := 1; ti <= topics; ti++ {
			out += "## " + itoa(ti) + ". " + qaTextGenerator().Draw(rt, "topicTitle") + "\n\n"
			pairs := rapid.IntRange(1, 5).Draw(rt, "pairs")
			for pi := 0; pi < pairs; pi++ {
				q++
				out += itoa(q) + ". Q: " + qaTextGenerator().Draw(rt, "question") + "?\n"
				if rapid.Bool().Draw(rt, "answered") {
					out += "A: " + qaTextGenerator().Draw(rt, "answer") + ".\n"
				}
				out += "\n"
			}
		}
		return out[:len(out)-1]
	})
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// Feature: devnotes, Property: Render-Parse Fixpoint
// Rendering a parsed canonical document and parsing it again yields the
// same rendering: RenderQA(ParseQA(RenderQA(doc))) == RenderQA(doc).
func TestProperty_RenderParseFixpoint(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		src := qaDocGenerator().Draw(rt, "src")

		doc := ParseQA("prop.md", []byte(src))
		first := RenderQA(doc)
		second := RenderQA(ParseQA("prop.md", []byte(first)))

		if first != second {
			t.Fatalf("render not a fixpoint:\nfirst:\n%s\nsecond:\n%s", first, second)
		}
	})
}

// Feature: devnotes, Property: Parse Preserves Pair Count
// Re-parsing rendered output never gains or loses question pairs.
func TestProperty_ParsePreservesPairCount(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		src := qaDocGenerator().Draw(rt, "src")

		doc := ParseQA("prop.md", []byte(src))
		again := ParseQA("prop.md", []byte(RenderQA(doc)))

		if doc.Questions() != again.Questions() {
			t.Fatalf("pair count changed: %d -> %d", doc.Questions(), again.Questions())
		}
		if doc.Unanswered() != again.Unanswered() {
			t.Fatalf("unanswered count changed: %d -> %d", doc.Unanswered(), again.Unanswered())
		}
	})
}
