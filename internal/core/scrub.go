package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/opskit/devnotes/pkg/models"
)

// builtinFluffPatterns matches the conversational residue chat exports
// leave behind: solicitations to continue, self-congratulation, meta
// commentary about the list being built. Applied case-insensitively with
// "." spanning newlines, so block fluff disappears in one pass. Sentence
// tails use [^.\n]* to stay inside one sentence on one line.
var builtinFluffPatterns = []string{
	`If you want, I can expand this.*?Do you want me to do that next\?`,
	`If you want, I can continue[^.\n]*\.`,
	`You said:\s*Proceed\s*ChatGPT said:\s*Perfect\.`,
	`You said:\s*Proceed\s*ChatGPT said:`,
	`Perfect\. Here['’]s a comprehensive.*?migrations\.`,
	`Perfect\. Let['’]s continue[^.\n]*\.`,
	`Here['’]s a comprehensive, practical[^\n]*\.`,
	`Comprehensive Practical DevOps DB Q&A`,
	`Do you want me to continue to #\d+\?`,
	`Do you want me to[^?\n]*\?`,
	`I can keep going and expand this[^.\n]*\.`,
	`I can also create[^.\n]*\.`,
	`I can expand[^.\n]*\.`,
	`This brings us to \d+[^.\n]*\.`,
	`We['’]ve now covered[^.\n]*\.`,
	`At this point[^.\n]*\.`,
	`continuing from (?:#\d+ onward|what we['’]ve covered)[^.\n]*\.?`,
}

// builtinFluffLinePatterns drop whole lines that are pure chat scaffolding
// once the block patterns have run. Each pattern pins down a full phrase,
// so answer text that merely opens with the same words survives.
var builtinFluffLinePatterns = []string{
	`^Perfect\.$`,
	`^You said:$`,
	`^ChatGPT said:$`,
	`^Do you want me to .*\?$`,
	`^If you want, I can (?:also |expand|continue|keep going).*$`,
	`^Here['’]s a comprehensive, practical .*$`,
	`^\d+\+ comprehensive, practical .*$`,
	`^covering .+ specifically\.?$`,
	`^continuing from #\d+.*$`,
}

var (
	multiSpaceRe = regexp.MustCompile(` {2,}`)
	periodRunRe  = regexp.MustCompile(`\.{2,}`)
)

// Scrubber removes chat-export fluff from document text.
type Scrubber struct {
	blocks []*regexp.Regexp
	lines  []*regexp.Regexp
}

// NewScrubber compiles the built-in fluff patterns plus any extra patterns
// from configuration. Extra patterns run block-level after the built-ins
// and get the same case-insensitive, newline-spanning flags.
func NewScrubber(extra []string) (*Scrubber, error) {
	s := &Scrubber{}
	for _, p := range builtinFluffPatterns {
		s.blocks = append(s.blocks, regexp.MustCompile(`(?is)`+p))
	}
	for _, p := range extra {
		re, err := regexp.Compile(`(?is)` + p)
		if err != nil {
			return nil, fmt.Errorf("compiling fluff pattern %q: %w", p, err)
		}
		s.blocks = append(s.blocks, re)
	}
	for _, p := range builtinFluffLinePatterns {
		s.lines = append(s.lines, regexp.MustCompile(`(?i)`+p))
	}
	return s, nil
}

// Scrub removes fluff and normalizes the text: mojibake arrows become
// "->", space runs collapse to one space, period runs to a single period.
// Normalization runs before matching, so a fluff phrase hidden by a space
// run still matches, and passes repeat until no pattern fires: the output
// is a fixpoint, even when a removal splices new fluff together at the
// seam. The returned count is the number of matches removed, so zero
// means the text was already clean.
func (s *Scrubber) Scrub(text string) models.ScrubResult {
	text = normalizeText(text)
	removed := 0
	for {
		pass := 0
		for _, re := range s.blocks {
			text = re.ReplaceAllStringFunc(text, func(string) string {
				pass++
				return ""
			})
		}

		var kept []string
		for _, line := range strings.Split(text, "\n") {
			if s.matchesLinePattern(strings.TrimSpace(line)) {
				pass++
				continue
			}
			kept = append(kept, line)
		}
		text = strings.Join(kept, "\n")
		text = normalizeText(text)

		if pass == 0 {
			return models.ScrubResult{Text: text, Removed: removed}
		}
		removed += pass
	}
}

func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "â†’", "->")
	text = multiSpaceRe.ReplaceAllString(text, " ")
	return periodRunRe.ReplaceAllString(text, ".")
}

// Matches reports whether any fluff pattern still matches, without
// rewriting. The lint engine uses it to flag residue. Matching happens on
// normalized text, so everything Scrub would remove counts as residue.
func (s *Scrubber) Matches(text string) bool {
	text = normalizeText(text)
	for _, re := range s.blocks {
		if re.MatchString(text) {
			return true
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if s.matchesLinePattern(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

func (s *Scrubber) matchesLinePattern(line string) bool {
	if line == "" {
		return false
	}
	for _, re := range s.lines {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
