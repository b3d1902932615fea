package core

import (
	"regexp"
	"strings"

	"github.com/opskit/devnotes/pkg/models"
)

var (
	// optionLabelRe matches option headers like
	// "**Option A: Implement Intelligent Alert Routing**".
	optionLabelRe = regexp.MustCompile(`^\*\*Option\s+([A-Z])\s*:\s*(.+?)\*\*:?\s*$`)
	// boldLabelRe matches section labels like "**Scenario:**" or
	// "**Core Challenges:**", tolerating the colon inside or outside
	// the closing emphasis.
	boldLabelRe = regexp.MustCompile(`^\*\*([^*:]+?)\s*:?\s*\*\*\s*:?\s*(.*)$`)
)

// Section labels the scenario grammar recognizes.
const (
	labelScenario          = "Scenario"
	labelCoreChallenges    = "Core Challenges"
	labelSuccessIndicators = "Success Indicators"
)

// sectionMode tracks which list the current bullet lines feed.
type sectionMode int

const (
	modeNone sectionMode = iota
	modeNarrative
	modeCoreChallenges
	modeTactics
	modeSuccessIndicators
)

// ParseScenario parses a crisis-scenario document. The parser is total:
// structural violations produce a partially populated document for the
// lint engine to judge, never an error.
func ParseScenario(path string, src []byte) *models.ScenarioDoc {
	doc := &models.ScenarioDoc{Path: path}
	var ch *models.Challenge
	var opt *models.Option
	mode := modeNone

	flushOption := func() {
		if opt != nil && ch != nil {
			ch.Options = append(ch.Options, *opt)
		}
		opt = nil
	}
	flushChallenge := func() {
		flushOption()
		if ch != nil {
			doc.Challenges = append(doc.Challenges, *ch)
		}
		ch = nil
	}
	// Labels appearing before any "## " heading open an untitled
	// challenge so their content is kept for lint.
	ensureChallenge := func(line int) {
		if ch == nil {
			ch = &models.Challenge{Line: line}
		}
	}

	for i, raw := range strings.Split(string(src), "\n") {
		line := strings.TrimSpace(raw)
		lineNo := i + 1

		switch {
		case line == "":
			// Blank lines end nothing; only labels and headings switch modes.

		case strings.HasPrefix(line, "## "):
			flushChallenge()
			ch = &models.Challenge{
				Title: strings.TrimSpace(strings.TrimPrefix(line, "## ")),
				Line:  lineNo,
			}
			mode = modeNone

		case strings.HasPrefix(line, "# "):
			if doc.Title == "" {
				doc.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			}
			mode = modeNone

		case optionLabelRe.MatchString(line):
			m := optionLabelRe.FindStringSubmatch(line)
			ensureChallenge(lineNo)
			flushOption()
			opt = &models.Option{
				Letter: m[1],
				Title:  strings.TrimSpace(m[2]),
				Line:   lineNo,
			}
			mode = modeTactics

		case boldLabelRe.MatchString(line):
			m := boldLabelRe.FindStringSubmatch(line)
			label := strings.TrimSpace(m[1])
			rest := strings.TrimSpace(m[2])
			ensureChallenge(lineNo)
			flushOption()
			switch label {
			case labelScenario:
				mode = modeNarrative
				if rest != "" {
					ch.Narrative = joinText(ch.Narrative, rest)
				}
			case labelCoreChallenges:
				mode = modeCoreChallenges
			case labelSuccessIndicators:
				mode = modeSuccessIndicators
			default:
				ch.UnknownLabels = append(ch.UnknownLabels, label)
				mode = modeNone
			}

		case strings.HasPrefix(line, "- "):
			item := strings.TrimSpace(strings.TrimPrefix(line, "- "))
			if item == "" {
				continue
			}
			switch mode {
			case modeTactics:
				if opt != nil {
					opt.Tactics = append(opt.Tactics, item)
				}
			case modeCoreChallenges:
				if ch != nil {
					ch.CoreChallenges = append(ch.CoreChallenges, item)
				}
			case modeSuccessIndicators:
				if ch != nil {
					ch.SuccessIndicators = append(ch.SuccessIndicators, item)
				}
			}

		default:
			if mode == modeNarrative && ch != nil {
				ch.Narrative = joinText(ch.Narrative, line)
			}
		}
	}
	flushChallenge()
	return doc
}
