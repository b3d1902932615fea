package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opskit/devnotes/pkg/models"
)

// Rule identifiers. Any of them can be switched off via the
// lint.disabled_rules config key.
const (
	RuleDocNoTitle           = "doc.no-title"
	RuleDocEmpty             = "doc.empty"
	RuleNoOptions            = "scenario.no-options"
	RuleOptionNoTactics      = "scenario.option-no-tactics"
	RuleNoSuccessIndicators  = "scenario.no-success-indicators"
	RuleNoCoreChallenges     = "scenario.no-core-challenges"
	RuleNoNarrative          = "scenario.no-narrative"
	RuleOptionLetterGap      = "scenario.option-letter-gap"
	RuleUnknownLabel         = "scenario.unknown-label"
	RuleUnanswered           = "qa.unanswered"
	RuleEmptyAnswer          = "qa.empty-answer"
	RuleOrphanAnswer         = "qa.orphan-answer"
	RuleDuplicateNumber      = "qa.duplicate-number"
	RuleNonSequentialNumbers = "qa.non-sequential"
	RuleFluffResidue         = "qa.fluff-residue"
)

// LintConfig carries the configuration a Linter needs.
type LintConfig struct {
	// NotesDir is the corpus root.
	NotesDir string
	// DisabledRules are rule IDs that never produce findings.
	DisabledRules []string
	// Exclude holds glob patterns matched against relative paths and
	// base names; matching files are skipped by corpus runs.
	Exclude []string
}

// LintOptions configures a lint run.
type LintOptions struct {
	// Paths restricts the run to specific files. Empty means every
	// markdown document under the notes directory.
	Paths []string
}

// LintRecorder persists per-document lint outcomes. Defined locally so
// core does not import storage.
type LintRecorder interface {
	RecordLint(runID string, at time.Time, relPath string, kind models.DocKind, errors, warnings int) error
}

// Linter applies documentation-quality rules to corpus documents.
type Linter interface {
	// LintBytes classifies and lints a single document.
	LintBytes(path string, src []byte) (models.DocKind, []models.Finding)
	// Run lints the corpus (or the given paths), records outcomes, and
	// logs a lint.completed event.
	Run(opts LintOptions) (*models.LintReport, error)
}

type linter struct {
	cfg         LintConfig
	scrubber    *Scrubber
	disabled    map[string]bool
	recorder    LintRecorder
	eventLogger EventLogger
}

// NewLinter creates a Linter. recorder and eventLogger may be nil.
func NewLinter(cfg LintConfig, scrubber *Scrubber, recorder LintRecorder, eventLogger EventLogger) Linter {
	disabled := make(map[string]bool, len(cfg.DisabledRules))
	for _, r := range cfg.DisabledRules {
		disabled[strings.TrimSpace(r)] = true
	}
	return &linter{
		cfg:         cfg,
		scrubber:    scrubber,
		disabled:    disabled,
		recorder:    recorder,
		eventLogger: eventLogger,
	}
}

// ListMarkdownFiles returns the relative paths of all markdown files under
// root in sorted order, skipping dotfiles, dot-directories, and anything
// matching an exclude glob (tested against the relative path and the base
// name).
func ListMarkdownFiles(root string, exclude []string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".md") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if excluded(rel, name, exclude) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func excluded(rel, name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

func (l *linter) Run(opts LintOptions) (*models.LintReport, error) {
	started := time.Now().UTC()
	report := &models.LintReport{
		RunID:     uuid.NewString(),
		Scope:     l.cfg.NotesDir,
		StartedAt: started,
	}

	paths := opts.Paths
	if len(paths) == 0 {
		var err error
		paths, err = ListMarkdownFiles(l.cfg.NotesDir, l.cfg.Exclude)
		if err != nil {
			return nil, fmt.Errorf("listing corpus: %w", err)
		}
	} else if len(paths) == 1 {
		report.Scope = paths[0]
	}

	fluffFindings := 0
	for _, rel := range paths {
		full := rel
		if !filepath.IsAbs(full) {
			full = filepath.Join(l.cfg.NotesDir, rel)
		}
		src, err := os.ReadFile(full)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		}

		kind, findings := l.LintBytes(rel, src)
		docErrors, docWarnings := 0, 0
		for _, f := range findings {
			switch f.Severity {
			case models.SeverityError:
				docErrors++
			case models.SeverityWarning:
				docWarnings++
			}
			if f.Rule == RuleFluffResidue {
				fluffFindings++
			}
		}
		report.Documents++
		report.Errors += docErrors
		report.Warnings += docWarnings
		report.Findings = append(report.Findings, findings...)

		if l.recorder != nil {
			if err := l.recorder.RecordLint(report.RunID, started, rel, kind, docErrors, docWarnings); err != nil {
				return nil, fmt.Errorf("recording lint for %s: %w", rel, err)
			}
		}
	}

	report.DurationMS = time.Since(started).Milliseconds()
	l.logEvent("lint.completed", map[string]any{
		"run_id":         report.RunID,
		"scope":          report.Scope,
		"documents":      report.Documents,
		"errors":         report.Errors,
		"warnings":       report.Warnings,
		"findings":       len(report.Findings),
		"fluff_findings": fluffFindings,
		"duration_ms":    report.DurationMS,
	})
	return report, nil
}

func (l *linter) LintBytes(path string, src []byte) (models.DocKind, []models.Finding) {
	kind := DetectKind(src)
	var findings []models.Finding

	switch kind {
	case models.KindScenario:
		findings = l.lintScenario(path, ParseScenario(path, src))
	case models.KindQA:
		findings = l.lintQA(path, ParseQA(path, src), src)
	default:
		if strings.TrimSpace(string(src)) == "" {
			findings = append(findings, models.Finding{
				Rule:     RuleDocEmpty,
				Severity: models.SeverityError,
				Path:     path,
				Message:  "document has no content",
			})
		}
	}

	kept := findings[:0]
	for _, f := range findings {
		if !l.disabled[f.Rule] {
			kept = append(kept, f)
		}
	}
	return kind, kept
}

func (l *linter) lintScenario(path string, doc *models.ScenarioDoc) []models.Finding {
	var findings []models.Finding
	add := func(rule string, sev models.Severity, line int, format string, args ...any) {
		findings = append(findings, models.Finding{
			Rule:     rule,
			Severity: sev,
			Path:     path,
			Line:     line,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if doc.Title == "" {
		add(RuleDocNoTitle, models.SeverityError, 0, "document has no title heading")
	}
	if len(doc.Challenges) == 0 {
		add(RuleDocEmpty, models.SeverityError, 0, "scenario document has no challenge sections")
		return findings
	}

	for _, ch := range doc.Challenges {
		name := ch.Title
		if name == "" {
			name = "untitled challenge"
		}

		if len(ch.Options) == 0 {
			add(RuleNoOptions, models.SeverityError, ch.Line, "%s has no options", name)
		}
		if len(ch.SuccessIndicators) == 0 {
			add(RuleNoSuccessIndicators, models.SeverityError, ch.Line, "%s has no success indicators", name)
		}
		if len(ch.CoreChallenges) == 0 {
			add(RuleNoCoreChallenges, models.SeverityWarning, ch.Line, "%s has no core challenges list", name)
		}
		if ch.Narrative == "" {
			add(RuleNoNarrative, models.SeverityWarning, ch.Line, "%s has no scenario narrative", name)
		}

		for i, opt := range ch.Options {
			if len(opt.Tactics) == 0 {
				add(RuleOptionNoTactics, models.SeverityError, opt.Line, "%s option %s has no tactic bullets", name, opt.Letter)
			}
			if want := string(rune('A' + i)); opt.Letter != want {
				add(RuleOptionLetterGap, models.SeverityWarning, opt.Line, "%s option lettering jumps to %s, expected %s", name, opt.Letter, want)
			}
		}

		for _, label := range ch.UnknownLabels {
			add(RuleUnknownLabel, models.SeverityWarning, ch.Line, "%s has unrecognized label %q", name, label)
		}
	}
	return findings
}

func (l *linter) lintQA(path string, doc *models.QADoc, src []byte) []models.Finding {
	var findings []models.Finding
	add := func(rule string, sev models.Severity, line int, format string, args ...any) {
		findings = append(findings, models.Finding{
			Rule:     rule,
			Severity: sev,
			Path:     path,
			Line:     line,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if doc.Questions() == 0 {
		add(RuleDocEmpty, models.SeverityError, 0, "document has no question/answer pairs")
	}

	for _, t := range doc.Topics {
		seen := make(map[int]int)
		prev := 0
		for _, p := range t.Pairs {
			switch {
			case p.Question == "" && p.Answer != "":
				add(RuleOrphanAnswer, models.SeverityWarning, p.Line, "answer with no preceding question")
				continue
			case !p.Answered:
				add(RuleUnanswered, models.SeverityError, p.Line, "question %q has no answer", truncateText(p.Question, 60))
			case p.Answer == "":
				add(RuleEmptyAnswer, models.SeverityError, p.Line, "question %q has an empty answer", truncateText(p.Question, 60))
			}

			if p.Number == 0 {
				continue
			}
			if firstLine, dup := seen[p.Number]; dup {
				add(RuleDuplicateNumber, models.SeverityWarning, p.Line, "question number %d already used at line %d", p.Number, firstLine)
			} else {
				seen[p.Number] = p.Line
			}
			switch {
			case prev == 0 && p.Number != 1:
				add(RuleNonSequentialNumbers, models.SeverityWarning, p.Line, "question numbering starts at %d instead of 1", p.Number)
			case prev > 0 && p.Number != prev+1:
				add(RuleNonSequentialNumbers, models.SeverityWarning, p.Line, "question numbering jumps from %d to %d", prev, p.Number)
			}
			prev = p.Number
		}
	}

	if l.scrubber != nil && l.scrubber.Matches(string(src)) {
		add(RuleFluffResidue, models.SeverityWarning, 0, "chat-export fluff still present; run dvn clean")
	}
	return findings
}

// logEvent emits an event if an EventLogger is configured.
func (l *linter) logEvent(eventType string, data map[string]any) {
	if l.eventLogger != nil {
		_ = l.eventLogger.LogEvent(eventType, data)
	}
}

// truncateText shortens s to max runes for use in finding messages.
func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
