package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/opskit/devnotes/pkg/models"
)

// CleanOptions configures CleanFile and ReorderFile.
type CleanOptions struct {
	// InPlace rewrites the source file instead of a sibling output file.
	InPlace bool
	// DryRun computes the report without writing anything.
	DryRun bool
	// OutputPath overrides the destination.
	OutputPath string
	// Renumber overrides the configured renumber mode.
	Renumber models.RenumberMode
}

// Cleaner runs the scrub/parse/renumber/render pipeline over Q&A
// documents. Scenario documents are refused: the pipeline exists for raw
// chat exports, and a rewrite would flatten scenario structure.
type Cleaner interface {
	CleanText(path string, src []byte, mode models.RenumberMode) (string, *models.CleanReport, error)
	CleanFile(path string, opts CleanOptions) (*models.CleanReport, error)
	ReorderFile(path string, opts CleanOptions) (*models.CleanReport, error)
}

type cleaner struct {
	scrubber    *Scrubber
	defaultMode models.RenumberMode
	eventLogger EventLogger
}

// NewCleaner creates a Cleaner. mode is the default renumber mode applied
// when options do not override it. eventLogger may be nil.
func NewCleaner(scrubber *Scrubber, mode models.RenumberMode, eventLogger EventLogger) Cleaner {
	if mode == "" {
		mode = models.RenumberTopic
	}
	return &cleaner{
		scrubber:    scrubber,
		defaultMode: mode,
		eventLogger: eventLogger,
	}
}

// CleanText runs the pipeline on raw bytes: scrub fluff, parse, renumber,
// render canonical. Cleaning canonical output again is a no-op.
func (c *cleaner) CleanText(path string, src []byte, mode models.RenumberMode) (string, *models.CleanReport, error) {
	if kind := DetectKind(src); kind == models.KindScenario {
		return "", nil, fmt.Errorf("%s is a scenario document; clean applies to Q&A documents", path)
	}
	if mode == "" {
		mode = c.defaultMode
	}

	scrubbed := c.scrubber.Scrub(string(src))
	doc := ParseQA(path, []byte(scrubbed.Text))
	renumbered := Renumber(doc, mode)
	out := RenderQA(doc)

	report := &models.CleanReport{
		RunID:        uuid.NewString(),
		Path:         path,
		Topics:       countTitledTopics(doc),
		Questions:    doc.Questions(),
		Answers:      doc.Questions() - doc.Unanswered(),
		Unanswered:   doc.Unanswered(),
		FluffRemoved: scrubbed.Removed,
		Renumbered:   renumbered,
		Changed:      out != string(src),
	}
	return out, report, nil
}

func (c *cleaner) CleanFile(path string, opts CleanOptions) (*models.CleanReport, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cleaning %s: %w", path, err)
	}
	out, report, err := c.CleanText(path, src, opts.Renumber)
	if err != nil {
		return nil, err
	}
	if opts.DryRun {
		return report, nil
	}

	dest := cleanDestination(path, opts, "_clean")
	report.OutputPath = dest
	if dest == path && !report.Changed {
		return report, nil
	}
	if err := os.WriteFile(dest, []byte(out), 0o600); err != nil {
		return nil, fmt.Errorf("cleaning %s: writing %s: %w", path, dest, err)
	}

	c.logEvent("document.cleaned", map[string]any{
		"run_id":        report.RunID,
		"path":          path,
		"output_path":   dest,
		"changed":       report.Changed,
		"fluff_removed": report.FluffRemoved,
		"renumbered":    report.Renumbered,
		"topics":        report.Topics,
		"questions":     report.Questions,
		"answers":       report.Answers,
		"unanswered":    report.Unanswered,
	})
	return report, nil
}

// ReorderFile sorts questions back into their original numeric order and
// renumbers 1..N. No scrubbing happens here; reorder is structural only.
func (c *cleaner) ReorderFile(path string, opts CleanOptions) (*models.CleanReport, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reordering %s: %w", path, err)
	}
	if kind := DetectKind(src); kind == models.KindScenario {
		return nil, fmt.Errorf("%s is a scenario document; reorder applies to Q&A documents", path)
	}

	doc := ParseQA(path, src)
	moved := Reorder(doc)
	out := RenderQA(doc)

	report := &models.CleanReport{
		RunID:      uuid.NewString(),
		Path:       path,
		Topics:     countTitledTopics(doc),
		Questions:  doc.Questions(),
		Answers:    doc.Questions() - doc.Unanswered(),
		Unanswered: doc.Unanswered(),
		Reordered:  moved,
		Changed:    out != string(src),
	}
	if opts.DryRun {
		return report, nil
	}

	dest := cleanDestination(path, opts, "_ordered")
	report.OutputPath = dest
	if dest == path && !report.Changed {
		return report, nil
	}
	if err := os.WriteFile(dest, []byte(out), 0o600); err != nil {
		return nil, fmt.Errorf("reordering %s: writing %s: %w", path, dest, err)
	}

	c.logEvent("document.reordered", map[string]any{
		"run_id":    report.RunID,
		"path":      path,
		"output":    dest,
		"changed":   report.Changed,
		"questions": report.Questions,
	})
	return report, nil
}

// cleanDestination resolves where pipeline output goes: an explicit
// output path, the source itself, or a suffixed sibling file.
func cleanDestination(path string, opts CleanOptions, suffix string) string {
	if opts.OutputPath != "" {
		return opts.OutputPath
	}
	if opts.InPlace {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// countTitledTopics counts topics that render a header line; implicit
// preamble topics have no header and don't count.
func countTitledTopics(doc *models.QADoc) int {
	n := 0
	for _, t := range doc.Topics {
		if t.Title != "" || t.Number > 0 {
			n++
		}
	}
	return n
}

func (c *cleaner) logEvent(eventType string, data map[string]any) {
	if c.eventLogger != nil {
		_ = c.eventLogger.LogEvent(eventType, data)
	}
}
