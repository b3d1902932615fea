package models

import "time"

// Severity grades a lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank orders severities for fail-on comparisons. Unknown severities
// rank below info.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Finding is a single lint rule violation located in a document.
type Finding struct {
	Rule     string   `json:"rule" yaml:"rule"`
	Severity Severity `json:"severity" yaml:"severity"`
	Path     string   `json:"path" yaml:"path"`
	Line     int      `json:"line,omitempty" yaml:"line,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

// LintReport aggregates findings from one lint run. Scope is the corpus
// directory or the single document path the run covered.
type LintReport struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	Scope      string    `json:"scope" yaml:"scope"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	DurationMS int64     `json:"duration_ms" yaml:"duration_ms"`
	Documents  int       `json:"documents" yaml:"documents"`
	Errors     int       `json:"errors" yaml:"errors"`
	Warnings   int       `json:"warnings" yaml:"warnings"`
	Findings   []Finding `json:"findings" yaml:"findings"`
}

// ForPath returns the findings recorded against a single document.
func (r *LintReport) ForPath(path string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Path == path {
			out = append(out, f)
		}
	}
	return out
}

// Clean reports whether the run produced no findings at all.
func (r *LintReport) Clean() bool {
	return len(r.Findings) == 0
}

// FailsAt reports whether any finding sits at or above the given severity.
func (r *LintReport) FailsAt(level Severity) bool {
	for _, f := range r.Findings {
		if f.Severity.Rank() >= level.Rank() {
			return true
		}
	}
	return false
}
