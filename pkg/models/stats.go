package models

import "time"

// DocStats summarizes one document for stats output. The count fields
// that do not apply to the document's kind stay zero.
type DocStats struct {
	Path              string    `json:"path" yaml:"path"`
	Kind              DocKind   `json:"kind" yaml:"kind"`
	Title             string    `json:"title,omitempty" yaml:"title,omitempty"`
	Size              int64     `json:"size" yaml:"size"`
	ModTime           time.Time `json:"mod_time" yaml:"mod_time"`
	Challenges        int       `json:"challenges,omitempty" yaml:"challenges,omitempty"`
	Options           int       `json:"options,omitempty" yaml:"options,omitempty"`
	SuccessIndicators int       `json:"success_indicators,omitempty" yaml:"success_indicators,omitempty"`
	Topics            int       `json:"topics,omitempty" yaml:"topics,omitempty"`
	Questions         int       `json:"questions,omitempty" yaml:"questions,omitempty"`
	Answers           int       `json:"answers,omitempty" yaml:"answers,omitempty"`
	Unanswered        int       `json:"unanswered,omitempty" yaml:"unanswered,omitempty"`
	LintErrors        int       `json:"lint_errors,omitempty" yaml:"lint_errors,omitempty"`
	LintWarnings      int       `json:"lint_warnings,omitempty" yaml:"lint_warnings,omitempty"`
}

// CorpusStats aggregates DocStats over a scan of the notes directory.
type CorpusStats struct {
	Root              string     `json:"root" yaml:"root"`
	GeneratedAt       time.Time  `json:"generated_at" yaml:"generated_at"`
	Scenarios         int        `json:"scenarios" yaml:"scenarios"`
	QADocs            int        `json:"qa_docs" yaml:"qa_docs"`
	Freeform          int        `json:"freeform" yaml:"freeform"`
	Challenges        int        `json:"challenges" yaml:"challenges"`
	Options           int        `json:"options" yaml:"options"`
	SuccessIndicators int        `json:"success_indicators" yaml:"success_indicators"`
	Topics            int        `json:"topics" yaml:"topics"`
	Questions         int        `json:"questions" yaml:"questions"`
	Answers           int        `json:"answers" yaml:"answers"`
	Unanswered        int        `json:"unanswered" yaml:"unanswered"`
	LintErrors        int        `json:"lint_errors" yaml:"lint_errors"`
	LintWarnings      int        `json:"lint_warnings" yaml:"lint_warnings"`
	TotalBytes        int64      `json:"total_bytes" yaml:"total_bytes"`
	Documents         []DocStats `json:"documents" yaml:"documents"`
}

// TotalDocs returns the number of scanned documents of any kind.
func (s *CorpusStats) TotalDocs() int {
	return len(s.Documents)
}
