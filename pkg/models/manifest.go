package models

import "time"

// ManifestEntry records what the toolchain knows about one tracked
// document: its content hash and the outcome of the last lint run that
// covered it.
type ManifestEntry struct {
	Path         string    `yaml:"path"`
	Kind         DocKind   `yaml:"kind"`
	Title        string    `yaml:"title,omitempty"`
	SHA256       string    `yaml:"sha256"`
	SizeBytes    int64     `yaml:"size_bytes"`
	UpdatedAt    time.Time `yaml:"updated_at"`
	LastLintAt   time.Time `yaml:"last_lint_at,omitempty"`
	LastLintRun  string    `yaml:"last_lint_run,omitempty"`
	LintErrors   int       `yaml:"lint_errors"`
	LintWarnings int       `yaml:"lint_warnings"`
}

// Stale reports whether the document changed since it was last linted.
func (e *ManifestEntry) Stale() bool {
	return e.LastLintAt.IsZero() || e.UpdatedAt.After(e.LastLintAt)
}

// ManifestFilter selects manifest entries. Zero values match everything.
type ManifestFilter struct {
	Kind       DocKind
	Stale      bool // entries changed since their last lint
	WithErrors bool // entries whose last lint produced errors
}

// Matches reports whether the entry passes the filter.
func (f ManifestFilter) Matches(e ManifestEntry) bool {
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}
	if f.Stale && !e.Stale() {
		return false
	}
	if f.WithErrors && e.LintErrors == 0 {
		return false
	}
	return true
}
