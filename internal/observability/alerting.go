package observability

import (
	"fmt"
	"time"

	"github.com/opskit/devnotes/pkg/models"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert represents a triggered alert condition.
type Alert struct {
	ID          string        `json:"id"`
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertThresholds configures when alerts should fire.
type AlertThresholds struct {
	StaleLintDays   int `yaml:"stale_lint_days" json:"stale_lint_days"`
	MaxFluffMatches int `yaml:"max_fluff_matches" json:"max_fluff_matches"`
	MaxOpenFindings int `yaml:"max_open_findings" json:"max_open_findings"`
	MaxUnanswered   int `yaml:"max_unanswered" json:"max_unanswered"`
}

// DefaultAlertThresholds returns sensible defaults for alert thresholds.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		StaleLintDays:   7,
		MaxFluffMatches: 0,
		MaxOpenFindings: 25,
		MaxUnanswered:   10,
	}
}

// ManifestReader provides the recorded lint state of tracked documents.
// Defined locally so observability does not import the storage package.
type ManifestReader interface {
	All() ([]models.ManifestEntry, error)
}

// StatsSource provides fresh corpus statistics.
type StatsSource interface {
	BuildStats() (*models.CorpusStats, error)
}

// AlertEngine evaluates alert conditions against the manifest, the event
// log, and the corpus statistics.
type AlertEngine interface {
	Evaluate() ([]Alert, error)
}

type alertEngine struct {
	eventLog   EventLog
	manifest   ManifestReader
	stats      StatsSource
	thresholds AlertThresholds
}

// NewAlertEngine creates a new AlertEngine. eventLog and stats may be nil;
// the conditions that need them are skipped.
func NewAlertEngine(eventLog EventLog, manifest ManifestReader, stats StatsSource, thresholds AlertThresholds) AlertEngine {
	return &alertEngine{
		eventLog:   eventLog,
		manifest:   manifest,
		stats:      stats,
		thresholds: thresholds,
	}
}

// Evaluate checks all alert conditions, returning any triggered alerts.
func (ae *alertEngine) Evaluate() ([]Alert, error) {
	now := time.Now().UTC()
	var alerts []Alert

	entries, err := ae.manifest.All()
	if err != nil {
		return nil, fmt.Errorf("reading manifest for alerts: %w", err)
	}

	alerts = append(alerts, ae.checkLintErrors(now, entries)...)
	alerts = append(alerts, ae.checkStaleLint(now, entries)...)

	fluffAlerts, err := ae.checkFluffResidue(now)
	if err != nil {
		return nil, fmt.Errorf("checking fluff residue: %w", err)
	}
	alerts = append(alerts, fluffAlerts...)

	alerts = append(alerts, ae.checkOpenFindings(now, entries)...)

	unansweredAlerts, err := ae.checkUnanswered(now)
	if err != nil {
		return nil, fmt.Errorf("checking unanswered questions: %w", err)
	}
	alerts = append(alerts, unansweredAlerts...)

	return alerts, nil
}

// checkLintErrors fires per document whose last lint recorded errors.
func (ae *alertEngine) checkLintErrors(now time.Time, entries []models.ManifestEntry) []Alert {
	var alerts []Alert
	for _, e := range entries {
		if e.LintErrors > 0 {
			alerts = append(alerts, Alert{
				ID:          fmt.Sprintf("lint-errors-%s", e.Path),
				Condition:   "lint_errors_present",
				Severity:    SeverityHigh,
				Message:     fmt.Sprintf("%s has %d lint error(s) from its last lint run", e.Path, e.LintErrors),
				TriggeredAt: now,
			})
		}
	}
	return alerts
}

// checkStaleLint fires when tracked documents changed without being
// re-linted for longer than the threshold, or were never linted at all.
func (ae *alertEngine) checkStaleLint(now time.Time, entries []models.ManifestEntry) []Alert {
	threshold := time.Duration(ae.thresholds.StaleLintDays) * 24 * time.Hour
	stale := 0
	for _, e := range entries {
		switch {
		case e.LastLintAt.IsZero():
			stale++
		case e.UpdatedAt.Sub(e.LastLintAt) > threshold:
			stale++
		}
	}
	if stale == 0 {
		return nil
	}
	return []Alert{{
		ID:          "lint-stale",
		Condition:   "lint_stale",
		Severity:    SeverityMedium,
		Message:     fmt.Sprintf("%d document(s) changed more than %d days ago without being re-linted", stale, ae.thresholds.StaleLintDays),
		TriggeredAt: now,
	}}
}

// checkFluffResidue fires when the latest lint run still found chat-export
// fluff above the threshold.
func (ae *alertEngine) checkFluffResidue(now time.Time) ([]Alert, error) {
	if ae.eventLog == nil {
		return nil, nil
	}
	events, err := ae.eventLog.Read(EventFilter{Type: "lint.completed"})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	latest := events[len(events)-1]
	fluff := dataInt(latest.Data, "fluff_findings")
	if fluff <= ae.thresholds.MaxFluffMatches {
		return nil, nil
	}
	return []Alert{{
		ID:          "fluff-residue",
		Condition:   "fluff_residue",
		Severity:    SeverityMedium,
		Message:     fmt.Sprintf("latest lint run found fluff residue in %d document(s); run dvn clean", fluff),
		TriggeredAt: now,
	}}, nil
}

// checkOpenFindings fires when the corpus-wide open finding count exceeds
// the threshold.
func (ae *alertEngine) checkOpenFindings(now time.Time, entries []models.ManifestEntry) []Alert {
	open := 0
	for _, e := range entries {
		open += e.LintErrors + e.LintWarnings
	}
	if open <= ae.thresholds.MaxOpenFindings {
		return nil
	}
	return []Alert{{
		ID:          "open-findings",
		Condition:   "too_many_findings",
		Severity:    SeverityLow,
		Message:     fmt.Sprintf("corpus has %d open lint finding(s), exceeding the maximum of %d", open, ae.thresholds.MaxOpenFindings),
		TriggeredAt: now,
	}}
}

// checkUnanswered fires when the corpus carries more unanswered questions
// than the threshold.
func (ae *alertEngine) checkUnanswered(now time.Time) ([]Alert, error) {
	if ae.stats == nil {
		return nil, nil
	}
	stats, err := ae.stats.BuildStats()
	if err != nil {
		return nil, err
	}
	if stats.Unanswered <= ae.thresholds.MaxUnanswered {
		return nil, nil
	}
	return []Alert{{
		ID:          "unanswered-questions",
		Condition:   "unanswered_questions",
		Severity:    SeverityLow,
		Message:     fmt.Sprintf("corpus has %d unanswered question(s), exceeding the maximum of %d", stats.Unanswered, ae.thresholds.MaxUnanswered),
		TriggeredAt: now,
	}}, nil
}
