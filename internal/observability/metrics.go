package observability

import (
	"fmt"
	"time"
)

// Metrics holds calculated metrics derived from the event log.
type Metrics struct {
	LintRuns            int        `json:"lint_runs"`
	DocsLinted          int        `json:"docs_linted"`
	ErrorsFound         int        `json:"errors_found"`
	WarningsFound       int        `json:"warnings_found"`
	DocsCleaned         int        `json:"docs_cleaned"`
	FluffRemoved        int        `json:"fluff_removed"`
	QuestionsRenumbered int        `json:"questions_renumbered"`
	DocsReordered       int        `json:"docs_reordered"`
	ScanCount           int        `json:"scan_count"`
	EventCount          int        `json:"event_count"`
	OldestEvent         *time.Time `json:"oldest_event,omitempty"`
	NewestEvent         *time.Time `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{}
	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case "lint.completed":
			m.LintRuns++
			m.DocsLinted += dataInt(event.Data, "documents")
			m.ErrorsFound += dataInt(event.Data, "errors")
			m.WarningsFound += dataInt(event.Data, "warnings")
		case "document.cleaned":
			m.DocsCleaned++
			m.FluffRemoved += dataInt(event.Data, "fluff_removed")
			m.QuestionsRenumbered += dataInt(event.Data, "renumbered")
		case "document.reordered":
			m.DocsReordered++
		case "corpus.scanned":
			m.ScanCount++
		}
	}

	return m, nil
}

// dataInt reads a numeric field from event data. JSONL round-trips
// numbers as float64; freshly written events may still carry Go ints.
func dataInt(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}
