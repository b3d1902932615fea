package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event levels as written to the activity log.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Event is one entry in the workspace activity log: a lint run finishing,
// a document being cleaned or reordered, a corpus scan, alerts going out.
// Data carries the event-type specific counters (documents, errors,
// fluff_removed, ...).
type Event struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Type    string         `json:"type"`
	Message string         `json:"msg"`
	Data    map[string]any `json:"data,omitempty"`
}

// EventFilter narrows a Read to a time window, an event type, or a level.
// Zero fields match everything.
type EventFilter struct {
	Since *time.Time
	Until *time.Time
	Type  string
	Level string
}

func (f EventFilter) matches(e Event) bool {
	if f.Since != nil && e.Time.Before(*f.Since) {
		return false
	}
	if f.Until != nil && e.Time.After(*f.Until) {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Level != "" && e.Level != f.Level {
		return false
	}
	return true
}

// EventLog records corpus maintenance activity and plays it back for
// metrics and alerting.
type EventLog interface {
	Write(event Event) error
	Read(filter EventFilter) ([]Event, error)
	Close() error
}

// jsonlEventLog appends events to a JSONL file in the workspace state
// directory, one JSON object per line.
type jsonlEventLog struct {
	mu   sync.Mutex
	path string
	out  *os.File
}

// NewJSONLEventLog opens (or creates) the activity log at path.
func NewJSONLEventLog(path string) (EventLog, error) {
	out, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	return &jsonlEventLog{path: path, out: out}, nil
}

// Write appends the event. A zero timestamp is stamped with the current
// time, an empty level defaults to INFO, and an empty message falls back
// to the event type, so callers can fill in only Type and Data.
func (l *jsonlEventLog) Write(event Event) error {
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}
	if event.Level == "" {
		event.Level = LevelInfo
	}
	if event.Message == "" {
		event.Message = event.Type
	}

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.out.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("appending event: %w", err)
	}
	return nil
}

// Read replays the log from disk and returns the events matching filter
// in write order. Lines that do not decode are skipped: the log is
// append-only, and a torn write must not poison every later read. A
// missing log file reads as empty.
func (l *jsonlEventLog) Read(filter EventFilter) ([]Event, error) {
	in, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading event log: %w", err)
	}
	defer func() { _ = in.Close() }()

	var events []Event
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		var event Event
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			continue
		}
		if filter.matches(event) {
			events = append(events, event)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading event log: %w", err)
	}
	return events, nil
}

func (l *jsonlEventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.out.Close(); err != nil {
		return fmt.Errorf("closing event log: %w", err)
	}
	return nil
}
