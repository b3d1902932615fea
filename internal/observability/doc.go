// Package observability provides event logging, metrics calculation, and
// alerting for the DevNotes toolchain. It uses structured JSON Lines
// (JSONL) for event persistence and derives metrics on-demand from the
// event log; alert conditions are evaluated against the manifest and the
// corpus statistics.
package observability
