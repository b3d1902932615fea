// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the DevNotes toolchain as MCP tools for AI coding assistants.
package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/opskit/devnotes/internal/core"
	"github.com/opskit/devnotes/internal/observability"
	"github.com/opskit/devnotes/internal/storage"
)

// Server wraps the toolchain services and exposes them as MCP tools.
type Server struct {
	server      *gomcp.Server
	notesDir    string
	linter      core.Linter
	cleaner     core.Cleaner
	catalog     storage.Catalog
	alertEngine observability.AlertEngine
}

// NewServer creates a new MCP server with the given service dependencies.
// Relative document paths in tool calls resolve against notesDir, never
// against the server's working directory. catalog and alertEngine may be
// nil if the workspace has no state dir.
func NewServer(notesDir string, linter core.Linter, cleaner core.Cleaner, catalog storage.Catalog, alertEngine observability.AlertEngine, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		notesDir:    notesDir,
		linter:      linter,
		cleaner:     cleaner,
		catalog:     catalog,
		alertEngine: alertEngine,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "dvn", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type lintCorpusInput struct {
	Path string `json:"path,omitempty" jsonschema:"lint only this document (relative to the notes directory). Omit to lint the whole corpus."`
}

type findingOutput struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
}

type lintCorpusOutput struct {
	RunID     string          `json:"run_id"`
	Documents int             `json:"documents"`
	Errors    int             `json:"errors"`
	Warnings  int             `json:"warnings"`
	Findings  []findingOutput `json:"findings"`
}

type cleanDocumentInput struct {
	Path   string `json:"path" jsonschema:"required,the Q&A document to clean (relative to the notes directory)"`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"compute the report without writing anything"`
}

type cleanDocumentOutput struct {
	Path         string `json:"path"`
	OutputPath   string `json:"output_path,omitempty"`
	Topics       int    `json:"topics"`
	Questions    int    `json:"questions"`
	Answers      int    `json:"answers"`
	Unanswered   int    `json:"unanswered"`
	FluffRemoved int    `json:"fluff_removed"`
	Renumbered   int    `json:"renumbered"`
	Changed      bool   `json:"changed"`
}

type corpusStatsInput struct{}

type corpusStatsOutput struct {
	Scenarios         int   `json:"scenarios"`
	QADocs            int   `json:"qa_docs"`
	Freeform          int   `json:"freeform"`
	Challenges        int   `json:"challenges"`
	Options           int   `json:"options"`
	SuccessIndicators int   `json:"success_indicators"`
	Topics            int   `json:"topics"`
	Questions         int   `json:"questions"`
	Answers           int   `json:"answers"`
	Unanswered        int   `json:"unanswered"`
	LintErrors        int   `json:"lint_errors"`
	LintWarnings      int   `json:"lint_warnings"`
	TotalBytes        int64 `json:"total_bytes"`
}

type getAlertsInput struct{}

type alertOutput struct {
	ID          string `json:"id"`
	Condition   string `json:"condition"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	TriggeredAt string `json:"triggered_at"`
}

type getAlertsOutput struct {
	Alerts []alertOutput `json:"alerts"`
	Count  int           `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "lint_corpus",
		Description: "Lint the notes corpus (or a single document) against the documentation-quality rules. Returns findings with rule IDs, severities, and line numbers.",
	}, s.handleLintCorpus)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "clean_document",
		Description: "Run the clean pipeline on a Q&A document: scrub chat-export fluff, renumber questions, render canonical form. Returns the clean report.",
	}, s.handleCleanDocument)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "corpus_stats",
		Description: "Scan the corpus and return aggregate statistics: document counts by kind, challenges, options, questions, answers, and open lint findings.",
	}, s.handleCorpusStats)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_alerts",
		Description: "Evaluate and return active corpus health alerts (lint errors, stale lints, fluff residue, open findings, unanswered questions).",
	}, s.handleGetAlerts)
}

// --- Tool handlers ---

func (s *Server) handleLintCorpus(_ context.Context, _ *gomcp.CallToolRequest, input lintCorpusInput) (*gomcp.CallToolResult, lintCorpusOutput, error) {
	if s.linter == nil {
		return errorResult("linter not initialized"), lintCorpusOutput{}, nil
	}

	opts := core.LintOptions{}
	if input.Path != "" {
		opts.Paths = []string{input.Path}
	}
	report, err := s.linter.Run(opts)
	if err != nil {
		return errorResult(fmt.Sprintf("linting corpus: %s", err)), lintCorpusOutput{}, nil
	}

	out := lintCorpusOutput{
		RunID:     report.RunID,
		Documents: report.Documents,
		Errors:    report.Errors,
		Warnings:  report.Warnings,
		Findings:  make([]findingOutput, len(report.Findings)),
	}
	for i, f := range report.Findings {
		out.Findings[i] = findingOutput{
			Rule:     f.Rule,
			Severity: string(f.Severity),
			Path:     f.Path,
			Line:     f.Line,
			Message:  f.Message,
		}
	}
	return nil, out, nil
}

func (s *Server) handleCleanDocument(_ context.Context, _ *gomcp.CallToolRequest, input cleanDocumentInput) (*gomcp.CallToolResult, cleanDocumentOutput, error) {
	if s.cleaner == nil {
		return errorResult("cleaner not initialized"), cleanDocumentOutput{}, nil
	}
	if input.Path == "" {
		return errorResult("path is required"), cleanDocumentOutput{}, nil
	}

	// Resolve against the notes dir like lint_corpus does, not the cwd.
	path := input.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.notesDir, filepath.FromSlash(path))
	}

	report, err := s.cleaner.CleanFile(path, core.CleanOptions{DryRun: input.DryRun})
	if err != nil {
		return errorResult(fmt.Sprintf("cleaning %s: %s", input.Path, err)), cleanDocumentOutput{}, nil
	}

	out := cleanDocumentOutput{
		Path:         report.Path,
		OutputPath:   report.OutputPath,
		Topics:       report.Topics,
		Questions:    report.Questions,
		Answers:      report.Answers,
		Unanswered:   report.Unanswered,
		FluffRemoved: report.FluffRemoved,
		Renumbered:   report.Renumbered,
		Changed:      report.Changed,
	}
	return nil, out, nil
}

func (s *Server) handleCorpusStats(_ context.Context, _ *gomcp.CallToolRequest, _ corpusStatsInput) (*gomcp.CallToolResult, corpusStatsOutput, error) {
	if s.catalog == nil {
		return errorResult("catalog not initialized"), corpusStatsOutput{}, nil
	}

	stats, err := s.catalog.BuildStats()
	if err != nil {
		return errorResult(fmt.Sprintf("building corpus stats: %s", err)), corpusStatsOutput{}, nil
	}

	out := corpusStatsOutput{
		Scenarios:         stats.Scenarios,
		QADocs:            stats.QADocs,
		Freeform:          stats.Freeform,
		Challenges:        stats.Challenges,
		Options:           stats.Options,
		SuccessIndicators: stats.SuccessIndicators,
		Topics:            stats.Topics,
		Questions:         stats.Questions,
		Answers:           stats.Answers,
		Unanswered:        stats.Unanswered,
		LintErrors:        stats.LintErrors,
		LintWarnings:      stats.LintWarnings,
		TotalBytes:        stats.TotalBytes,
	}
	return nil, out, nil
}

func (s *Server) handleGetAlerts(_ context.Context, _ *gomcp.CallToolRequest, _ getAlertsInput) (*gomcp.CallToolResult, getAlertsOutput, error) {
	if s.alertEngine == nil {
		return errorResult("alert engine not available (no workspace state)"), getAlertsOutput{}, nil
	}

	alerts, err := s.alertEngine.Evaluate()
	if err != nil {
		return errorResult(fmt.Sprintf("evaluating alerts: %s", err)), getAlertsOutput{}, nil
	}

	out := getAlertsOutput{
		Alerts: make([]alertOutput, len(alerts)),
		Count:  len(alerts),
	}
	for i, a := range alerts {
		out.Alerts[i] = alertOutput{
			ID:          a.ID,
			Condition:   a.Condition,
			Severity:    string(a.Severity),
			Message:     a.Message,
			TriggeredAt: a.TriggeredAt.Format(time.RFC3339),
		}
	}
	return nil, out, nil
}

// --- Helpers ---

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
