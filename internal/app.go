// Package internal provides the App struct that wires all components of
// the DevNotes toolchain together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/opskit/devnotes/internal/cli"
	"github.com/opskit/devnotes/internal/core"
	"github.com/opskit/devnotes/internal/integration"
	"github.com/opskit/devnotes/internal/observability"
	"github.com/opskit/devnotes/internal/storage"
	"github.com/opskit/devnotes/pkg/models"
)

// App holds all service dependencies for the DevNotes toolchain.
type App struct {
	BasePath string
	NotesDir string
	Config   *models.GlobalConfig

	// Configuration
	ConfigMgr core.ConfigurationManager

	// Core services
	TmplMgr    core.TemplateManager
	Scrubber   *core.Scrubber
	Linter     core.Linter
	Cleaner    core.Cleaner
	Workspace  core.WorkspaceInitializer
	DocCreator core.DocumentCreator

	// Storage layer
	Manifest storage.ManifestManager
	Catalog  storage.Catalog

	// Integration services
	Git integration.GitExecutor

	// Observability
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
}

// NewApp creates and wires all components of the DevNotes toolchain.
// basePath is the workspace root, typically the directory containing
// .devnotes.yaml.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	app.NotesDir = cfg.NotesDir
	if !filepath.IsAbs(app.NotesDir) {
		app.NotesDir = filepath.Join(basePath, cfg.NotesDir)
	}

	// --- Observability ---
	// The event log lives in the workspace state directory. Logging is
	// best-effort: a workspace without a state dir runs with it disabled.
	stateDir := filepath.Join(basePath, core.StateDirName)
	if err := os.MkdirAll(stateDir, 0o750); err == nil {
		eventLogPath := filepath.Join(stateDir, "events.jsonl")
		if log, err := observability.NewJSONLEventLog(eventLogPath); err == nil {
			app.EventLog = log
		}
	}
	var evtAdapter core.EventLogger
	if app.EventLog != nil {
		evtAdapter = &eventLogAdapter{log: app.EventLog}
	}

	// --- Storage layer ---
	app.Manifest = storage.NewManifestManager(basePath)
	if err := app.Manifest.Load(); err != nil {
		return nil, err
	}
	app.Catalog = storage.NewCatalog(app.NotesDir, cfg.Exclude, app.Manifest, evtAdapter)

	// --- Core services ---
	app.TmplMgr = core.NewTemplateManager()
	app.Scrubber, err = core.NewScrubber(cfg.FluffPatterns)
	if err != nil {
		return nil, err
	}

	recorder := &manifestRecorderAdapter{manifest: app.Manifest}
	app.Linter = core.NewLinter(core.LintConfig{
		NotesDir:      app.NotesDir,
		DisabledRules: cfg.DisabledRules,
		Exclude:       cfg.Exclude,
	}, app.Scrubber, recorder, evtAdapter)

	app.Cleaner = core.NewCleaner(app.Scrubber, cfg.RenumberMode, evtAdapter)
	app.Workspace = core.NewWorkspaceInitializer(app.TmplMgr, evtAdapter)
	app.DocCreator = core.NewDocumentCreator(app.NotesDir, app.TmplMgr)

	// --- Integration services ---
	app.Git = integration.NewGitExecutor()

	// --- Alerting ---
	if app.EventLog != nil {
		// Missing alert keys already got defaults at config load, so an
		// explicit zero threshold is honored here.
		app.AlertEngine = observability.NewAlertEngine(app.EventLog, app.Manifest, app.Catalog, observability.AlertThresholds{
			StaleLintDays:   cfg.Alerts.StaleLintDays,
			MaxFluffMatches: cfg.Alerts.MaxFluffMatches,
			MaxOpenFindings: cfg.Alerts.MaxOpenFindings,
			MaxUnanswered:   cfg.Alerts.MaxUnanswered,
		})
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}
	if cfg.Notify.Enabled && cfg.Notify.WebhookURL != "" {
		app.Notifier = observability.NewSlackNotifier(cfg.Notify.WebhookURL)
	}

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.NotesDir = app.NotesDir
	cli.Config = cfg
	cli.Linter = app.Linter
	cli.Cleaner = app.Cleaner
	cli.Workspace = app.Workspace
	cli.DocCreator = app.DocCreator
	cli.Catalog = app.Catalog
	cli.Manifest = app.Manifest
	cli.Git = app.Git
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc
	cli.AlertEngine = app.AlertEngine
	cli.Notifier = app.Notifier

	return app, nil
}

// Close releases resources held by the App, such as the event log file
// handle. Safe to call on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the workspace root. It checks the
// DEVNOTES_HOME env var, then walks up from the current directory looking
// for .devnotes.yaml, and finally falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("DEVNOTES_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for cur := dir; ; {
		if _, err := os.Stat(filepath.Join(cur, core.ConfigFileName)); err == nil {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return dir
}

// --- Adapters ---

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	// The log stamps time, level, and message.
	return a.log.Write(observability.Event{Type: eventType, Data: data})
}

// manifestRecorderAdapter adapts storage.ManifestManager to
// core.LintRecorder, persisting after every recorded outcome so lint
// state survives the process.
type manifestRecorderAdapter struct {
	manifest storage.ManifestManager
}

func (a *manifestRecorderAdapter) RecordLint(runID string, at time.Time, relPath string, kind models.DocKind, errors, warnings int) error {
	if err := a.manifest.RecordLint(runID, at, relPath, kind, errors, warnings); err != nil {
		return err
	}
	if err := a.manifest.Save(); err != nil {
		return fmt.Errorf("persisting lint outcome: %w", err)
	}
	return nil
}
