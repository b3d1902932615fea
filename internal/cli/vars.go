package cli

import (
	"github.com/opskit/devnotes/internal/core"
	"github.com/opskit/devnotes/internal/integration"
	"github.com/opskit/devnotes/internal/observability"
	"github.com/opskit/devnotes/internal/storage"
	"github.com/opskit/devnotes/pkg/models"
)

// Service instances wired during app initialization in internal/app.go.
var (
	// BasePath is the workspace root (the directory holding .devnotes.yaml).
	BasePath string
	// NotesDir is the absolute path of the corpus directory.
	NotesDir string
	// Config is the loaded workspace configuration.
	Config *models.GlobalConfig

	Linter     core.Linter
	Cleaner    core.Cleaner
	Workspace  core.WorkspaceInitializer
	DocCreator core.DocumentCreator

	Catalog  storage.Catalog
	Manifest storage.ManifestManager

	Git integration.GitExecutor

	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
	AlertEngine observability.AlertEngine
	Notifier    observability.Notifier
)
