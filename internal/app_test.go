package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opskit/devnotes/internal/core"
)

func initWorkspace(t *testing.T) string {
	t.Helper()
	base := filepath.Join(t.TempDir(), "ws")
	wi := core.NewWorkspaceInitializer(core.NewTemplateManager(), nil)
	if _, err := wi.Init(core.InitConfig{BasePath: base}); err != nil {
		t.Fatalf("initializing workspace: %v", err)
	}
	return base
}

func TestNewApp_WiresServices(t *testing.T) {
	base := initWorkspace(t)

	app, err := NewApp(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = app.Close() }()

	if app.Config == nil || app.Linter == nil || app.Cleaner == nil ||
		app.Workspace == nil || app.DocCreator == nil || app.Catalog == nil ||
		app.Manifest == nil || app.Git == nil {
		t.Fatalf("core services missing: %+v", app)
	}
	if app.NotesDir != filepath.Join(base, "notes") {
		t.Fatalf("notes dir = %q", app.NotesDir)
	}

	// The state dir exists, so the event-driven services come up too.
	if app.EventLog == nil || app.AlertEngine == nil || app.MetricsCalc == nil {
		t.Fatalf("observability services missing")
	}
	// Notifications stay off until a webhook is configured.
	if app.Notifier != nil {
		t.Fatalf("unexpected notifier")
	}
}

func TestNewApp_ZeroAlertThreshold(t *testing.T) {
	base := initWorkspace(t)

	// An explicit zero means "alert on any unanswered question"; it must
	// not fall back to the default of 10.
	cfgPath := filepath.Join(base, core.ConfigFileName)
	if err := os.WriteFile(cfgPath, []byte("alerts:\n  max_unanswered: 0\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	doc := "# Open Questions\n\n1. Q: Is the failover runbook current?\n"
	if err := os.WriteFile(filepath.Join(base, "notes", "open.md"), []byte(doc), 0o600); err != nil {
		t.Fatalf("writing doc: %v", err)
	}

	app, err := NewApp(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = app.Close() }()

	alerts, err := app.AlertEngine.Evaluate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, a := range alerts {
		if a.Condition == "unanswered_questions" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unanswered_questions alert, got %+v", alerts)
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	base := t.TempDir()
	cfgPath := filepath.Join(base, core.ConfigFileName)
	if err := os.WriteFile(cfgPath, []byte("lint:\n  fail_on: critical\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := NewApp(base); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestResolveBasePath_EnvOverride(t *testing.T) {
	t.Setenv("DEVNOTES_HOME", "/srv/devnotes")
	if got := ResolveBasePath(); got != "/srv/devnotes" {
		t.Fatalf("base path = %q", got)
	}
}

func TestResolveBasePath_WalksUpToConfig(t *testing.T) {
	t.Setenv("DEVNOTES_HOME", "")
	base := initWorkspace(t)
	nested := filepath.Join(base, "notes")

	t.Chdir(nested)
	got := ResolveBasePath()

	// Compare resolved paths; the temp dir may sit behind a symlink.
	wantReal, err := filepath.EvalSymlinks(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotReal, err := filepath.EvalSymlinks(got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotReal != wantReal {
		t.Fatalf("base path = %q, want %q", gotReal, wantReal)
	}
}

func TestResolveBasePath_FallsBackToCwd(t *testing.T) {
	t.Setenv("DEVNOTES_HOME", "")
	dir := t.TempDir()

	t.Chdir(dir)
	got := ResolveBasePath()

	gotReal, err := filepath.EvalSymlinks(got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dirReal, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotReal != dirReal {
		t.Fatalf("base path = %q, want %q", gotReal, dirReal)
	}
}
