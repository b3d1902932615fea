package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opskit/devnotes/pkg/models"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())

	cfg, err := cm.LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NotesDir != "notes" {
		t.Fatalf("notes_dir = %q", cfg.NotesDir)
	}
	if cfg.RenumberMode != models.RenumberTopic {
		t.Fatalf("renumber mode = %q", cfg.RenumberMode)
	}
	if cfg.FailOn != models.SeverityError {
		t.Fatalf("fail_on = %q", cfg.FailOn)
	}
	if cfg.WatchDebounceMS != 500 {
		t.Fatalf("debounce = %d", cfg.WatchDebounceMS)
	}
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	content := `notes_dir: corpus
exclude:
  - "drafts/*"
scrub:
  extra_patterns:
    - 'As an AI[^.]*\.'
clean:
  renumber: global
lint:
  fail_on: warning
  disabled_rules:
    - qa.non-sequential
watch:
  debounce_ms: 250
notify:
  enabled: true
  webhook_url: https://hooks.example.com/T/B/x
alerts:
  stale_lint_days: 14
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := NewConfigurationManager(dir).LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NotesDir != "corpus" {
		t.Fatalf("notes_dir = %q", cfg.NotesDir)
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != "drafts/*" {
		t.Fatalf("exclude = %v", cfg.Exclude)
	}
	if len(cfg.FluffPatterns) != 1 {
		t.Fatalf("fluff patterns = %v", cfg.FluffPatterns)
	}
	if cfg.RenumberMode != models.RenumberGlobal {
		t.Fatalf("renumber = %q", cfg.RenumberMode)
	}
	if cfg.FailOn != models.SeverityWarning {
		t.Fatalf("fail_on = %q", cfg.FailOn)
	}
	if len(cfg.DisabledRules) != 1 || cfg.DisabledRules[0] != "qa.non-sequential" {
		t.Fatalf("disabled rules = %v", cfg.DisabledRules)
	}
	if cfg.WatchDebounceMS != 250 {
		t.Fatalf("debounce = %d", cfg.WatchDebounceMS)
	}
	if !cfg.Notify.Enabled || cfg.Notify.WebhookURL == "" {
		t.Fatalf("notify = %+v", cfg.Notify)
	}
	if cfg.Alerts.StaleLintDays != 14 {
		t.Fatalf("stale_lint_days = %d", cfg.Alerts.StaleLintDays)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Alerts.MaxOpenFindings != 25 {
		t.Fatalf("max_open_findings = %d", cfg.Alerts.MaxOpenFindings)
	}
}

func TestValidateConfig(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())

	tests := []struct {
		name    string
		mutate  func(*models.GlobalConfig)
		wantErr bool
	}{
		{"defaults are valid", func(cfg *models.GlobalConfig) {}, false},
		{"empty notes dir", func(cfg *models.GlobalConfig) { cfg.NotesDir = " " }, true},
		{"bad renumber mode", func(cfg *models.GlobalConfig) { cfg.RenumberMode = "alphabetical" }, true},
		{"bad fail-on", func(cfg *models.GlobalConfig) { cfg.FailOn = "fatal" }, true},
		{"bad min severity", func(cfg *models.GlobalConfig) { cfg.Notify.MinSeverity = "urgent" }, true},
		{"notify enabled without webhook", func(cfg *models.GlobalConfig) { cfg.Notify.Enabled = true }, true},
		{"negative debounce", func(cfg *models.GlobalConfig) { cfg.WatchDebounceMS = -1 }, true},
		{"bad exclude glob", func(cfg *models.GlobalConfig) { cfg.Exclude = []string{"[unclosed"} }, true},
		{"bad fluff pattern", func(cfg *models.GlobalConfig) { cfg.FluffPatterns = []string{"("} }, true},
		{"negative threshold", func(cfg *models.GlobalConfig) { cfg.Alerts.MaxUnanswered = -2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cm.ValidateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateConfig error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())
	if err := cm.ValidateConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
