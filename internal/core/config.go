// Package core contains the corpus-processing logic for DevNotes:
// document parsing and rendering, fluff scrubbing, renumbering, the lint
// engine, the clean pipeline, configuration, and workspace scaffolding.
package core

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/opskit/devnotes/pkg/models"
	"github.com/spf13/viper"
)

// ConfigFileName is the workspace configuration file read by Viper.
const ConfigFileName = ".devnotes.yaml"

// ConfigurationManager loads and validates the workspace configuration.
type ConfigurationManager interface {
	LoadConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading the YAML configuration file.
type viperConfigManager struct {
	// basePath is the workspace root where .devnotes.yaml resides.
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// configuration relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultConfig returns a GlobalConfig populated with sensible defaults.
func DefaultConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		NotesDir:        "notes",
		RenumberMode:    models.RenumberTopic,
		FailOn:          models.SeverityError,
		WatchDebounceMS: 500,
		Notify: models.NotifyConfig{
			MinSeverity: "low",
		},
		Alerts: models.AlertsConfig{
			StaleLintDays:   7,
			MaxFluffMatches: 0,
			MaxOpenFindings: 25,
			MaxUnanswered:   10,
		},
	}
}

// LoadConfig reads .devnotes.yaml from the base path using Viper. If the
// file does not exist, defaults are returned.
func (cm *viperConfigManager) LoadConfig() (*models.GlobalConfig, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName(".devnotes")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("notes_dir", cfg.NotesDir)
	v.SetDefault("clean.renumber", string(cfg.RenumberMode))
	v.SetDefault("lint.fail_on", string(cfg.FailOn))
	v.SetDefault("watch.debounce_ms", cfg.WatchDebounceMS)
	v.SetDefault("notify.enabled", cfg.Notify.Enabled)
	v.SetDefault("notify.webhook_url", cfg.Notify.WebhookURL)
	v.SetDefault("notify.min_severity", cfg.Notify.MinSeverity)
	v.SetDefault("alerts.stale_lint_days", cfg.Alerts.StaleLintDays)
	v.SetDefault("alerts.max_fluff_matches", cfg.Alerts.MaxFluffMatches)
	v.SetDefault("alerts.max_open_findings", cfg.Alerts.MaxOpenFindings)
	v.SetDefault("alerts.max_unanswered", cfg.Alerts.MaxUnanswered)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
	}

	// Map nested YAML keys to flat GlobalConfig fields.
	cfg.NotesDir = v.GetString("notes_dir")
	cfg.Exclude = v.GetStringSlice("exclude")
	cfg.FluffPatterns = v.GetStringSlice("scrub.extra_patterns")
	cfg.RenumberMode = models.RenumberMode(v.GetString("clean.renumber"))
	cfg.FailOn = models.Severity(v.GetString("lint.fail_on"))
	cfg.DisabledRules = v.GetStringSlice("lint.disabled_rules")
	cfg.WatchDebounceMS = v.GetInt("watch.debounce_ms")
	cfg.Notify.Enabled = v.GetBool("notify.enabled")
	cfg.Notify.WebhookURL = v.GetString("notify.webhook_url")
	cfg.Notify.MinSeverity = v.GetString("notify.min_severity")
	cfg.Alerts.StaleLintDays = v.GetInt("alerts.stale_lint_days")
	cfg.Alerts.MaxFluffMatches = v.GetInt("alerts.max_fluff_matches")
	cfg.Alerts.MaxOpenFindings = v.GetInt("alerts.max_open_findings")
	cfg.Alerts.MaxUnanswered = v.GetInt("alerts.max_unanswered")

	return cfg, nil
}

// validRenumberModes is the set of allowed RenumberMode values.
var validRenumberModes = map[models.RenumberMode]bool{
	models.RenumberTopic:  true,
	models.RenumberGlobal: true,
	models.RenumberKeep:   true,
}

// validFailOnLevels is the set of allowed lint.fail_on values.
var validFailOnLevels = map[models.Severity]bool{
	models.SeverityError:   true,
	models.SeverityWarning: true,
	models.SeverityInfo:    true,
}

// validMinSeverities is the set of allowed notify.min_severity values.
var validMinSeverities = map[string]bool{
	"low":    true,
	"medium": true,
	"high":   true,
}

// ValidateConfig checks the configuration for invalid values and returns
// a clear error message identifying every problem found.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if strings.TrimSpace(cfg.NotesDir) == "" {
		errs = append(errs, "notes_dir must not be empty")
	}

	if !validRenumberModes[cfg.RenumberMode] {
		errs = append(errs, fmt.Sprintf(
			"clean.renumber %q is invalid, must be one of: topic, global, keep",
			cfg.RenumberMode,
		))
	}

	if !validFailOnLevels[cfg.FailOn] {
		errs = append(errs, fmt.Sprintf(
			"lint.fail_on %q is invalid, must be one of: error, warning, info",
			cfg.FailOn,
		))
	}

	if cfg.Notify.MinSeverity != "" && !validMinSeverities[cfg.Notify.MinSeverity] {
		errs = append(errs, fmt.Sprintf(
			"notify.min_severity %q is invalid, must be one of: low, medium, high",
			cfg.Notify.MinSeverity,
		))
	}

	if cfg.Notify.Enabled && cfg.Notify.WebhookURL == "" {
		errs = append(errs, "notify.enabled requires notify.webhook_url")
	}

	if cfg.WatchDebounceMS < 0 {
		errs = append(errs, fmt.Sprintf(
			"watch.debounce_ms must be non-negative, got %d", cfg.WatchDebounceMS,
		))
	}

	for _, pattern := range cfg.Exclude {
		if _, err := filepath.Match(pattern, "sample.md"); err != nil {
			errs = append(errs, fmt.Sprintf("exclude pattern %q is invalid", pattern))
		}
	}

	for _, pattern := range cfg.FluffPatterns {
		if _, err := regexp.Compile(`(?is)` + pattern); err != nil {
			errs = append(errs, fmt.Sprintf("scrub.extra_patterns %q does not compile: %v", pattern, err))
		}
	}

	if cfg.Alerts.StaleLintDays < 0 || cfg.Alerts.MaxFluffMatches < 0 ||
		cfg.Alerts.MaxOpenFindings < 0 || cfg.Alerts.MaxUnanswered < 0 {
		errs = append(errs, "alert thresholds must be non-negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
