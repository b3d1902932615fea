package models

// NotifyConfig holds Slack notification settings from the global config.
type NotifyConfig struct {
	Enabled     bool   `yaml:"enabled" mapstructure:"enabled"`
	WebhookURL  string `yaml:"webhook_url" mapstructure:"webhook_url"`
	MinSeverity string `yaml:"min_severity" mapstructure:"min_severity"`
}

// AlertsConfig holds thresholds for the alert engine.
type AlertsConfig struct {
	StaleLintDays   int `yaml:"stale_lint_days" mapstructure:"stale_lint_days"`
	MaxFluffMatches int `yaml:"max_fluff_matches" mapstructure:"max_fluff_matches"`
	MaxOpenFindings int `yaml:"max_open_findings" mapstructure:"max_open_findings"`
	MaxUnanswered   int `yaml:"max_unanswered" mapstructure:"max_unanswered"`
}

// GlobalConfig holds workspace-wide settings read from .devnotes.yaml via Viper.
type GlobalConfig struct {
	NotesDir        string       `yaml:"notes_dir" mapstructure:"notes_dir"`
	Exclude         []string     `yaml:"exclude,omitempty" mapstructure:"exclude"`
	FluffPatterns   []string     `yaml:"fluff_patterns,omitempty" mapstructure:"fluff_patterns"`
	RenumberMode    RenumberMode `yaml:"renumber_mode" mapstructure:"renumber_mode"`
	FailOn          Severity     `yaml:"fail_on" mapstructure:"fail_on"`
	DisabledRules   []string     `yaml:"disabled_rules,omitempty" mapstructure:"disabled_rules"`
	WatchDebounceMS int          `yaml:"watch_debounce_ms" mapstructure:"watch_debounce_ms"`
	Notify          NotifyConfig `yaml:"notify" mapstructure:"notify"`
	Alerts          AlertsConfig `yaml:"alerts" mapstructure:"alerts"`
}
