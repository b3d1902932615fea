package core

import (
	"fmt"
	"os"
	"path/filepath"
)

// StateDirName is the workspace state directory holding the manifest and
// the event log.
const StateDirName = ".devnotes"

// InitConfig holds the parameters for initializing a workspace.
type InitConfig struct {
	BasePath string
	NotesDir string
}

// InitResult holds a summary of what was created vs. skipped.
type InitResult struct {
	Created []string
	Skipped []string
}

// WorkspaceInitializer scaffolds a DevNotes workspace: the configuration
// file, the notes directory, and the state directory.
type WorkspaceInitializer interface {
	Init(config InitConfig) (*InitResult, error)
}

type workspaceInitializer struct {
	tmpl        TemplateManager
	eventLogger EventLogger
}

// NewWorkspaceInitializer creates a WorkspaceInitializer. eventLogger may
// be nil.
func NewWorkspaceInitializer(tmpl TemplateManager, eventLogger EventLogger) WorkspaceInitializer {
	return &workspaceInitializer{tmpl: tmpl, eventLogger: eventLogger}
}

// Init creates the workspace structure. It is safe to run on existing
// workspaces: files and directories that already exist are skipped and
// never overwritten.
func (wi *workspaceInitializer) Init(config InitConfig) (*InitResult, error) {
	result := &InitResult{}

	if config.NotesDir == "" {
		config.NotesDir = "notes"
	}

	dirs := []string{
		config.BasePath,
		filepath.Join(config.BasePath, config.NotesDir),
		filepath.Join(config.BasePath, StateDirName),
	}
	for _, dir := range dirs {
		created, err := ensureDir(dir)
		if err != nil {
			return nil, fmt.Errorf("initializing workspace: creating directory %s: %w", dir, err)
		}
		if created {
			result.Created = append(result.Created, dir)
		} else {
			result.Skipped = append(result.Skipped, dir)
		}
	}

	configPath := filepath.Join(config.BasePath, ConfigFileName)
	if err := wi.writeFileIfNotExists(configPath, func() ([]byte, error) {
		return wi.tmpl.Render(TemplateWorkspace, struct{ NotesDir string }{NotesDir: config.NotesDir})
	}, result); err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(config.BasePath, StateDirName, "manifest.yaml")
	if err := wi.writeFileIfNotExists(manifestPath, func() ([]byte, error) {
		return []byte("version: \"1.0\"\ndocuments: {}\n"), nil
	}, result); err != nil {
		return nil, err
	}

	if wi.eventLogger != nil {
		_ = wi.eventLogger.LogEvent("workspace.initialized", map[string]any{
			"base_path": config.BasePath,
			"notes_dir": config.NotesDir,
			"created":   len(result.Created),
			"skipped":   len(result.Skipped),
		})
	}
	return result, nil
}

// ensureDir creates a directory if it does not exist. Returns true if created.
func ensureDir(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(path, 0o750); err != nil {
		return false, err
	}
	return true, nil
}

// writeFileIfNotExists writes content from contentFn if the file does not
// exist, recording created/skipped in the result.
func (wi *workspaceInitializer) writeFileIfNotExists(path string, contentFn func() ([]byte, error), result *InitResult) error {
	if _, err := os.Stat(path); err == nil {
		result.Skipped = append(result.Skipped, path)
		return nil
	}
	content, err := contentFn()
	if err != nil {
		return fmt.Errorf("initializing workspace: generating content for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("initializing workspace: writing %s: %w", path, err)
	}
	result.Created = append(result.Created, path)
	return nil
}
