package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/opskit/devnotes/pkg/models"
	"gopkg.in/yaml.v3"
)

// manifestFile is the top-level structure of .devnotes/manifest.yaml.
type manifestFile struct {
	Version   string                          `yaml:"version"`
	Documents map[string]models.ManifestEntry `yaml:"documents"`
}

// ManifestManager is the registry of tracked corpus documents, keyed by
// path relative to the notes directory.
type ManifestManager interface {
	// Update inserts or replaces entries by path, preserving lint state
	// for entries whose checksum has not changed. An entry recorded by a
	// lint run before the first scan has no checksum yet; its state is
	// kept too.
	Update(entries []models.ManifestEntry) error
	Get(path string) (*models.ManifestEntry, error)
	// All returns every entry sorted by path.
	All() ([]models.ManifestEntry, error)
	Filter(filter models.ManifestFilter) ([]models.ManifestEntry, error)
	// RecordLint stores the outcome of a lint run against one document.
	RecordLint(runID string, at time.Time, relPath string, kind models.DocKind, errors, warnings int) error
	Load() error
	Save() error
}

type fileManifestManager struct {
	basePath string
	data     manifestFile
}

// NewManifestManager creates a ManifestManager backed by manifest.yaml in
// the workspace state directory under basePath.
func NewManifestManager(basePath string) ManifestManager {
	return &fileManifestManager{
		basePath: basePath,
		data: manifestFile{
			Version:   "1.0",
			Documents: make(map[string]models.ManifestEntry),
		},
	}
}

func (m *fileManifestManager) stateDir() string {
	return filepath.Join(m.basePath, ".devnotes")
}

func (m *fileManifestManager) filePath() string {
	return filepath.Join(m.stateDir(), "manifest.yaml")
}

func (m *fileManifestManager) Update(entries []models.ManifestEntry) error {
	for _, e := range entries {
		if e.Path == "" {
			return fmt.Errorf("updating manifest: entry path must not be empty")
		}
		if prev, ok := m.data.Documents[e.Path]; ok && (prev.SHA256 == "" || prev.SHA256 == e.SHA256) {
			e.LastLintAt = prev.LastLintAt
			e.LastLintRun = prev.LastLintRun
			e.LintErrors = prev.LintErrors
			e.LintWarnings = prev.LintWarnings
		}
		m.data.Documents[e.Path] = e
	}
	return nil
}

func (m *fileManifestManager) Get(path string) (*models.ManifestEntry, error) {
	entry, ok := m.data.Documents[filepath.ToSlash(path)]
	if !ok {
		return nil, fmt.Errorf("document %s not in manifest", path)
	}
	return &entry, nil
}

func (m *fileManifestManager) All() ([]models.ManifestEntry, error) {
	entries := make([]models.ManifestEntry, 0, len(m.data.Documents))
	for _, e := range m.data.Documents {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

func (m *fileManifestManager) Filter(filter models.ManifestFilter) ([]models.ManifestEntry, error) {
	all, err := m.All()
	if err != nil {
		return nil, err
	}
	var result []models.ManifestEntry
	for _, e := range all {
		if filter.Matches(e) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *fileManifestManager) RecordLint(runID string, at time.Time, relPath string, kind models.DocKind, errors, warnings int) error {
	key := filepath.ToSlash(relPath)
	entry, ok := m.data.Documents[key]
	if !ok {
		entry = models.ManifestEntry{Path: key, Kind: kind, UpdatedAt: at}
	}
	entry.Kind = kind
	entry.LastLintAt = at
	entry.LastLintRun = runID
	entry.LintErrors = errors
	entry.LintWarnings = warnings
	m.data.Documents[key] = entry
	return nil
}

func (m *fileManifestManager) Load() error {
	data, err := os.ReadFile(m.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			m.data = manifestFile{
				Version:   "1.0",
				Documents: make(map[string]models.ManifestEntry),
			}
			return nil
		}
		return fmt.Errorf("loading manifest: %w", err)
	}

	var mf manifestFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return fmt.Errorf("loading manifest: parsing YAML: %w", err)
	}
	if mf.Documents == nil {
		mf.Documents = make(map[string]models.ManifestEntry)
	}
	m.data = mf
	return nil
}

func (m *fileManifestManager) Save() error {
	if err := os.MkdirAll(m.stateDir(), 0o750); err != nil {
		return fmt.Errorf("saving manifest: creating directory: %w", err)
	}

	unlock, err := lockFile(m.filePath() + ".lock")
	if err != nil {
		return fmt.Errorf("saving manifest: %w", err)
	}
	defer func() { _ = unlock() }()

	data, err := yaml.Marshal(&m.data)
	if err != nil {
		return fmt.Errorf("saving manifest: marshaling YAML: %w", err)
	}
	if err := os.WriteFile(m.filePath(), data, 0o600); err != nil {
		return fmt.Errorf("saving manifest: writing file: %w", err)
	}
	return nil
}
