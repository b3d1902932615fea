package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/opskit/devnotes/internal/core"
	"github.com/opskit/devnotes/pkg/models"
)

// ScannedDoc pairs per-document stats with the content checksum computed
// during a scan.
type ScannedDoc struct {
	Stats  models.DocStats
	SHA256 string
}

// Catalog scans the notes directory, classifies documents, and keeps the
// manifest in sync with what is on disk.
type Catalog interface {
	// Scan walks the notes directory, classifies every markdown file,
	// updates the manifest, and returns what it found in path order.
	Scan() ([]ScannedDoc, error)
	// BuildStats runs a scan and merges it with the manifest's lint
	// state into aggregate corpus statistics.
	BuildStats() (*models.CorpusStats, error)
}

type catalog struct {
	notesDir    string
	exclude     []string
	manifest    ManifestManager
	eventLogger core.EventLogger
}

// NewCatalog creates a Catalog over notesDir. manifest and eventLogger
// may be nil.
func NewCatalog(notesDir string, exclude []string, manifest ManifestManager, eventLogger core.EventLogger) Catalog {
	return &catalog{
		notesDir:    notesDir,
		exclude:     exclude,
		manifest:    manifest,
		eventLogger: eventLogger,
	}
}

func (c *catalog) Scan() ([]ScannedDoc, error) {
	paths, err := core.ListMarkdownFiles(c.notesDir, c.exclude)
	if err != nil {
		return nil, fmt.Errorf("scanning corpus: %w", err)
	}

	now := time.Now().UTC()
	docs := make([]ScannedDoc, 0, len(paths))
	entries := make([]models.ManifestEntry, 0, len(paths))
	for _, rel := range paths {
		full := filepath.Join(c.notesDir, rel)
		src, err := os.ReadFile(full)
		if err != nil {
			return nil, fmt.Errorf("scanning corpus: reading %s: %w", rel, err)
		}
		info, err := os.Stat(full)
		if err != nil {
			return nil, fmt.Errorf("scanning corpus: %w", err)
		}

		doc := classify(rel, src)
		doc.Stats.Size = info.Size()
		doc.Stats.ModTime = info.ModTime().UTC()
		sum := sha256.Sum256(src)
		doc.SHA256 = hex.EncodeToString(sum[:])
		docs = append(docs, doc)

		entries = append(entries, models.ManifestEntry{
			Path:      filepath.ToSlash(rel),
			Kind:      doc.Stats.Kind,
			Title:     doc.Stats.Title,
			SHA256:    doc.SHA256,
			SizeBytes: doc.Stats.Size,
			UpdatedAt: now,
		})
	}

	if c.manifest != nil {
		if err := c.manifest.Update(entries); err != nil {
			return nil, fmt.Errorf("scanning corpus: %w", err)
		}
		if err := c.manifest.Save(); err != nil {
			return nil, fmt.Errorf("scanning corpus: %w", err)
		}
	}

	if c.eventLogger != nil {
		_ = c.eventLogger.LogEvent("corpus.scanned", map[string]any{
			"root":      c.notesDir,
			"documents": len(docs),
		})
	}
	return docs, nil
}

func (c *catalog) BuildStats() (*models.CorpusStats, error) {
	docs, err := c.Scan()
	if err != nil {
		return nil, err
	}

	stats := &models.CorpusStats{
		Root:        c.notesDir,
		GeneratedAt: time.Now().UTC(),
	}
	for _, doc := range docs {
		ds := doc.Stats
		if c.manifest != nil {
			if entry, err := c.manifest.Get(ds.Path); err == nil {
				ds.LintErrors = entry.LintErrors
				ds.LintWarnings = entry.LintWarnings
			}
		}

		switch ds.Kind {
		case models.KindScenario:
			stats.Scenarios++
		case models.KindQA:
			stats.QADocs++
		default:
			stats.Freeform++
		}
		stats.Challenges += ds.Challenges
		stats.Options += ds.Options
		stats.SuccessIndicators += ds.SuccessIndicators
		stats.Topics += ds.Topics
		stats.Questions += ds.Questions
		stats.Answers += ds.Answers
		stats.Unanswered += ds.Unanswered
		stats.LintErrors += ds.LintErrors
		stats.LintWarnings += ds.LintWarnings
		stats.TotalBytes += ds.Size
		stats.Documents = append(stats.Documents, ds)
	}
	return stats, nil
}

// classify parses a document with the parser matching its detected kind
// and fills the per-kind counters.
func classify(rel string, src []byte) ScannedDoc {
	doc := ScannedDoc{Stats: models.DocStats{
		Path: filepath.ToSlash(rel),
		Kind: core.DetectKind(src),
	}}

	switch doc.Stats.Kind {
	case models.KindScenario:
		parsed := core.ParseScenario(rel, src)
		doc.Stats.Title = parsed.Title
		doc.Stats.Challenges = len(parsed.Challenges)
		for _, ch := range parsed.Challenges {
			doc.Stats.Options += len(ch.Options)
			doc.Stats.SuccessIndicators += len(ch.SuccessIndicators)
		}
	case models.KindQA:
		parsed := core.ParseQA(rel, src)
		doc.Stats.Title = parsed.Title
		doc.Stats.Topics = len(parsed.Topics)
		doc.Stats.Questions = parsed.Questions()
		doc.Stats.Unanswered = parsed.Unanswered()
		doc.Stats.Answers = doc.Stats.Questions - doc.Stats.Unanswered
	}
	return doc
}
