package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/opskit/devnotes/pkg/models"
)

// DocumentCreator writes skeleton documents into the notes directory.
type DocumentCreator interface {
	// Create writes a new document of the given kind and returns its path.
	// Creating a document whose slugified filename already exists is an
	// error; existing files are never overwritten.
	Create(kind models.DocKind, title string) (string, error)
}

type documentCreator struct {
	notesDir string
	tmpl     TemplateManager
}

// NewDocumentCreator creates a DocumentCreator writing into notesDir.
func NewDocumentCreator(notesDir string, tmpl TemplateManager) DocumentCreator {
	return &documentCreator{notesDir: notesDir, tmpl: tmpl}
}

func (dc *documentCreator) Create(kind models.DocKind, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("creating document: title must not be empty")
	}

	var tmplName string
	switch kind {
	case models.KindScenario:
		tmplName = TemplateScenario
	case models.KindQA:
		tmplName = TemplateQA
	default:
		return "", fmt.Errorf("creating document: unsupported kind %q", kind)
	}

	content, err := dc.tmpl.Render(tmplName, struct{ Title string }{Title: title})
	if err != nil {
		return "", fmt.Errorf("creating document: %w", err)
	}

	slug := Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("creating document: title %q yields an empty filename", title)
	}
	path := filepath.Join(dc.notesDir, slug+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("creating document: %s already exists", path)
	}

	if err := os.MkdirAll(dc.notesDir, 0o750); err != nil {
		return "", fmt.Errorf("creating document: %w", err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", fmt.Errorf("creating document: writing %s: %w", path, err)
	}
	return path, nil
}

// Slugify lowercases a title and replaces runs of non-alphanumeric runes
// with single hyphens, trimming hyphens from the ends.
func Slugify(title string) string {
	var sb strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			sb.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(sb.String(), "-")
}
