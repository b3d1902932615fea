package core

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates
var templateFS embed.FS

// Template names resolvable by TemplateManager.
const (
	TemplateScenario  = "scenario.md"
	TemplateQA        = "qa.md"
	TemplateWorkspace = "devnotes.yaml"
)

// TemplateManager renders the embedded document and workspace templates.
type TemplateManager interface {
	// Render parses the named embedded template and executes it with data.
	Render(name string, data any) ([]byte, error)
	// Get returns the raw template text without rendering.
	Get(name string) (string, error)
}

type templateManager struct{}

// NewTemplateManager creates a TemplateManager over the embedded templates.
func NewTemplateManager() TemplateManager {
	return &templateManager{}
}

func (tm *templateManager) Get(name string) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("loading template %s: %w", name, err)
	}
	return string(raw), nil
}

func (tm *templateManager) Render(name string, data any) ([]byte, error) {
	raw, err := tm.Get(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
