package core

import (
	"strings"
	"testing"
)

func TestTemplateManager_RenderScenario(t *testing.T) {
	tm := NewTemplateManager()

	out, err := tm.Render(TemplateScenario, struct{ Title string }{Title: "Kafka Rebalance Storm"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(out)
	if !strings.HasPrefix(text, "# Kafka Rebalance Storm\n") {
		t.Fatalf("title not rendered:\n%s", text)
	}
	if !strings.Contains(text, "**Option A:") || !strings.Contains(text, "**Success Indicators:**") {
		t.Fatalf("scenario skeleton incomplete:\n%s", text)
	}
	if DetectKind(out) != "scenario" {
		t.Fatalf("rendered scenario template should classify as scenario")
	}
}

func TestTemplateManager_RenderQA(t *testing.T) {
	tm := NewTemplateManager()

	out, err := tm.Render(TemplateQA, struct{ Title string }{Title: "Terraform Q&A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := ParseQA("t.md", out)
	if doc.Title != "Terraform Q&A" {
		t.Fatalf("title = %q", doc.Title)
	}
	if doc.Questions() != 1 || doc.Unanswered() != 0 {
		t.Fatalf("skeleton should hold one answered pair: %+v", doc)
	}
}

func TestTemplateManager_RenderWorkspaceConfig(t *testing.T) {
	tm := NewTemplateManager()

	out, err := tm.Render(TemplateWorkspace, struct{ NotesDir string }{NotesDir: "corpus"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "notes_dir: corpus") {
		t.Fatalf("notes_dir not rendered:\n%s", out)
	}
}

func TestTemplateManager_UnknownName(t *testing.T) {
	tm := NewTemplateManager()
	if _, err := tm.Get("nope.md"); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}
