package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opskit/devnotes/pkg/models"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Kafka Consumer Lag", "kafka-consumer-lag"},
		{"  PostgreSQL: Backups & WAL  ", "postgresql-backups-wal"},
		{"already-slugged", "already-slugged"},
		{"???", ""},
		{"Scaling to 10x", "scaling-to-10x"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreate_WritesSkeleton(t *testing.T) {
	dir := t.TempDir()
	dc := NewDocumentCreator(dir, NewTemplateManager())

	path, err := dc.Create(models.KindQA, "Incident Response Q&A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "incident-response-q-a.md" {
		t.Fatalf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading created doc: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Incident Response Q&A\n") {
		t.Fatalf("title missing:\n%s", data)
	}
}

func TestCreate_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	dc := NewDocumentCreator(dir, NewTemplateManager())

	if _, err := dc.Create(models.KindScenario, "Outage Drill"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := dc.Create(models.KindScenario, "Outage Drill"); err == nil {
		t.Fatalf("expected collision error")
	}
}

func TestCreate_Invalid(t *testing.T) {
	dc := NewDocumentCreator(t.TempDir(), NewTemplateManager())

	if _, err := dc.Create(models.KindQA, "   "); err == nil {
		t.Fatalf("expected error for empty title")
	}
	if _, err := dc.Create(models.KindFreeform, "Notes"); err == nil {
		t.Fatalf("expected error for unsupported kind")
	}
	if _, err := dc.Create(models.KindQA, "!!!"); err == nil {
		t.Fatalf("expected error for unslugifiable title")
	}
}
