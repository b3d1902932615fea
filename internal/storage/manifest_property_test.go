package storage

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/opskit/devnotes/pkg/models"
)

func manifestEntryGenerator() *rapid.Generator[models.ManifestEntry] {
	kinds := []models.DocKind{models.KindScenario, models.KindQA, models.KindFreeform}
	return rapid.Custom(func(rt *rapid.T) models.ManifestEntry {
		return models.ManifestEntry{
			Path:         rapid.StringMatching(`[a-z]{1,8}(/[a-z]{1,8})?\.md`).Draw(rt, "path"),
			Kind:         rapid.SampledFrom(kinds).Draw(rt, "kind"),
			Title:        rapid.StringMatching(`[A-Za-z ]{0,24}`).Draw(rt, "title"),
			SHA256:       rapid.StringMatching(`[0-9a-f]{64}`).Draw(rt, "sha"),
			SizeBytes:    int64(rapid.IntRange(0, 1<<20).Draw(rt, "size")),
			UpdatedAt:    time.Unix(int64(rapid.IntRange(1_600_000_000, 1_800_000_000).Draw(rt, "updated")), 0).UTC(),
			LintErrors:   rapid.IntRange(0, 20).Draw(rt, "errors"),
			LintWarnings: rapid.IntRange(0, 20).Draw(rt, "warnings"),
		}
	})
}

// Feature: devnotes, Property: Manifest Save/Load Round Trip
// Every entry written through Save comes back identical from Load.
func TestProperty_ManifestRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dir := t.TempDir()
		entries := rapid.SliceOfNDistinct(manifestEntryGenerator(), 1, 8,
			func(e models.ManifestEntry) string { return e.Path }).Draw(rt, "entries")

		m := NewManifestManager(dir)
		if err := m.Update(entries); err != nil {
			t.Fatalf("update: %v", err)
		}
		if err := m.Save(); err != nil {
			t.Fatalf("save: %v", err)
		}

		fresh := NewManifestManager(dir)
		if err := fresh.Load(); err != nil {
			t.Fatalf("load: %v", err)
		}
		for _, want := range entries {
			got, err := fresh.Get(want.Path)
			if err != nil {
				t.Fatalf("get %s: %v", want.Path, err)
			}
			if *got != want {
				t.Fatalf("entry changed across round trip:\nwant %+v\ngot  %+v", want, *got)
			}
		}
	})
}
