package core

import (
	"sort"

	"github.com/opskit/devnotes/pkg/models"
)

// Renumber rewrites question numbers in place according to mode and
// returns how many pairs changed number. Topic mode restarts at 1 inside
// each topic; global mode numbers 1..N across the document; keep is a
// no-op. Content is never touched.
func Renumber(doc *models.QADoc, mode models.RenumberMode) int {
	if mode == models.RenumberKeep {
		return 0
	}
	changed := 0
	n := 0
	for ti := range doc.Topics {
		if mode == models.RenumberTopic {
			n = 0
		}
		for pi := range doc.Topics[ti].Pairs {
			n++
			if doc.Topics[ti].Pairs[pi].Number != n {
				doc.Topics[ti].Pairs[pi].Number = n
				changed++
			}
		}
	}
	return changed
}

// Reorder sorts the pairs of each topic by their original number, keeping
// unnumbered pairs in their relative order at the end, then renumbers the
// whole document 1..N. It reports whether anything moved or was
// renumbered. The pair multiset is preserved; reordering is a permutation.
func Reorder(doc *models.QADoc) bool {
	changed := false
	for ti := range doc.Topics {
		pairs := doc.Topics[ti].Pairs
		if len(pairs) < 2 {
			continue
		}
		numbered := make([]models.QAPair, 0, len(pairs))
		var unnumbered []models.QAPair
		for _, p := range pairs {
			if p.Number > 0 {
				numbered = append(numbered, p)
			} else {
				unnumbered = append(unnumbered, p)
			}
		}
		sort.SliceStable(numbered, func(i, j int) bool {
			return numbered[i].Number < numbered[j].Number
		})
		merged := append(numbered, unnumbered...)
		for i := range merged {
			if merged[i] != pairs[i] {
				changed = true
			}
		}
		doc.Topics[ti].Pairs = merged
	}
	if Renumber(doc, models.RenumberGlobal) > 0 {
		changed = true
	}
	return changed
}
