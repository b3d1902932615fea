package core

import (
	"testing"
)

const sampleScenario = `# Production Database Crisis Scenarios

## Challenge 1: Replication Lag Spiral

**Scenario:** The read replicas have fallen forty minutes behind the
primary during a traffic spike, and stale reads are corrupting carts.

**Core Challenges:**
- Lag grows faster than replicas can apply WAL
- Failing over would lose forty minutes of writes

**Option A: Shed Read Traffic**
- Route all reads to the primary behind a feature flag
- Scale the primary vertically for the duration

**Option B: Parallel Apply**
- Enable parallel WAL apply on the replicas
- Throttle bulk writers on the primary

**Success Indicators:**
- Replica lag under five seconds for one hour
- Zero stale-read complaints in support channels

## Challenge 2: Empty Section
`

func TestParseScenario_Structure(t *testing.T) {
	doc := ParseScenario("scenario.md", []byte(sampleScenario))

	if doc.Title != "Production Database Crisis Scenarios" {
		t.Fatalf("title = %q", doc.Title)
	}
	if len(doc.Challenges) != 2 {
		t.Fatalf("expected 2 challenges, got %d", len(doc.Challenges))
	}

	ch := doc.Challenges[0]
	if ch.Title != "Challenge 1: Replication Lag Spiral" {
		t.Fatalf("challenge title = %q", ch.Title)
	}
	if len(ch.CoreChallenges) != 2 {
		t.Fatalf("core challenges = %d", len(ch.CoreChallenges))
	}
	if len(ch.Options) != 2 {
		t.Fatalf("options = %d", len(ch.Options))
	}
	if ch.Options[0].Letter != "A" || ch.Options[1].Letter != "B" {
		t.Fatalf("option letters = %q, %q", ch.Options[0].Letter, ch.Options[1].Letter)
	}
	if len(ch.Options[0].Tactics) != 2 {
		t.Fatalf("option A tactics = %d", len(ch.Options[0].Tactics))
	}
	if len(ch.SuccessIndicators) != 2 {
		t.Fatalf("success indicators = %d", len(ch.SuccessIndicators))
	}
	if ch.Narrative == "" {
		t.Fatalf("narrative should span wrapped lines")
	}

	empty := doc.Challenges[1]
	if len(empty.Options) != 0 || len(empty.SuccessIndicators) != 0 {
		t.Fatalf("empty challenge should have no content: %+v", empty)
	}
}

func TestParseScenario_UnknownLabelRecorded(t *testing.T) {
	src := "# T\n\n## C\n\n**Mitigation:** something\n"
	doc := ParseScenario("x.md", []byte(src))

	if len(doc.Challenges) != 1 {
		t.Fatalf("challenges = %d", len(doc.Challenges))
	}
	labels := doc.Challenges[0].UnknownLabels
	if len(labels) != 1 || labels[0] != "Mitigation" {
		t.Fatalf("unknown labels = %v", labels)
	}
}

func TestParseScenario_LabelBeforeHeadingOpensChallenge(t *testing.T) {
	src := "**Scenario:** trouble starts before any heading\n"
	doc := ParseScenario("x.md", []byte(src))

	if len(doc.Challenges) != 1 {
		t.Fatalf("expected an untitled challenge, got %d", len(doc.Challenges))
	}
	if doc.Challenges[0].Title != "" {
		t.Fatalf("challenge should be untitled")
	}
	if doc.Challenges[0].Narrative == "" {
		t.Fatalf("narrative lost")
	}
}

func TestParseScenario_TotalOnGarbage(t *testing.T) {
	src := "random prose\nwith no structure at all\n"
	doc := ParseScenario("x.md", []byte(src))

	if doc.Title != "" || len(doc.Challenges) != 0 {
		t.Fatalf("garbage input should parse to an empty doc: %+v", doc)
	}
}
