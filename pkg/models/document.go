package models

// DocKind classifies a corpus document by its structure.
type DocKind string

const (
	KindScenario DocKind = "scenario"
	KindQA       DocKind = "qa"
	KindFreeform DocKind = "freeform"
)

// ScenarioDoc represents a parsed crisis-scenario document: a titled
// collection of challenge sections, each pairing a narrative with
// remediation options and success indicators.
type ScenarioDoc struct {
	Path       string
	Title      string
	Challenges []Challenge
}

// Challenge is a single `## ` section of a scenario document.
type Challenge struct {
	Title             string
	Narrative         string
	CoreChallenges    []string
	Options           []Option
	SuccessIndicators []string
	// UnknownLabels records bold-emphasis labels the parser did not
	// recognize, for the lint engine to report.
	UnknownLabels []string
	Line          int
}

// Option is a lettered remediation approach within a challenge. Tactics
// are the hyphenated sub-bullets beneath the option label.
type Option struct {
	Letter  string
	Title   string
	Tactics []string
	Line    int
}

// QADoc represents a parsed question-and-answer document. Documents
// without topic headers hold a single implicit topic with an empty title.
type QADoc struct {
	Path   string
	Title  string
	Topics []Topic
}

// Topic groups consecutive Q&A pairs under a `## N. Title` header.
// Preamble holds prose lines that precede the first question.
type Topic struct {
	Number   int
	Title    string
	Preamble []string
	Pairs    []QAPair
	Line     int
}

// QAPair is one question with its answer. Number is the question's
// original number in the source (0 when unnumbered). An unanswered
// question has an empty Answer; Answered distinguishes a missing "A:"
// line from one whose text normalized away.
type QAPair struct {
	Number   int
	Question string
	Answer   string
	Answered bool
	Line     int
}

// Questions returns the total number of pairs across all topics.
func (d *QADoc) Questions() int {
	n := 0
	for _, t := range d.Topics {
		n += len(t.Pairs)
	}
	return n
}

// Unanswered returns the number of pairs with no answer.
func (d *QADoc) Unanswered() int {
	n := 0
	for _, t := range d.Topics {
		for _, p := range t.Pairs {
			if p.Answer == "" {
				n++
			}
		}
	}
	return n
}
