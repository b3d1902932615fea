package core

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/opskit/devnotes/pkg/models"
)

var (
	// topicHeaderRe matches topic headers in canonical form, with or
	// without a number: "## 3. Scaling & Replication", "## Scaling".
	topicHeaderRe = regexp.MustCompile(`^##\s+(?:(\d+)\.(?:\s+|\s*$))?(.*)$`)
	// questionRe matches "12. Q: text" and bare "Q: text" lines.
	questionRe = regexp.MustCompile(`^(?:(\d+)\.\s*)?Q:\s*(.*)$`)
	// answerRe matches "A: text" lines.
	answerRe = regexp.MustCompile(`^A:\s*(.*)$`)
	// rawTopicRe matches unpromoted topic lines in raw exports, such as
	// "4. Backup, Recovery & Data Safety".
	rawTopicRe = regexp.MustCompile(`^(\d+)\.\s+([A-Z][A-Za-z0-9 &/,()-]*)$`)
)

// isRawTopicHeader reports whether a plain line is a topic title that was
// never promoted to a markdown header. Raw chat exports number topic
// sections the same way they number questions, so the test is heuristic:
// long enough to be a title, starts capitalized, contains no question mark,
// and is not itself a question line.
func isRawTopicHeader(line string) bool {
	if len(line) <= 15 || strings.Contains(line, "?") {
		return false
	}
	if questionRe.MatchString(line) {
		return false
	}
	return rawTopicRe.MatchString(line)
}

// ParseQA parses a question-and-answer document. Like ParseScenario it is
// total: lines it cannot classify are preserved as preamble or appended to
// the open question or answer, so a later render loses nothing.
func ParseQA(path string, src []byte) *models.QADoc {
	doc := &models.QADoc{Path: path}
	var topic *models.Topic
	var pair *models.QAPair
	inAnswer := false

	flushPair := func() {
		if pair != nil && topic != nil {
			topic.Pairs = append(topic.Pairs, *pair)
		}
		pair = nil
		inAnswer = false
	}
	flushTopic := func() {
		flushPair()
		if topic != nil {
			doc.Topics = append(doc.Topics, *topic)
		}
		topic = nil
	}
	// Content before the first header lands in an implicit topic with
	// no number and no title.
	ensureTopic := func(line int) {
		if topic == nil {
			topic = &models.Topic{Line: line}
		}
	}

	for i, raw := range strings.Split(string(src), "\n") {
		line := strings.TrimSpace(raw)
		lineNo := i + 1

		switch {
		case line == "":
			// Blank lines separate pairs visually but end nothing.

		case strings.HasPrefix(line, "## "):
			flushTopic()
			m := topicHeaderRe.FindStringSubmatch(line)
			topic = &models.Topic{Title: strings.TrimSpace(m[2]), Line: lineNo}
			if m[1] != "" {
				topic.Number, _ = strconv.Atoi(m[1])
			}

		case strings.HasPrefix(line, "# ") && doc.Title == "" && topic == nil:
			doc.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))

		case isRawTopicHeader(line):
			flushTopic()
			m := rawTopicRe.FindStringSubmatch(line)
			num, _ := strconv.Atoi(m[1])
			topic = &models.Topic{Number: num, Title: strings.TrimSpace(m[2]), Line: lineNo}

		case questionRe.MatchString(line):
			m := questionRe.FindStringSubmatch(line)
			ensureTopic(lineNo)
			flushPair()
			pair = &models.QAPair{Question: strings.TrimSpace(m[2]), Line: lineNo}
			if m[1] != "" {
				pair.Number, _ = strconv.Atoi(m[1])
			}

		case answerRe.MatchString(line):
			m := answerRe.FindStringSubmatch(line)
			ensureTopic(lineNo)
			if pair == nil {
				// An answer with no question; kept for lint to report.
				pair = &models.QAPair{Line: lineNo}
			}
			pair.Answer = joinText(pair.Answer, strings.TrimSpace(m[1]))
			pair.Answered = true
			inAnswer = true

		default:
			switch {
			case pair != nil && inAnswer:
				pair.Answer = joinText(pair.Answer, line)
			case pair != nil:
				pair.Question = joinText(pair.Question, line)
			default:
				ensureTopic(lineNo)
				if collapsed := collapseSpaces(line); len([]rune(collapsed)) > 3 {
					topic.Preamble = append(topic.Preamble, collapsed)
				}
			}
		}
	}
	flushTopic()
	return doc
}

// RenderQA renders a document in canonical form: single-line questions and
// answers with whitespace collapsed, one blank line between pairs, topics
// as "## N. Title" headers. Parsing and re-rendering canonical output is a
// fixpoint.
func RenderQA(doc *models.QADoc) string {
	var sb strings.Builder
	if doc.Title != "" {
		sb.WriteString("# " + doc.Title + "\n\n")
	}
	for _, t := range doc.Topics {
		if t.Title != "" || t.Number > 0 {
			header := "## "
			if t.Number > 0 {
				header += strconv.Itoa(t.Number) + "."
				if t.Title != "" {
					header += " "
				}
			}
			sb.WriteString(header + t.Title + "\n\n")
		}
		if len(t.Preamble) > 0 {
			for _, p := range t.Preamble {
				sb.WriteString(p + "\n")
			}
			sb.WriteString("\n")
		}
		for _, pair := range t.Pairs {
			if pair.Question != "" || pair.Number > 0 {
				q := "Q:"
				if text := collapseSpaces(pair.Question); text != "" {
					q += " " + text
				}
				if pair.Number > 0 {
					q = strconv.Itoa(pair.Number) + ". " + q
				}
				sb.WriteString(q + "\n")
			}
			if text := collapseSpaces(pair.Answer); text != "" {
				sb.WriteString("A: " + text + "\n")
			}
			sb.WriteString("\n")
		}
	}
	out := strings.TrimRight(sb.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

// joinText appends a fragment to accumulated text with a single space.
func joinText(base, extra string) string {
	if extra == "" {
		return base
	}
	if base == "" {
		return extra
	}
	return base + " " + extra
}

// collapseSpaces normalizes internal whitespace runs to single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
