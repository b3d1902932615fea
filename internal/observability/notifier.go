package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Notifier delivers triggered alerts to an external channel.
type Notifier interface {
	Notify(alerts []Alert) error
}

// slackNotifier posts alerts to a Slack incoming webhook. Alerts are
// grouped by condition, so a corpus with lint errors in twenty documents
// produces one section with twenty bullets, not twenty blocks.
type slackNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewSlackNotifier creates a Notifier posting to the given webhook URL.
func NewSlackNotifier(webhookURL string) Notifier {
	return &slackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Notify sends the given alerts to the configured webhook. An empty
// alerts slice sends nothing.
func (s *slackNotifier) Notify(alerts []Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	body, err := json.Marshal(s.buildMessage(alerts))
	if err != nil {
		return fmt.Errorf("marshaling slack message: %w", err)
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting to slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// buildMessage renders a header, one section per alert condition in
// first-seen order, and a context footer with the total.
func (s *slackNotifier) buildMessage(alerts []Alert) slackMessage {
	msg := slackMessage{Blocks: []slackBlock{{
		Type: "header",
		Text: &slackText{Type: "plain_text", Text: "DevNotes corpus health"},
	}}}

	var order []string
	grouped := make(map[string][]Alert)
	for _, a := range alerts {
		if _, seen := grouped[a.Condition]; !seen {
			order = append(order, a.Condition)
		}
		grouped[a.Condition] = append(grouped[a.Condition], a)
	}

	for _, condition := range order {
		group := grouped[condition]
		var b strings.Builder
		fmt.Fprintf(&b, "%s *%s*", severityEmoji(group[0].Severity), conditionTitle(condition))
		for _, a := range group {
			fmt.Fprintf(&b, "\n• %s", a.Message)
		}
		msg.Blocks = append(msg.Blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: b.String()},
		})
	}

	msg.Blocks = append(msg.Blocks, slackBlock{
		Type: "context",
		Elements: []slackText{{
			Type: "mrkdwn",
			Text: fmt.Sprintf("%d alert(s) · %s · dvn alerts",
				len(alerts), alerts[0].TriggeredAt.Format("2006-01-02 15:04 UTC")),
		}},
	})
	return msg
}

// conditionTitle renders a condition ID like "lint_errors_present" as a
// section heading.
func conditionTitle(condition string) string {
	title := strings.ReplaceAll(condition, "_", " ")
	if title == "" {
		return condition
	}
	return strings.ToUpper(title[:1]) + title[1:]
}

func severityEmoji(severity AlertSeverity) string {
	switch severity {
	case SeverityHigh:
		return "\U0001f534"
	case SeverityMedium:
		return "\U0001f7e1"
	case SeverityLow:
		return "\U0001f535"
	default:
		return "❓"
	}
}
