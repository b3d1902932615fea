package core

import (
	"strings"

	"github.com/opskit/devnotes/pkg/models"
)

// DetectKind classifies markdown content by scanning for structural
// markers. Scenario markers win over Q&A markers because scenario
// narratives may quote question-like prose.
func DetectKind(src []byte) models.DocKind {
	sawQA := false
	for _, raw := range strings.Split(string(src), "\n") {
		line := strings.TrimSpace(raw)
		if optionLabelRe.MatchString(line) {
			return models.KindScenario
		}
		if m := boldLabelRe.FindStringSubmatch(line); m != nil {
			switch strings.TrimSpace(m[1]) {
			case labelScenario, labelSuccessIndicators, labelCoreChallenges:
				return models.KindScenario
			}
		}
		if questionRe.MatchString(line) || answerRe.MatchString(line) {
			sawQA = true
		}
	}
	if sawQA {
		return models.KindQA
	}
	return models.KindFreeform
}
