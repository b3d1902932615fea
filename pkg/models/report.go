package models

// RenumberMode selects how question numbers are rewritten.
type RenumberMode string

const (
	// RenumberTopic restarts numbering at 1 inside each topic.
	RenumberTopic RenumberMode = "topic"
	// RenumberGlobal numbers questions 1..N across the whole document.
	RenumberGlobal RenumberMode = "global"
	// RenumberKeep leaves the original numbers untouched.
	RenumberKeep RenumberMode = "keep"
)

// CleanReport describes what one clean pass did to a document.
type CleanReport struct {
	RunID        string `json:"run_id" yaml:"run_id"`
	Path         string `json:"path" yaml:"path"`
	OutputPath   string `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Topics       int    `json:"topics" yaml:"topics"`
	Questions    int    `json:"questions" yaml:"questions"`
	Answers      int    `json:"answers" yaml:"answers"`
	Unanswered   int    `json:"unanswered" yaml:"unanswered"`
	FluffRemoved int    `json:"fluff_removed" yaml:"fluff_removed"`
	Renumbered   int    `json:"renumbered" yaml:"renumbered"`
	Reordered    bool   `json:"reordered" yaml:"reordered"`
	Changed      bool   `json:"changed" yaml:"changed"`
}

// ScrubResult pairs scrubbed text with the number of pattern matches
// removed from it.
type ScrubResult struct {
	Text    string
	Removed int
}
