package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// Review panel indices.
const (
	panelCorpus = iota
	panelFindings
	panelActivity
	panelCount
)

type reviewModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	stats    *corpusSnapshot
	findings []findingSnapshot
	activity *activitySnapshot
	alerts   []alertSnapshot

	// State.
	loading bool
	err     error
}

type corpusSnapshot struct {
	scenarios  int
	qaDocs     int
	freeform   int
	questions  int
	answers    int
	unanswered int
	totalBytes int64
}

type findingSnapshot struct {
	path     string
	errors   int
	warnings int
}

type activitySnapshot struct {
	lintRuns     int
	docsCleaned  int
	fluffRemoved int
	renumbered   int
	eventCount   int
}

type alertSnapshot struct {
	severity string
	message  string
	time     string
}

// reviewDataMsg carries loaded data back to the model.
type reviewDataMsg struct {
	stats    *corpusSnapshot
	findings []findingSnapshot
	activity *activitySnapshot
	alerts   []alertSnapshot
	err      error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	errorCountStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnCountStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	cleanStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

	severityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	severityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	severityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newReviewModel() reviewModel {
	return reviewModel{
		activePanel: panelCorpus,
		loading:     true,
	}
}

func (m reviewModel) Init() tea.Cmd {
	return loadReviewData
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadReviewData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case reviewDataMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.stats = msg.stats
		m.findings = msg.findings
		m.activity = msg.activity
		m.alerts = msg.alerts
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m reviewModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" DevNotes Review ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Scanning corpus...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	corpusPanel := m.renderCorpusPanel()
	findingsPanel := m.renderFindingsPanel()
	activityPanel := m.renderActivityPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		corpusPanel = m.applyPanelStyle(panelCorpus, corpusPanel, colWidth-4)
		findingsPanel = m.applyPanelStyle(panelFindings, findingsPanel, colWidth-4)
		activityPanel = m.applyPanelStyle(panelActivity, activityPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, corpusPanel, findingsPanel, activityPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		corpusPanel = m.applyPanelStyle(panelCorpus, corpusPanel, panelWidth)
		findingsPanel = m.applyPanelStyle(panelFindings, findingsPanel, panelWidth)
		activityPanel = m.applyPanelStyle(panelActivity, activityPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, corpusPanel, findingsPanel, activityPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m reviewModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m reviewModel) renderCorpusPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Corpus"))
	b.WriteString("\n")

	if m.stats == nil {
		b.WriteString("  No corpus found.")
		return b.String()
	}

	s := m.stats
	lines := []struct {
		label string
		value string
	}{
		{"Scenarios", fmt.Sprintf("%d", s.scenarios)},
		{"Q&A docs", fmt.Sprintf("%d", s.qaDocs)},
		{"Freeform", fmt.Sprintf("%d", s.freeform)},
		{"Questions", fmt.Sprintf("%d", s.questions)},
		{"Answered", fmt.Sprintf("%d", s.answers)},
		{"Unanswered", fmt.Sprintf("%d", s.unanswered)},
		{"Size", humanize.Bytes(uint64(s.totalBytes))},
	}
	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", l.label, l.value))
	}
	return b.String()
}

func (m reviewModel) renderFindingsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Open Findings"))
	b.WriteString("\n")

	if len(m.findings) == 0 {
		b.WriteString(cleanStyle.Render("  Corpus is clean."))
		return b.String()
	}

	shown := m.findings
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, f := range shown {
		counts := ""
		if f.errors > 0 {
			counts += errorCountStyle.Render(fmt.Sprintf("%dE", f.errors))
		}
		if f.warnings > 0 {
			if counts != "" {
				counts += " "
			}
			counts += warnCountStyle.Render(fmt.Sprintf("%dW", f.warnings))
		}
		b.WriteString(fmt.Sprintf("  %-32s %s\n", trimPath(f.path, 32), counts))
	}
	if len(m.findings) > len(shown) {
		b.WriteString(fmt.Sprintf("\n  ... and %d more document(s)", len(m.findings)-len(shown)))
	}
	return b.String()
}

func (m reviewModel) renderActivityPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Activity (7d)"))
	b.WriteString("\n")

	if m.activity == nil {
		b.WriteString("  No activity recorded.")
		return b.String()
	}

	a := m.activity
	lines := []struct {
		label string
		value int
	}{
		{"Events", a.eventCount},
		{"Lint runs", a.lintRuns},
		{"Docs cleaned", a.docsCleaned},
		{"Fluff removed", a.fluffRemoved},
		{"Renumbered", a.renumbered},
	}
	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %-14s %d\n", l.label, l.value))
	}

	if len(m.alerts) > 0 {
		b.WriteString("\n")
		for _, al := range m.alerts {
			sev := styleForSeverity(al.severity).Render(fmt.Sprintf("[%s]", strings.ToUpper(al.severity)))
			b.WriteString(fmt.Sprintf("  %s %s\n", sev, al.message))
		}
	}
	return b.String()
}

// trimPath shortens long paths from the left so the filename stays visible.
func trimPath(path string, max int) string {
	if len(path) <= max {
		return path
	}
	return "..." + path[len(path)-max+3:]
}

func styleForSeverity(severity string) lipgloss.Style {
	switch strings.ToLower(severity) {
	case "high":
		return severityHigh
	case "medium":
		return severityMedium
	case "low":
		return severityLow
	default:
		return lipgloss.NewStyle()
	}
}

func loadReviewData() tea.Msg {
	result := reviewDataMsg{}

	// Scan the corpus through the catalog.
	if Catalog != nil {
		stats, err := Catalog.BuildStats()
		if err != nil {
			result.err = fmt.Errorf("scanning corpus: %w", err)
			return result
		}
		result.stats = &corpusSnapshot{
			scenarios:  stats.Scenarios,
			qaDocs:     stats.QADocs,
			freeform:   stats.Freeform,
			questions:  stats.Questions,
			answers:    stats.Answers,
			unanswered: stats.Unanswered,
			totalBytes: stats.TotalBytes,
		}
	}

	// Open findings come from the manifest's recorded lint state.
	if Manifest != nil {
		entries, err := Manifest.All()
		if err != nil {
			result.err = fmt.Errorf("reading manifest: %w", err)
			return result
		}
		for _, e := range entries {
			if e.LintErrors == 0 && e.LintWarnings == 0 {
				continue
			}
			result.findings = append(result.findings, findingSnapshot{
				path:     e.Path,
				errors:   e.LintErrors,
				warnings: e.LintWarnings,
			})
		}
		// Worst documents first.
		sort.Slice(result.findings, func(i, j int) bool {
			fi, fj := result.findings[i], result.findings[j]
			if fi.errors != fj.errors {
				return fi.errors > fj.errors
			}
			if fi.warnings != fj.warnings {
				return fi.warnings > fj.warnings
			}
			return fi.path < fj.path
		})
	}

	// Recent activity from the event log.
	if MetricsCalc != nil {
		since := time.Now().UTC().AddDate(0, 0, -7)
		metrics, err := MetricsCalc.Calculate(since)
		if err != nil {
			result.err = fmt.Errorf("loading metrics: %w", err)
			return result
		}
		result.activity = &activitySnapshot{
			lintRuns:     metrics.LintRuns,
			docsCleaned:  metrics.DocsCleaned,
			fluffRemoved: metrics.FluffRemoved,
			renumbered:   metrics.QuestionsRenumbered,
			eventCount:   metrics.EventCount,
		}
	}

	// Active alerts, worst first.
	if AlertEngine != nil {
		alerts, err := AlertEngine.Evaluate()
		if err != nil {
			result.err = fmt.Errorf("loading alerts: %w", err)
			return result
		}
		sort.Slice(alerts, func(i, j int) bool {
			return severityRank(string(alerts[i].Severity)) < severityRank(string(alerts[j].Severity))
		})
		for _, a := range alerts {
			result.alerts = append(result.alerts, alertSnapshot{
				severity: string(a.Severity),
				message:  a.Message,
				time:     a.TriggeredAt.Format("2006-01-02 15:04 UTC"),
			})
		}
	}

	return result
}

func severityRank(s string) int {
	switch s {
	case "high":
		return 0
	case "medium":
		return 1
	case "low":
		return 2
	default:
		return 3
	}
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Interactive TUI for corpus health review",
	Long: `Launch an interactive terminal view of corpus health: document counts,
documents with open lint findings, and recent maintenance activity.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Catalog == nil {
			return fmt.Errorf("no workspace found; run 'dvn init' first")
		}
		p := tea.NewProgram(newReviewModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
