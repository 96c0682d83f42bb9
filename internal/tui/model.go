// Package tui is an interactive findings browser: a severity-sorted table
// with a detail pane for the selected finding.
package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agentlock/agentlock/internal/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))
)

// severityText returns plain text for severity (ANSI codes break table
// truncation).
func severityText(s types.Severity) string {
	switch s {
	case types.SevCritical:
		return "CRIT"
	case types.SevHigh:
		return "HIGH"
	case types.SevMed:
		return "MED"
	case types.SevLow:
		return "LOW"
	default:
		return string(s)
	}
}

// Model is the state of the findings browser.
type Model struct {
	report   types.Report
	findings []types.Finding // severity-sorted view of report.Findings
	table    table.Model
	viewport viewport.Model
	ready    bool
	quitting bool
	status   string
	width    int
	height   int
}

// NewModel builds the browser for one report.
func NewModel(rep types.Report) Model {
	findings := make([]types.Finding, len(rep.Findings))
	copy(findings, rep.Findings)
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity.Rank() < findings[j].Severity.Rank()
	})

	columns := []table.Column{
		{Title: "SEV", Width: 5},
		{Title: "RULE", Width: 26},
		{Title: "LOCATION", Width: 40},
	}
	rows := make([]table.Row, 0, len(findings))
	for _, f := range findings {
		loc := f.File
		if f.Line > 0 {
			loc += ":" + strconv.Itoa(f.Line)
		}
		rows = append(rows, table.Row{severityText(f.Severity), f.Rule, loc})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
	)
	return Model{report: rep, findings: findings, table: t}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(maxInt(msg.Height-12, 4))
		m.viewport = viewport.New(msg.Width-4, 6)
		m.ready = true
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "c":
			if f, ok := m.selected(); ok {
				if err := clipboard.WriteAll(f.File); err != nil {
					m.status = "clipboard unavailable"
				} else {
					m.status = "copied " + f.File
				}
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.syncDetail()
	return m, cmd
}

func (m *Model) selected() (types.Finding, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.findings) {
		return types.Finding{}, false
	}
	return m.findings[i], true
}

func (m *Model) syncDetail() {
	if !m.ready {
		return
	}
	f, ok := m.selected()
	if !ok {
		m.viewport.SetContent("no findings")
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", f.Name, f.Severity)
	fmt.Fprintf(&b, "%s\n\n", f.Description)
	fmt.Fprintf(&b, "match: %s\n", matchStyle.Render(f.Match))
	m.viewport.SetContent(b.String())
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}
	title := titleStyle.Render(fmt.Sprintf("agentlock — score %d (%s), %d findings",
		m.report.Score, m.report.Grade, m.report.TotalFindings))
	status := m.status
	if status == "" {
		status = "↑/↓ navigate · c copy path · q quit"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		tableBorderStyle.Render(m.table.View()),
		detailBorderStyle.Render(m.viewport.View()),
		statusStyle.Render(" "+status+" "),
	)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
