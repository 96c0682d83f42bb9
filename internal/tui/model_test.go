package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentlock/agentlock/internal/report"
	"github.com/agentlock/agentlock/internal/types"
)

func sampleReport() types.Report {
	return report.Build([]types.Finding{
		{Rule: "security-todo", Name: "Unresolved security TODO", Severity: types.SevLow, File: "a.go", Line: 9},
		{Rule: "exposed-api-key", Name: "Exposed API key", Severity: types.SevCritical, File: "creds.txt", Line: 1},
		{Rule: "prompt-override", Name: "Prompt override attempt", Severity: types.SevHigh, File: "notes.md", Line: 4},
	}, 3, false)
}

func TestNewModel_SortsBySeverity(t *testing.T) {
	m := NewModel(sampleReport())
	if len(m.findings) != 3 {
		t.Fatalf("findings: %d", len(m.findings))
	}
	if m.findings[0].Severity != types.SevCritical ||
		m.findings[1].Severity != types.SevHigh ||
		m.findings[2].Severity != types.SevLow {
		t.Fatalf("order: %v %v %v", m.findings[0].Severity, m.findings[1].Severity, m.findings[2].Severity)
	}
}

func TestModel_QuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		m := NewModel(sampleReport())
		_, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Fatalf("%s: expected tea.Quit", key)
		}
	}
}

func TestModel_ViewAfterResize(t *testing.T) {
	m := NewModel(sampleReport())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 32})
	m = next.(Model)

	out := m.View()
	if !strings.Contains(out, "score") {
		t.Fatalf("title missing from view:\n%s", out)
	}
	if !strings.Contains(out, "exposed-api-key") {
		t.Fatalf("table rows missing from view:\n%s", out)
	}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := NewModel(sampleReport())
	if got := m.View(); got != "loading..." {
		t.Fatalf("pre-resize view = %q", got)
	}
}

func TestSeverityText(t *testing.T) {
	cases := map[types.Severity]string{
		types.SevCritical: "CRIT",
		types.SevHigh:     "HIGH",
		types.SevMed:      "MED",
		types.SevLow:      "LOW",
	}
	for sev, want := range cases {
		if got := severityText(sev); got != want {
			t.Errorf("severityText(%s) = %s, want %s", sev, got, want)
		}
	}
}

func keyMsg(s string) tea.Msg {
	switch s {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
