package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentlock/agentlock/internal/types"
)

// Run opens the findings browser for a finished scan.
func Run(rep types.Report) error {
	m := NewModel(rep)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
