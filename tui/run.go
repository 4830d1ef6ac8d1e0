package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive UI and blocks until the user quits.
func Run(p Params) error {
	prog := tea.NewProgram(newModel(p), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
