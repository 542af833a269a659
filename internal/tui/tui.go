package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Config carries the persistent-flag values into the interactive session.
// Remote skips the backend-select screen.
type Config struct {
	File    string
	BaseURL string
	Remote  bool
}

// Run starts the interactive menu and blocks until the user quits.
func Run(cfg Config) error {
	m := newAppModel(cfg)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
