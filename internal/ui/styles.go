// Package ui renders gallery state for the terminal.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	Success = lipgloss.Color("#43A047") // green
	Error   = lipgloss.Color("#E53935") // red
	Muted   = lipgloss.Color("#8A8F98")
	Link    = lipgloss.Color("#2196F3")
)

// Styles holds the styles shared by the table and panels.
type Styles struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Link    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Underline(true),
		Bold:    lipgloss.NewStyle().Bold(true),
		Body:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(Muted),
		Link:    lipgloss.NewStyle().Foreground(Link),
		Success: lipgloss.NewStyle().Foreground(Success),
		Error:   lipgloss.NewStyle().Foreground(Error),
	}
}
