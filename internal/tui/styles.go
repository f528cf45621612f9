package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cba6f7"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	staleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
)
