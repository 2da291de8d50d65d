package main

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#7C3AED")
	successColor = lipgloss.Color("#22C55E")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
	textColor    = lipgloss.Color("#F9FAFB")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	userLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	assistantLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	turnText = lipgloss.NewStyle().
			Foreground(textColor).
			PaddingLeft(2)

	chatBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor)

	statusBar = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	toastInfo    = lipgloss.NewStyle().Foreground(textColor).Padding(0, 1)
	toastSuccess = lipgloss.NewStyle().Foreground(successColor).Bold(true).Padding(0, 1)
	toastError   = lipgloss.NewStyle().Foreground(errorColor).Bold(true).Padding(0, 1)

	muted = lipgloss.NewStyle().Foreground(mutedColor)
)
