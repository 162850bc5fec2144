package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tidemarsh/floodwatch/internal/domain"
)

var (
	// Colors
	colorRed    = lipgloss.Color("#FF5555")
	colorYellow = lipgloss.Color("#F1FA8C")
	colorGreen  = lipgloss.Color("#50FA7B")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorWhite  = lipgloss.Color("#F8F8F2")
	colorGray   = lipgloss.Color("#6272A4")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	labelStyle   = lipgloss.NewStyle().Foreground(colorGray)
	valueStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	okStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	watchStyle   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	alertStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	offlineStyle = lipgloss.NewStyle().Foreground(colorGray)
	helpStyle    = lipgloss.NewStyle().Foreground(colorGray)
)

func statusStyle(st domain.Status) lipgloss.Style {
	switch st {
	case domain.StatusAlert:
		return alertStyle
	case domain.StatusWatch:
		return watchStyle
	default:
		return okStyle
	}
}
