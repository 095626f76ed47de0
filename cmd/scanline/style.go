package main

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87ceeb"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")).Width(12)
	valueStyle = lipgloss.NewStyle().Bold(true)
	hudStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff80")).Background(lipgloss.Color("#000000"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
)

func field(label string, value any) string {
	return labelStyle.Render(label) + valueStyle.Render(fmt.Sprint(value))
}

func section(title string, rows ...string) string {
	lines := append([]string{titleStyle.Render(title)}, rows...)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func swatch(c color.RGBA) string {
	return lipgloss.NewStyle().Background(c).Render("  ")
}
