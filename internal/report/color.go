// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders knowledge-map results for terminal display.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// LevelStyle returns the style for a prerequisite level: green for the
// foundation, blue for core, yellow for intermediate, red for advanced.
func LevelStyle(level int) lipgloss.Style {
	switch level {
	case 0:
		return StyleGreen
	case 1:
		return StyleBlue
	case 2:
		return StyleYellow
	default:
		return StyleRed
	}
}

// LevelName labels a prerequisite level for display.
func LevelName(level int) string {
	switch level {
	case 0:
		return "Foundation"
	case 1:
		return "Core"
	case 2:
		return "Intermediate"
	default:
		return fmt.Sprintf("Advanced %d", level)
	}
}

// LevelBadge returns a colored "● Name (Level N)" indicator.
func LevelBadge(level int) string {
	return LevelStyle(level).Render(fmt.Sprintf("● %s (Level %d)", LevelName(level), level))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
