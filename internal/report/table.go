// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders an aligned table with a dim header row and a
// separator line. Column widths account for ANSI styling via
// lipgloss.Width, so pre-styled cells align correctly.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder

	for i, h := range headers {
		b.WriteString(Dim(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	total += 2 * (len(widths) - 1)
	b.WriteString(Dim(strings.Repeat("─", total)))
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			b.WriteString(pad(cell, widths[i]))
			if i < len(row)-1 && i < len(widths)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderBox draws a rounded box around content with an optional title on
// the top border.
func RenderBox(title, content string) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")

	width := lipgloss.Width(title) + 4
	for _, line := range lines {
		if lipgloss.Width(line)+4 > width {
			width = lipgloss.Width(line) + 4
		}
	}

	var b strings.Builder

	if title != "" {
		rest := width - lipgloss.Width(title) - 3
		if rest < 0 {
			rest = 0
		}
		b.WriteString(Dim(fmt.Sprintf("╭─ %s %s╮", title, strings.Repeat("─", rest))))
	} else {
		b.WriteString(Dim("╭" + strings.Repeat("─", width) + "╮"))
	}
	b.WriteString("\n")

	for _, line := range lines {
		pad := width - lipgloss.Width(line) - 2
		if pad < 0 {
			pad = 0
		}
		b.WriteString(Dim("│"))
		b.WriteString(" " + line + strings.Repeat(" ", pad) + " ")
		b.WriteString(Dim("│"))
		b.WriteString("\n")
	}

	b.WriteString(Dim("╰" + strings.Repeat("─", width) + "╯"))
	b.WriteString("\n")

	return b.String()
}

func pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
