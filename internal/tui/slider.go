package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/devcorp/internal/staffing"
)

// renderSlider draws a 1-10 level slider with its caption row.
func renderSlider(label string, value int, captions [3]string, width int, focused bool) string {
	width = max(width, 16)
	span := staffing.MaxLevel - staffing.MinLevel
	knob := (value - staffing.MinLevel) * (width - 1) / span

	filled := lipgloss.NewStyle().Foreground(colorPurple).Render(strings.Repeat("━", knob))
	rest := mutedStyle.Render(strings.Repeat("─", width-1-knob))
	handle := lipgloss.NewStyle().Foreground(colorPink).Bold(focused).Render("●")

	marker := "  "
	labelStyle := subtleStyle
	if focused {
		marker = titleStyle.Render("▸ ")
		labelStyle = lipgloss.NewStyle().Bold(true)
	}
	head := marker + labelStyle.Render(fmt.Sprintf("%s (%d-%d): %d", label, staffing.MinLevel, staffing.MaxLevel, value))
	bar := "  " + filled + handle + rest
	return lipgloss.JoinVertical(lipgloss.Left, head, bar, "  "+mutedStyle.Render(spreadCaptions(captions, width)))
}

// spreadCaptions places three captions at the left, middle and right of width.
func spreadCaptions(captions [3]string, width int) string {
	left, mid, right := captions[0], captions[1], captions[2]
	line := []rune(strings.Repeat(" ", width))
	place := func(s string, at int) {
		at = max(0, min(at, width-len([]rune(s))))
		for i, r := range []rune(s) {
			if at+i < len(line) {
				line[at+i] = r
			}
		}
	}
	place(left, 0)
	place(mid, (width-len([]rune(mid)))/2)
	place(right, width-len([]rune(right)))
	return string(line)
}
