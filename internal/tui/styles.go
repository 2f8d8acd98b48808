package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/devcorp/internal/staffing"
)

var (
	colorPurple  = lipgloss.Color("#6B00F2")
	colorCyan    = lipgloss.Color("#00B6F0")
	colorPink    = lipgloss.Color("#FF3366")
	colorAmber   = lipgloss.Color("#F2A900")
	colorGreen   = lipgloss.Color("#2FBF71")
	colorBorder  = lipgloss.Color("#444444")
	colorMuted   = lipgloss.Color("#888888")
	colorSubtle  = lipgloss.Color("#AAAAAA")
	colorHeading = lipgloss.Color("#5B8DEF")
	colorError   = lipgloss.Color("#FF6B6B")
)

var categoryColors = map[staffing.Category]lipgloss.Color{
	staffing.CategorySpecialistSkills:  colorPurple,
	staffing.CategoryPlanning:          colorPurple,
	staffing.CategoryLandAssembly:      colorAmber,
	staffing.CategoryDevelopment:       colorGreen,
	staffing.CategoryCorporateServices: colorCyan,
}

func categoryColor(c staffing.Category) lipgloss.Color {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return colorSubtle
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPurple)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHeading)

	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	subtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
	warnStyle   = lipgloss.NewStyle().Foreground(colorAmber)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(colorPurple).
			Padding(0, 1)
)
