package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/devcorp/internal/logbook"
	"github.com/kingrea/devcorp/internal/staffing"
)

// renderPhaseCards shows one card per phase with its window, cap and peak.
func renderPhaseCards(p staffing.Projection, width int) string {
	summaries := p.Summaries()
	if len(summaries) == 0 {
		return ""
	}
	cardW := max(18, width/len(summaries)-1)
	cards := make([]string, 0, len(summaries))
	for _, s := range summaries {
		limit := "No cap (decaying)"
		if s.Capped {
			limit = fmt.Sprintf("Cap %d staff", s.Cap)
		}
		peak := fmt.Sprintf("Peak %d at yr %g", s.PeakTotal, float64(s.PeakMonth)/12)
		if s.Clamped > 0 {
			peak += warnStyle.Render(" (capped)")
		}
		lines := []string{
			titleStyle.Render(string(s.Phase.Name)),
			subtleStyle.Render(fmt.Sprintf("Months %d-%d", s.Phase.StartMonth, s.Phase.EndMonth)),
			subtleStyle.Render(fmt.Sprintf("(%g-%g years)", s.Phase.StartYear(), s.Phase.EndYear())),
			limit,
			peak,
		}
		cards = append(cards, cardStyle.Width(cardW).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// renderAbout explains the model using the live caps.
func renderAbout(p staffing.Projection, width int) string {
	th := p.Thresholds
	bullets := []string{
		fmt.Sprintf("Feasibility phase maintains lean teams (≤%d staff)", th.Feasibility),
		fmt.Sprintf("Interim vehicle grows toward %d staff based on complexity/scale", th.InterimVehicle),
		fmt.Sprintf("Delivery phase is held at or below %d staff", th.Delivery),
		"Smooth transitions between phases prevent abrupt staffing changes",
		"Wind down maintains core capabilities while reducing staff",
		"Corporate services follow the average specialist complexity",
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("About This Model"))
	b.WriteString("\n")
	for _, line := range bullets {
		b.WriteString(titleStyle.Render("• "))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return panelStyle.Width(max(30, width)).Render(strings.TrimRight(b.String(), "\n"))
}

// renderLogPanel shows the most recent logbook entries.
func renderLogPanel(entries []logbook.Entry, width int) string {
	head := headingStyle.Render("Activity")
	if len(entries) == 0 {
		body := mutedStyle.Render("No activity yet.")
		return panelStyle.Width(max(30, width)).Render(head + "\n" + body)
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		style := subtleStyle
		switch e.Level {
		case logbook.LevelWarn:
			style = warnStyle
		case logbook.LevelError:
			style = errorStyle
		}
		stamp := ""
		if !e.Time.IsZero() {
			stamp = e.Time.Local().Format("15:04:05") + " "
		}
		lines = append(lines, mutedStyle.Render(stamp)+style.Render(e.Message))
	}
	return panelStyle.Width(max(30, width)).Render(head + "\n" + strings.Join(lines, "\n"))
}
