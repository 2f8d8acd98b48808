package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/devcorp/internal/staffing"
)

const (
	yAxisWidth     = 6
	chartMinimumY  = 100
	chartYStep     = 20
	chartYearTicks = 5
)

type chartSeries struct {
	label  string
	values []int
	color  lipgloss.Color
	glyph  string
}

// seriesFor returns the lines to plot, total first so the categories draw
// over it.
func seriesFor(p staffing.Projection) []chartSeries {
	out := []chartSeries{{label: "Total Staff", values: p.Totals(), color: colorPink, glyph: "·"}}
	for _, c := range p.Categories {
		out = append(out, chartSeries{label: c.Label(), values: p.Series(c), color: categoryColor(c), glyph: "•"})
	}
	return out
}

// chartCeiling keeps a 0-100 axis unless a total exceeds it.
func chartCeiling(peak int) int {
	if peak <= chartMinimumY {
		return chartMinimumY
	}
	return (peak + chartYStep - 1) / chartYStep * chartYStep
}

// interpolate reads the series at a fractional sample index.
func interpolate(values []int, index float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if index <= 0 {
		return float64(values[0])
	}
	lo := int(math.Floor(index))
	if lo >= len(values)-1 {
		return float64(values[len(values)-1])
	}
	frac := index - float64(lo)
	return float64(values[lo]) + (float64(values[lo+1])-float64(values[lo]))*frac
}

// renderChart plots staffing against years. The result is height plot rows
// plus an axis row and a label row.
func renderChart(p staffing.Projection, width, height int) string {
	width = max(width, yAxisWidth+20)
	height = max(height, 6)
	plotW := width - yAxisWidth
	if len(p.Points) == 0 {
		return mutedStyle.Render("no projection")
	}
	horizon := p.Points[len(p.Points)-1].Month
	ceiling := chartCeiling(p.MaxTotal())
	series := seriesFor(p)

	grid := make([][]int, height)
	for r := range grid {
		grid[r] = make([]int, plotW)
		for x := range grid[r] {
			grid[r][x] = -1
		}
	}
	lastIndex := float64(len(p.Points) - 1)
	for si, s := range series {
		for x := 0; x < plotW; x++ {
			index := float64(x) / float64(plotW-1) * lastIndex
			v := interpolate(s.values, index)
			row := int(math.Round(v / float64(ceiling) * float64(height-1)))
			row = max(0, min(height-1, row))
			grid[height-1-row][x] = si
		}
	}

	boundary := map[int]bool{}
	for _, phase := range p.Timeline {
		if phase.StartMonth > 0 && phase.StartMonth < horizon {
			boundary[columnFor(phase.StartMonth, horizon, plotW)] = true
		}
	}

	var b strings.Builder
	for r := 0; r < height; r++ {
		b.WriteString(axisLabel(r, height, ceiling))
		for x := 0; x < plotW; x++ {
			switch si := grid[r][x]; {
			case si >= 0:
				b.WriteString(lipgloss.NewStyle().Foreground(series[si].color).Render(series[si].glyph))
			case boundary[x]:
				b.WriteString(mutedStyle.Render("┊"))
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth-1) + "└" + strings.Repeat("─", plotW) + "\n")
	b.WriteString(strings.Repeat(" ", yAxisWidth) + yearLabels(horizon, plotW))
	return b.String()
}

func axisLabel(row, height, ceiling int) string {
	switch row {
	case 0:
		return fmt.Sprintf("%4d ┤", ceiling)
	case (height - 1) / 2:
		value := float64(ceiling) * float64(height-1-row) / float64(height-1)
		return fmt.Sprintf("%4.0f ┤", value)
	case height - 1:
		return fmt.Sprintf("%4d ┤", 0)
	}
	return "     │"
}

func columnFor(month, horizon, plotW int) int {
	if horizon <= 0 {
		return 0
	}
	return int(math.Round(float64(month) / float64(horizon) * float64(plotW-1)))
}

func yearLabels(horizon, plotW int) string {
	line := []rune(strings.Repeat(" ", plotW))
	years := horizon / 12
	for year := 0; year <= years; year += chartYearTicks {
		label := []rune(fmt.Sprintf("%d", year))
		at := columnFor(year*12, horizon, plotW)
		at = min(at, plotW-len(label))
		for i, r := range label {
			line[at+i] = r
		}
	}
	return strings.TrimRight(string(line), " ") + mutedStyle.Render("  years")
}

// renderLegend lists every plotted series with its colour.
func renderLegend(p staffing.Projection) string {
	parts := make([]string, 0, len(p.Categories)+1)
	for _, s := range seriesFor(p) {
		swatch := lipgloss.NewStyle().Foreground(s.color).Render(strings.Repeat(s.glyph, 3))
		parts = append(parts, swatch+" "+s.label)
	}
	return strings.Join(parts, "   ")
}
