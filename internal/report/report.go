// Package report renders projections for the command line.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kingrea/devcorp/internal/staffing"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ParseFormat accepts table, json or csv.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("report: unknown format %q (want table, json or csv)", value)
}

// WriteProjection encodes every sample point of p to w.
func WriteProjection(w io.Writer, p staffing.Projection, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, p)
	case FormatCSV:
		return writeCSV(w, p)
	default:
		return writeTable(w, p)
	}
}

type jsonPoint struct {
	Month   int            `json:"month"`
	Year    float64        `json:"year"`
	Phase   string         `json:"phase"`
	Values  map[string]int `json:"values"`
	Total   int            `json:"total"`
	Clamped bool           `json:"clamped,omitempty"`
}

type jsonProjection struct {
	Variant    string                     `json:"variant"`
	Parameters staffing.ProjectParameters `json:"parameters"`
	Thresholds staffing.Thresholds        `json:"thresholds"`
	Categories []string                   `json:"categories"`
	Points     []jsonPoint                `json:"points"`
}

func writeJSON(w io.Writer, p staffing.Projection) error {
	out := jsonProjection{
		Variant:    p.Variant.String(),
		Parameters: p.Parameters,
		Thresholds: p.Thresholds,
		Categories: categoryKeys(p.Categories),
		Points:     make([]jsonPoint, 0, len(p.Points)),
	}
	for _, pt := range p.Points {
		values := make(map[string]int, len(pt.Values))
		for _, c := range p.Categories {
			values[string(c)] = pt.Values[c]
		}
		out.Points = append(out.Points, jsonPoint{
			Month:   pt.Month,
			Year:    pt.Year,
			Phase:   string(pt.Phase),
			Values:  values,
			Total:   pt.Total,
			Clamped: pt.Clamped,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, p staffing.Projection) error {
	cw := csv.NewWriter(w)
	header := append([]string{"month", "year", "phase"}, categoryKeys(p.Categories)...)
	header = append(header, "total", "clamped")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("report: write csv header: %w", err)
	}
	for _, pt := range p.Points {
		row := []string{
			strconv.Itoa(pt.Month),
			strconv.FormatFloat(pt.Year, 'f', 1, 64),
			string(pt.Phase),
		}
		for _, c := range p.Categories {
			row = append(row, strconv.Itoa(pt.Values[c]))
		}
		row = append(row, strconv.Itoa(pt.Total), strconv.FormatBool(pt.Clamped))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flush csv: %w", err)
	}
	return nil
}

func writeTable(w io.Writer, p staffing.Projection) error {
	headers := []string{"Month", "Year", "Phase"}
	for _, c := range p.Categories {
		headers = append(headers, c.Label())
	}
	headers = append(headers, "Total")
	t := &Table{Headers: headers}
	for _, pt := range p.Points {
		row := []string{
			strconv.Itoa(pt.Month),
			strconv.FormatFloat(pt.Year, 'f', 1, 64),
			string(pt.Phase),
		}
		for _, c := range p.Categories {
			row = append(row, strconv.Itoa(pt.Values[c]))
		}
		total := strconv.Itoa(pt.Total)
		if pt.Clamped {
			total += "*"
		}
		row = append(row, total)
		t.Rows = append(t.Rows, row)
	}
	if _, err := io.WriteString(w, t.Render()); err != nil {
		return fmt.Errorf("report: write table: %w", err)
	}
	if _, err := fmt.Fprintf(w, "\n* clamped to phase cap (feasibility %d, interim vehicle %d, delivery %d)\n",
		p.Thresholds.Feasibility, p.Thresholds.InterimVehicle, p.Thresholds.Delivery); err != nil {
		return fmt.Errorf("report: write table footnote: %w", err)
	}
	return nil
}

// WritePhases lists the timeline with caps and peak totals from p.
func WritePhases(w io.Writer, p staffing.Projection) error {
	t := &Table{Headers: []string{"Phase", "Months", "Years", "Cap", "Peak", "Peak Month", "Clamped"}}
	for _, s := range p.Summaries() {
		limit := "-"
		if s.Capped {
			limit = strconv.Itoa(s.Cap)
		}
		t.Rows = append(t.Rows, []string{
			string(s.Phase.Name),
			fmt.Sprintf("%d-%d", s.Phase.StartMonth, s.Phase.EndMonth),
			fmt.Sprintf("%g-%g", s.Phase.StartYear(), s.Phase.EndYear()),
			limit,
			strconv.Itoa(s.PeakTotal),
			strconv.Itoa(s.PeakMonth),
			fmt.Sprintf("%d/%d", s.Clamped, s.Samples),
		})
	}
	if _, err := io.WriteString(w, t.Render()); err != nil {
		return fmt.Errorf("report: write phases: %w", err)
	}
	return nil
}

func categoryKeys(categories []staffing.Category) []string {
	keys := make([]string, len(categories))
	for i, c := range categories {
		keys[i] = string(c)
	}
	return keys
}
