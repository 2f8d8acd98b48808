package staffing

// PhaseSummary condenses the sample points that fall inside one phase.
type PhaseSummary struct {
	Phase     PhaseDefinition
	Samples   int
	PeakTotal int
	PeakMonth int
	Clamped   int
	Cap       int
	Capped    bool
}

// Summaries returns one PhaseSummary per timeline phase, in order.
func (p Projection) Summaries() []PhaseSummary {
	out := make([]PhaseSummary, 0, len(p.Timeline))
	for _, phase := range p.Timeline {
		s := PhaseSummary{Phase: phase}
		s.Cap, s.Capped = p.Thresholds.CapFor(phase.Name)
		for _, pt := range p.Points {
			if pt.Phase != phase.Name {
				continue
			}
			if s.Samples == 0 || pt.Total > s.PeakTotal {
				s.PeakTotal = pt.Total
				s.PeakMonth = pt.Month
			}
			s.Samples++
			if pt.Clamped {
				s.Clamped++
			}
		}
		out = append(out, s)
	}
	return out
}

// At returns the sample taken at month.
func (p Projection) At(month int) (SamplePoint, bool) {
	for _, pt := range p.Points {
		if pt.Month == month {
			return pt, true
		}
	}
	return SamplePoint{}, false
}

// Peak returns the first sample where category reaches its maximum.
func (p Projection) Peak(category Category) (SamplePoint, bool) {
	var best SamplePoint
	found := false
	for _, pt := range p.Points {
		if !found || pt.Values[category] > best.Values[category] {
			best = pt
			found = true
		}
	}
	return best, found
}

// Series extracts one category across all samples.
func (p Projection) Series(category Category) []int {
	out := make([]int, len(p.Points))
	for i, pt := range p.Points {
		out[i] = pt.Values[category]
	}
	return out
}

// Totals extracts the total line across all samples.
func (p Projection) Totals() []int {
	out := make([]int, len(p.Points))
	for i, pt := range p.Points {
		out[i] = pt.Total
	}
	return out
}

// MaxTotal is the largest total in the projection.
func (p Projection) MaxTotal() int {
	peak := 0
	for _, pt := range p.Points {
		peak = max(peak, pt.Total)
	}
	return peak
}
