package staffing

// PhaseName identifies one of the sequential project phases.
type PhaseName string

const (
	PhaseFeasibility    PhaseName = "Feasibility"
	PhaseInterimVehicle PhaseName = "Interim Vehicle"
	PhaseDelivery       PhaseName = "Delivery"
	PhaseWindDown       PhaseName = "Wind Down"
)

// HorizonMonths is the last month covered by the default timeline.
const HorizonMonths = 300

// PhaseDefinition is the half-open month window [StartMonth, EndMonth) a phase
// occupies. The final phase also owns its EndMonth.
type PhaseDefinition struct {
	Name       PhaseName `json:"name" yaml:"name"`
	StartMonth int       `json:"startMonth" yaml:"start_month"`
	EndMonth   int       `json:"endMonth" yaml:"end_month"`
}

// Contains reports whether month falls inside [StartMonth, EndMonth).
func (p PhaseDefinition) Contains(month int) bool {
	return month >= p.StartMonth && month < p.EndMonth
}

// Months returns the nominal length of the phase.
func (p PhaseDefinition) Months() int {
	return p.EndMonth - p.StartMonth
}

// StartYear and EndYear express the window in years for display.
func (p PhaseDefinition) StartYear() float64 { return float64(p.StartMonth) / 12 }
func (p PhaseDefinition) EndYear() float64   { return float64(p.EndMonth) / 12 }

// Position returns how far month has advanced through the phase, in [0,1].
func (p PhaseDefinition) Position(month int) float64 {
	span := p.Months()
	if span <= 0 {
		return 0
	}
	pos := float64(month-p.StartMonth) / float64(span)
	switch {
	case pos < 0:
		return 0
	case pos > 1:
		return 1
	}
	return pos
}

// Timeline is the ordered, contiguous sequence of phases.
type Timeline []PhaseDefinition

// DefaultTimeline returns the fixed 25-year development timeline.
func DefaultTimeline() Timeline {
	return Timeline{
		{Name: PhaseFeasibility, StartMonth: 0, EndMonth: 18},
		{Name: PhaseInterimVehicle, StartMonth: 18, EndMonth: 36},
		{Name: PhaseDelivery, StartMonth: 36, EndMonth: 240},
		{Name: PhaseWindDown, StartMonth: 240, EndMonth: HorizonMonths},
	}
}

// Resolve returns the phase active at month. Months before the first phase
// resolve to it; anything at or past the last phase's start resolves to the
// last phase even beyond its nominal end.
func (t Timeline) Resolve(month int) PhaseDefinition {
	if len(t) == 0 {
		return PhaseDefinition{}
	}
	last := t[len(t)-1]
	if month >= last.StartMonth {
		return last
	}
	for _, phase := range t {
		if phase.Contains(month) {
			return phase
		}
	}
	return t[0]
}

// Phase looks up a phase definition by name.
func (t Timeline) Phase(name PhaseName) (PhaseDefinition, bool) {
	for _, phase := range t {
		if phase.Name == name {
			return phase, true
		}
	}
	return PhaseDefinition{}, false
}

// ProgressFactor is the dampener applied uniformly to every category's base
// value to smooth staffing across phase boundaries.
func ProgressFactor(variant Variant, phase PhaseName, position float64) float64 {
	switch phase {
	case PhaseFeasibility:
		if variant == VariantDetailed {
			return 0.85 + 0.15*position
		}
		return 1
	case PhaseInterimVehicle:
		return 0.7 + 0.3*position
	case PhaseDelivery:
		switch {
		case position < 0.2:
			return 0.8 + position*5*0.2
		case position < 0.75:
			return 1
		default:
			return 1 - (position-0.75)*0.6
		}
	}
	// Wind Down decays inside the curve itself.
	return 1
}
