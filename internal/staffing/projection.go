package staffing

import "math"

// DefaultStepMonths is the sampling interval of the projection.
const DefaultStepMonths = 6

// Options tune how a projection is sampled and clamped.
type Options struct {
	// StepMonths is the sampling interval; zero selects DefaultStepMonths.
	StepMonths int
	// StrictCaps clamps totals to exactly the cap instead of rounding each
	// category up independently.
	StrictCaps bool
	// Curves replaces the built-in curve set for the variant.
	Curves CurveSet
}

func (o Options) withDefaults() Options {
	if o.StepMonths <= 0 {
		o.StepMonths = DefaultStepMonths
	}
	return o
}

// SamplePoint is the staffing snapshot at one month.
type SamplePoint struct {
	Month    int              `json:"month"`
	Year     float64          `json:"year"`
	Phase    PhaseName        `json:"phase"`
	Progress float64          `json:"progress"`
	Values   map[Category]int `json:"values"`
	Total    int              `json:"total"`
	Clamped  bool             `json:"clamped"`
}

// Value returns the headcount for category at this point.
func (s SamplePoint) Value(category Category) int {
	return s.Values[category]
}

// Projection is the ordered output of Project.
type Projection struct {
	Variant    Variant           `json:"variant"`
	Categories []Category        `json:"categories"`
	Parameters ProjectParameters `json:"parameters"`
	Thresholds Thresholds        `json:"thresholds"`
	Timeline   Timeline          `json:"timeline"`
	Points     []SamplePoint     `json:"points"`
}

// Project computes the staffing time series from month 0 to HorizonMonths.
// It is pure: the same inputs always give the same output. Inputs are assumed
// valid; run Validate and Thresholds.Validate at the boundary.
func Project(params ProjectParameters, thresholds Thresholds, opts Options) Projection {
	opts = opts.withDefaults()
	params.Variant = params.Variant.orDefault()
	curves := opts.Curves
	if curves == nil {
		curves = builtinCurves(params.Variant)
	}
	timeline := DefaultTimeline()
	categories := params.Variant.Categories()

	months := SampleMonths(opts.StepMonths)
	points := make([]SamplePoint, 0, len(months))
	for _, month := range months {
		phase := timeline.Resolve(month)
		position := phase.Position(month)
		progress := ProgressFactor(params.Variant, phase.Name, position)

		values := BaseStaffing(curves, params, phase.Name, progress, position)
		clamped := false
		if limit, ok := thresholds.CapFor(phase.Name); ok && Sum(values, categories) > limit {
			values = ClampToCap(values, categories, limit, opts.StrictCaps)
			clamped = true
		}
		points = append(points, SamplePoint{
			Month:    month,
			Year:     float64(month) / 12,
			Phase:    phase.Name,
			Progress: progress,
			Values:   values,
			Total:    Sum(values, categories),
			Clamped:  clamped,
		})
	}

	return Projection{
		Variant:    params.Variant,
		Categories: categories,
		Parameters: params,
		Thresholds: thresholds,
		Timeline:   timeline,
		Points:     points,
	}
}

// SampleMonths lists the months sampled at step from 0 to HorizonMonths. The
// horizon is always the last sample, even when step does not divide it.
func SampleMonths(step int) []int {
	if step <= 0 {
		step = DefaultStepMonths
	}
	months := make([]int, 0, HorizonMonths/step+2)
	for month := 0; month <= HorizonMonths; month += step {
		months = append(months, month)
	}
	if months[len(months)-1] != HorizonMonths {
		months = append(months, HorizonMonths)
	}
	return months
}

// BaseStaffing evaluates every category's curve for phase and rounds the
// dampened result up to whole people.
func BaseStaffing(curves CurveSet, params ProjectParameters, phase PhaseName, progress, position float64) map[Category]int {
	categories := params.Variant.Categories()
	values := make(map[Category]int, len(categories))
	scale := float64(params.Scale)
	for _, category := range categories {
		c, ok := curves.Curve(category, phase)
		if !ok {
			values[category] = 0
			continue
		}
		raw := c.Evaluate(params.ComplexityFor(category), scale, position)
		values[category] = max(0, int(math.Ceil(raw*progress)))
	}
	return values
}

func builtinCurves(variant Variant) CurveSet {
	if variant == VariantDetailed {
		return detailedCurves
	}
	return classicCurves
}
