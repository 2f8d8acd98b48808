package staffing

import "math"

// open marks the unbounded tail segment of a Piecewise curve.
var open = math.Inf(1)

// Segment is one linear piece of a Piecewise curve. It applies Slope to the
// part of the input between the previous segment's Until and its own Until.
type Segment struct {
	Until float64
	Slope float64
}

// Piecewise is an ordered list of segments with ascending Until values. The
// curve starts at zero for an input of zero.
type Piecewise []Segment

// Eval returns the accumulated value of the curve at x.
func (p Piecewise) Eval(x float64) float64 {
	var total, lower float64
	for _, seg := range p {
		if x <= lower {
			break
		}
		upper := math.Min(x, seg.Until)
		total += (upper - lower) * seg.Slope
		lower = seg.Until
	}
	return total
}

// Breakpoints lists the finite segment boundaries.
func (p Piecewise) Breakpoints() []float64 {
	var points []float64
	for _, seg := range p {
		if !math.IsInf(seg.Until, 1) {
			points = append(points, seg.Until)
		}
	}
	return points
}

// Surcharge adds a fixed amount once either driver exceeds Above.
type Surcharge struct {
	Above  float64
	Amount float64
}

// Curve is the staffing shape for one (category, phase) pair.
type Curve struct {
	Base       float64
	Complexity Piecewise
	Scale      Piecewise
	Surcharge  *Surcharge
	// Multiplier scales the summed base; zero is treated as one.
	Multiplier float64
	// Floor is the minimum after Multiplier and decay are applied.
	Floor float64
	// DecayWithPosition multiplies by (1 - position) within the phase.
	DecayWithPosition bool
}

// Evaluate returns the unrounded headcount before the progress factor.
func (c Curve) Evaluate(complexity, scale, position float64) float64 {
	value := c.Base + c.Complexity.Eval(complexity) + c.Scale.Eval(scale)
	if c.Surcharge != nil && (complexity > c.Surcharge.Above || scale > c.Surcharge.Above) {
		value += c.Surcharge.Amount
	}
	if c.Multiplier != 0 {
		value *= c.Multiplier
	}
	if c.DecayWithPosition {
		value *= 1 - position
	}
	return math.Max(value, c.Floor)
}

// Weighted returns a copy whose output is scaled by share.
func (c Curve) Weighted(share float64) Curve {
	out := c
	if out.Multiplier == 0 {
		out.Multiplier = 1
	}
	out.Multiplier *= share
	out.Floor *= share
	return out
}

// CurveKey addresses one curve in a CurveSet.
type CurveKey struct {
	Category Category
	Phase    PhaseName
}

// CurveSet holds the curves for every category and phase of a variant.
type CurveSet map[CurveKey]Curve

// Curve returns the curve for the pair, if present.
func (s CurveSet) Curve(category Category, phase PhaseName) (Curve, bool) {
	c, ok := s[CurveKey{Category: category, Phase: phase}]
	return c, ok
}

// Clone returns an independent copy that callers may tune.
func (s CurveSet) Clone() CurveSet {
	out := make(CurveSet, len(s))
	for key, c := range s {
		out[key] = c
	}
	return out
}
