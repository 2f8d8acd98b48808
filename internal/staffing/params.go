package staffing

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Level bounds shared by complexity and scale inputs.
const (
	MinLevel     = 1
	MaxLevel     = 10
	DefaultLevel = 5
)

// ThresholdBounds is the inclusive range a phase cap may take.
type ThresholdBounds struct {
	Min int
	Max int
}

var thresholdBounds = map[PhaseName]ThresholdBounds{
	PhaseFeasibility:    {Min: 5, Max: 50},
	PhaseInterimVehicle: {Min: 10, Max: 100},
	PhaseDelivery:       {Min: 20, Max: 200},
}

// BoundsFor returns the editable range of a phase cap. Wind Down has none.
func BoundsFor(phase PhaseName) (ThresholdBounds, bool) {
	b, ok := thresholdBounds[phase]
	return b, ok
}

// CappedPhases lists the phases that carry an editable threshold, in order.
func CappedPhases() []PhaseName {
	return []PhaseName{PhaseFeasibility, PhaseInterimVehicle, PhaseDelivery}
}

// ProjectParameters are the user-controlled model inputs.
type ProjectParameters struct {
	Variant    Variant `json:"variant" validate:"omitempty,oneof=classic detailed"`
	Scale      int     `json:"scale" validate:"min=1,max=10"`
	Complexity int     `json:"complexity" validate:"min=1,max=10"`
	// ComplexityBySkill overrides Complexity per specialist skill in the
	// detailed variant. Missing skills fall back to Complexity.
	ComplexityBySkill map[Category]int `json:"complexityBySkill,omitempty" validate:"omitempty,dive,keys,oneof=planning land_assembly development,endkeys,min=1,max=10"`
}

// DefaultParameters returns the dashboard's starting position.
func DefaultParameters() ProjectParameters {
	return ProjectParameters{
		Variant:    VariantClassic,
		Scale:      DefaultLevel,
		Complexity: DefaultLevel,
	}
}

// ComplexityFor returns the complexity driving category. Corporate services
// follow the average complexity of the variant's specialist skills.
func (p ProjectParameters) ComplexityFor(category Category) float64 {
	if category == CategoryCorporateServices {
		return p.AverageSpecialistComplexity()
	}
	if v, ok := p.ComplexityBySkill[category]; ok {
		return float64(v)
	}
	return float64(p.Complexity)
}

// AverageSpecialistComplexity is the mean complexity across specialist skills.
func (p ProjectParameters) AverageSpecialistComplexity() float64 {
	skills := p.Variant.Specialists()
	var sum float64
	for _, skill := range skills {
		sum += p.ComplexityFor(skill)
	}
	return sum / float64(len(skills))
}

// WithSkill returns a copy with one skill's complexity replaced.
func (p ProjectParameters) WithSkill(category Category, value int) ProjectParameters {
	out := p
	out.ComplexityBySkill = make(map[Category]int, len(p.ComplexityBySkill)+1)
	for k, v := range p.ComplexityBySkill {
		out.ComplexityBySkill[k] = v
	}
	out.ComplexityBySkill[category] = value
	return out
}

// Thresholds are the per-phase staffing caps. Later caps may be lower than
// earlier ones.
type Thresholds struct {
	Feasibility    int `json:"feasibility" validate:"min=5,max=50"`
	InterimVehicle int `json:"interimVehicle" validate:"min=10,max=100"`
	Delivery       int `json:"delivery" validate:"min=20,max=200"`
}

// DefaultThresholds returns the 15/35/90 starting caps.
func DefaultThresholds() Thresholds {
	return Thresholds{Feasibility: 15, InterimVehicle: 35, Delivery: 90}
}

// CapFor returns the cap for phase. Wind Down is never capped.
func (t Thresholds) CapFor(phase PhaseName) (int, bool) {
	switch phase {
	case PhaseFeasibility:
		return t.Feasibility, true
	case PhaseInterimVehicle:
		return t.InterimVehicle, true
	case PhaseDelivery:
		return t.Delivery, true
	}
	return 0, false
}

// With returns a copy with the cap for phase replaced and validated. The
// receiver is left untouched when the new value is rejected.
func (t Thresholds) With(phase PhaseName, value int) (Thresholds, error) {
	out := t
	switch phase {
	case PhaseFeasibility:
		out.Feasibility = value
	case PhaseInterimVehicle:
		out.InterimVehicle = value
	case PhaseDelivery:
		out.Delivery = value
	default:
		return t, &ParameterError{Field: "threshold", Value: phase, Rule: "oneof", Limit: "Feasibility, Interim Vehicle, Delivery"}
	}
	if err := out.Validate(); err != nil {
		return t, err
	}
	return out, nil
}

// Validate checks every cap against its documented range.
func (t Thresholds) Validate() error {
	return validateStruct(t)
}

// Validate checks params against the documented input ranges.
func Validate(params ProjectParameters) error {
	return validateStruct(params)
}

// ClampLevel pulls a slider value back into [MinLevel, MaxLevel].
func ClampLevel(v int) int {
	return min(MaxLevel, max(MinLevel, v))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &ParameterError{
			Field: fe.Field(),
			Value: fe.Value(),
			Rule:  fe.Tag(),
			Limit: fe.Param(),
		})
	}
	return errors.Join(errs...)
}
