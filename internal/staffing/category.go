package staffing

import "strings"

// Category is a staffing line on the chart.
type Category string

const (
	CategoryPlanning          Category = "planning"
	CategoryLandAssembly      Category = "land_assembly"
	CategoryDevelopment       Category = "development"
	CategorySpecialistSkills  Category = "specialist_skills"
	CategoryCorporateServices Category = "corporate_services"
)

var categoryLabels = map[Category]string{
	CategoryPlanning:          "Planning",
	CategoryLandAssembly:      "Land Assembly",
	CategoryDevelopment:       "Development",
	CategorySpecialistSkills:  "Specialist Skills",
	CategoryCorporateServices: "Corporate Services",
}

// Label returns the human readable name shown in legends and tables.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Specialist reports whether the category is tied directly to delivery work.
func (c Category) Specialist() bool {
	return c != CategoryCorporateServices
}

// Variant selects which set of categories and curves the engine uses.
type Variant string

const (
	// VariantClassic models one unified complexity and two categories.
	VariantClassic Variant = "classic"
	// VariantDetailed splits specialist work into planning, land assembly and
	// development, each with its own complexity.
	VariantDetailed Variant = "detailed"
)

// Variants lists every supported variant in display order.
func Variants() []Variant {
	return []Variant{VariantClassic, VariantDetailed}
}

// ParseVariant accepts a variant name case-insensitively. Empty selects classic.
func ParseVariant(value string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(value))) {
	case "", VariantClassic:
		return VariantClassic, nil
	case VariantDetailed:
		return VariantDetailed, nil
	}
	return "", &ParameterError{Field: "variant", Value: value, Rule: "oneof", Limit: "classic detailed"}
}

func (v Variant) orDefault() Variant {
	if v == "" {
		return VariantClassic
	}
	return v
}

// Specialists returns the specialist categories for the variant.
func (v Variant) Specialists() []Category {
	if v.orDefault() == VariantDetailed {
		return []Category{CategoryPlanning, CategoryLandAssembly, CategoryDevelopment}
	}
	return []Category{CategorySpecialistSkills}
}

// Categories returns every category the variant emits, specialists first.
func (v Variant) Categories() []Category {
	return append(v.Specialists(), CategoryCorporateServices)
}

// Next cycles to the following variant.
func (v Variant) Next() Variant {
	all := Variants()
	for i, candidate := range all {
		if candidate == v.orDefault() {
			return all[(i+1)%len(all)]
		}
	}
	return VariantClassic
}

func (v Variant) String() string {
	return string(v.orDefault())
}

// Title is the display form of the variant.
func (v Variant) Title() string {
	switch v.orDefault() {
	case VariantDetailed:
		return "Detailed (per skill)"
	default:
		return "Classic (unified complexity)"
	}
}
