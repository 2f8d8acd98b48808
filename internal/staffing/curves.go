package staffing

// Curve tables for the staffing model. Detailed-variant specialists split the
// classic specialist curve by phase share so the three skills sum to the
// classic figure at equal complexity.

var (
	deliveryComplexity = Piecewise{{3, 3}, {6, 4}, {8, 5}, {open, 6}}
	deliveryScale      = Piecewise{{3, 2}, {6, 3}, {8, 4}, {open, 5}}
	interimScale       = Piecewise{{5, 0.8}, {open, 1}}
)

var specialistCurves = map[PhaseName]Curve{
	PhaseFeasibility: {
		Base:       5,
		Complexity: Piecewise{{3, 0.5}, {7, 0.8}, {open, 1}},
		Scale:      Piecewise{{open, 0.2}},
	},
	PhaseInterimVehicle: {
		Base:       10,
		Complexity: Piecewise{{4, 1.2}, {8, 1.5}, {open, 1.8}},
		Scale:      interimScale,
	},
	PhaseDelivery: {
		Complexity: deliveryComplexity,
		Scale:      deliveryScale,
	},
	PhaseWindDown: {
		Complexity: deliveryComplexity,
		Scale:      deliveryScale,
		Multiplier: 0.4,
	},
}

var corporateCurves = map[PhaseName]Curve{
	PhaseFeasibility: {
		Base:      2,
		Surcharge: &Surcharge{Above: 7, Amount: 2},
	},
	PhaseInterimVehicle: {
		Base:       4,
		Complexity: Piecewise{{5, 0}, {open, 0.6}},
		Scale:      interimScale,
	},
	PhaseDelivery: {
		Complexity: Piecewise{{5, 0.8}, {open, 1}},
		Scale:      deliveryScale,
	},
	PhaseWindDown: {
		Complexity: Piecewise{{5, 0.8}, {open, 1}},
		Scale:      deliveryScale,
		Multiplier: 0.3,
		Floor:      4,
	},
}

// skillShares splits specialist work per phase. Each row sums to one.
var skillShares = map[PhaseName]map[Category]float64{
	PhaseFeasibility: {
		CategoryPlanning:     0.45,
		CategoryLandAssembly: 0.35,
		CategoryDevelopment:  0.20,
	},
	PhaseInterimVehicle: {
		CategoryPlanning:     0.30,
		CategoryLandAssembly: 0.40,
		CategoryDevelopment:  0.30,
	},
	PhaseDelivery: {
		CategoryPlanning:     0.15,
		CategoryLandAssembly: 0.25,
		CategoryDevelopment:  0.60,
	},
	PhaseWindDown: {
		CategoryPlanning:     0.10,
		CategoryLandAssembly: 0.20,
		CategoryDevelopment:  0.70,
	},
}

var (
	classicCurves  = buildClassicCurves()
	detailedCurves = buildDetailedCurves()
)

func buildClassicCurves() CurveSet {
	set := CurveSet{}
	for phase, c := range specialistCurves {
		set[CurveKey{Category: CategorySpecialistSkills, Phase: phase}] = c
	}
	for phase, c := range corporateCurves {
		set[CurveKey{Category: CategoryCorporateServices, Phase: phase}] = c
	}
	return set
}

func buildDetailedCurves() CurveSet {
	set := CurveSet{}
	for phase, shares := range skillShares {
		for category, share := range shares {
			c := specialistCurves[phase].Weighted(share)
			if phase == PhaseWindDown {
				c.DecayWithPosition = true
			}
			set[CurveKey{Category: category, Phase: phase}] = c
		}
	}
	for phase, c := range corporateCurves {
		if phase == PhaseWindDown {
			c.DecayWithPosition = true
		}
		set[CurveKey{Category: CategoryCorporateServices, Phase: phase}] = c
	}
	return set
}

// CurvesFor returns a copy of the built-in curve set for variant.
func CurvesFor(variant Variant) CurveSet {
	if variant.orDefault() == VariantDetailed {
		return detailedCurves.Clone()
	}
	return classicCurves.Clone()
}
