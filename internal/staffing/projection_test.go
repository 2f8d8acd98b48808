package staffing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func classicParams(complexity, scale int) ProjectParameters {
	return ProjectParameters{Variant: VariantClassic, Scale: scale, Complexity: complexity}
}

func detailedParams(complexity, scale int) ProjectParameters {
	return ProjectParameters{
		Variant:    VariantDetailed,
		Scale:      scale,
		Complexity: complexity,
		ComplexityBySkill: map[Category]int{
			CategoryPlanning:     complexity,
			CategoryLandAssembly: complexity,
			CategoryDevelopment:  complexity,
		},
	}
}

func mustAt(t *testing.T, p Projection, month int) SamplePoint {
	t.Helper()
	pt, ok := p.At(month)
	if !ok {
		t.Fatalf("no sample at month %d", month)
	}
	return pt
}

func TestProjectSamplesWholeHorizon(t *testing.T) {
	p := Project(classicParams(5, 5), DefaultThresholds(), Options{})
	if len(p.Points) != 51 {
		t.Fatalf("len(points) = %d, want 51", len(p.Points))
	}
	for i, pt := range p.Points {
		if pt.Month != i*DefaultStepMonths {
			t.Fatalf("point %d has month %d", i, pt.Month)
		}
		if !approx(pt.Year, float64(pt.Month)/12) {
			t.Fatalf("point %d year = %v", i, pt.Year)
		}
		if pt.Total != Sum(pt.Values, p.Categories) {
			t.Fatalf("point %d total %d does not match values %v", i, pt.Total, pt.Values)
		}
	}
	if p.Points[len(p.Points)-1].Month != HorizonMonths {
		t.Fatalf("last month = %d", p.Points[len(p.Points)-1].Month)
	}
}

func TestProjectCustomStep(t *testing.T) {
	p := Project(classicParams(5, 5), DefaultThresholds(), Options{StepMonths: 12})
	if len(p.Points) != 26 {
		t.Fatalf("len(points) = %d, want 26", len(p.Points))
	}
}

func TestProjectUnevenStepKeepsHorizon(t *testing.T) {
	p := Project(classicParams(5, 5), DefaultThresholds(), Options{StepMonths: 7})
	if len(p.Points) != 44 {
		t.Fatalf("len(points) = %d, want 44", len(p.Points))
	}
	if got := p.Points[len(p.Points)-2].Month; got != 294 {
		t.Fatalf("second to last month = %d, want 294", got)
	}
	last := p.Points[len(p.Points)-1]
	if last.Month != HorizonMonths || last.Phase != PhaseWindDown {
		t.Fatalf("last sample = month %d in %s", last.Month, last.Phase)
	}
	want := Project(classicParams(5, 5), DefaultThresholds(), Options{}).Points[50]
	if diff := cmp.Diff(want, last); diff != "" {
		t.Fatalf("month 300 sample differs from default step (-want +got):\n%s", diff)
	}
}

func TestSampleMonths(t *testing.T) {
	cases := map[int][]int{
		60:  {0, 60, 120, 180, 240, 300},
		120: {0, 120, 240, 300},
		299: {0, 299, 300},
	}
	for step, want := range cases {
		if diff := cmp.Diff(want, SampleMonths(step)); diff != "" {
			t.Fatalf("SampleMonths(%d) (-want +got):\n%s", step, diff)
		}
	}
	if got := len(SampleMonths(0)); got != 51 {
		t.Fatalf("zero step should use the default, got %d months", got)
	}
}

func TestProjectClassicReference(t *testing.T) {
	p := Project(classicParams(5, 5), DefaultThresholds(), Options{})
	cases := []struct {
		month      int
		phase      PhaseName
		specialist int
		corporate  int
	}{
		{0, PhaseFeasibility, 10, 2},
		{18, PhaseInterimVehicle, 15, 6},
		{30, PhaseInterimVehicle, 19, 8},
		{48, PhaseDelivery, 25, 14},
		{138, PhaseDelivery, 29, 16},
		{234, PhaseDelivery, 26, 14},
		{300, PhaseWindDown, 12, 5},
	}
	for _, tc := range cases {
		pt := mustAt(t, p, tc.month)
		if pt.Phase != tc.phase {
			t.Fatalf("month %d phase = %s, want %s", tc.month, pt.Phase, tc.phase)
		}
		want := map[Category]int{CategorySpecialistSkills: tc.specialist, CategoryCorporateServices: tc.corporate}
		if diff := cmp.Diff(want, pt.Values); diff != "" {
			t.Fatalf("month %d values (-want +got):\n%s", tc.month, diff)
		}
	}
}

func TestProjectExamplesAtDefaultThresholds(t *testing.T) {
	th := DefaultThresholds()
	for _, params := range []ProjectParameters{classicParams(5, 5), detailedParams(5, 5)} {
		p := Project(params, th, Options{})
		tolerance := len(p.Categories) - 1
		if pt := mustAt(t, p, 0); pt.Total > th.Feasibility {
			t.Fatalf("%s month 0 total = %d, want <= %d", params.Variant, pt.Total, th.Feasibility)
		}
		if pt := mustAt(t, p, 48); pt.Total > th.Delivery+tolerance {
			t.Fatalf("%s month 48 total = %d", params.Variant, pt.Total)
		}
		end := mustAt(t, p, HorizonMonths)
		for _, skill := range params.Variant.Specialists() {
			peak := 0
			for _, pt := range p.Points {
				if pt.Phase == PhaseDelivery {
					peak = max(peak, pt.Values[skill])
				}
			}
			if end.Values[skill] >= peak {
				t.Fatalf("%s %s at month 300 = %d, delivery peak %d", params.Variant, skill, end.Values[skill], peak)
			}
		}
	}
}

func TestProjectRespectsCapsWithinTolerance(t *testing.T) {
	thresholds := []Thresholds{
		DefaultThresholds(),
		{Feasibility: 5, InterimVehicle: 10, Delivery: 20},
		{Feasibility: 50, InterimVehicle: 10, Delivery: 200},
	}
	for _, variant := range Variants() {
		for complexity := MinLevel; complexity <= MaxLevel; complexity++ {
			for scale := MinLevel; scale <= MaxLevel; scale++ {
				params := classicParams(complexity, scale)
				if variant == VariantDetailed {
					params = detailedParams(complexity, scale)
				}
				for _, th := range thresholds {
					for _, strict := range []bool{false, true} {
						p := Project(params, th, Options{StrictCaps: strict})
						tolerance := len(p.Categories) - 1
						if strict {
							tolerance = 0
						}
						for _, pt := range p.Points {
							for cat, v := range pt.Values {
								if v < 0 {
									t.Fatalf("%s c=%d s=%d month %d %s = %d", variant, complexity, scale, pt.Month, cat, v)
								}
							}
							limit, capped := th.CapFor(pt.Phase)
							if capped && pt.Total > limit+tolerance {
								t.Fatalf("%s c=%d s=%d strict=%v month %d total %d exceeds %d+%d",
									variant, complexity, scale, strict, pt.Month, pt.Total, limit, tolerance)
							}
						}
					}
				}
			}
		}
	}
}

func TestProjectWindDownNeverIncreases(t *testing.T) {
	for _, params := range []ProjectParameters{classicParams(3, 8), detailedParams(9, 4), detailedParams(5, 5)} {
		p := Project(params, DefaultThresholds(), Options{})
		prev := -1
		for _, pt := range p.Points {
			if pt.Phase != PhaseWindDown {
				continue
			}
			if prev >= 0 && pt.Total > prev {
				t.Fatalf("%s wind down total rose to %d at month %d", params.Variant, pt.Total, pt.Month)
			}
			if pt.Values[CategoryCorporateServices] < 4 {
				t.Fatalf("corporate services fell below floor at month %d: %d", pt.Month, pt.Values[CategoryCorporateServices])
			}
			if pt.Clamped {
				t.Fatalf("wind down must never be clamped (month %d)", pt.Month)
			}
			prev = pt.Total
		}
	}
}

func TestProjectDetailedWindDownConvergesToCorporateFloor(t *testing.T) {
	p := Project(detailedParams(10, 10), DefaultThresholds(), Options{})
	end := mustAt(t, p, HorizonMonths)
	want := map[Category]int{
		CategoryPlanning:          0,
		CategoryLandAssembly:      0,
		CategoryDevelopment:       0,
		CategoryCorporateServices: 4,
	}
	if diff := cmp.Diff(want, end.Values); diff != "" {
		t.Fatalf("month 300 values (-want +got):\n%s", diff)
	}
}

func TestProjectClampsHighComplexity(t *testing.T) {
	p := Project(classicParams(10, 10), DefaultThresholds(), Options{})
	pt := mustAt(t, p, 90)
	if !pt.Clamped {
		t.Fatal("expected delivery sample to be clamped")
	}
	want := map[Category]int{CategorySpecialistSkills: 58, CategoryCorporateServices: 33}
	if diff := cmp.Diff(want, pt.Values); diff != "" {
		t.Fatalf("clamped values (-want +got):\n%s", diff)
	}

	strict := Project(classicParams(10, 10), DefaultThresholds(), Options{StrictCaps: true})
	if got := mustAt(t, strict, 90).Total; got != 90 {
		t.Fatalf("strict delivery total = %d, want 90", got)
	}
}

func TestProjectIsIdempotent(t *testing.T) {
	params := detailedParams(7, 3).WithSkill(CategoryPlanning, 2)
	first := Project(params, DefaultThresholds(), Options{})
	second := Project(params, DefaultThresholds(), Options{})
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("projection not deterministic (-first +second):\n%s", diff)
	}
}

func TestRaisingCapRaisesPhaseMaximum(t *testing.T) {
	params := classicParams(10, 10)
	unclamped := Project(params, Thresholds{Feasibility: 50, InterimVehicle: 100, Delivery: 200}, Options{})
	var unclampedPeak int
	for _, s := range unclamped.Summaries() {
		if s.Phase.Name == PhaseDelivery {
			unclampedPeak = s.PeakTotal
		}
	}
	if unclampedPeak == 0 {
		t.Fatal("missing delivery peak")
	}

	for _, strict := range []bool{false, true} {
		prev := -1
		for limit := 20; limit <= 200; limit++ {
			th := DefaultThresholds()
			th.Delivery = limit
			peak := deliveryPeak(Project(params, th, Options{StrictCaps: strict}))
			if prev >= 0 && peak < prev {
				t.Fatalf("strict=%v cap %d lowered delivery peak to %d from %d", strict, limit, peak, prev)
			}
			if strict && limit < unclampedPeak && prev >= 0 && peak <= prev {
				t.Fatalf("strict cap %d did not raise delivery peak (%d)", limit, peak)
			}
			if limit >= unclampedPeak && peak != unclampedPeak {
				t.Fatalf("strict=%v cap %d above base but peak %d != %d", strict, limit, peak, unclampedPeak)
			}
			prev = peak
		}
	}
}

func deliveryPeak(p Projection) int {
	peak := 0
	for _, pt := range p.Points {
		if pt.Phase == PhaseDelivery {
			peak = max(peak, pt.Total)
		}
	}
	return peak
}

func TestProjectUsesCustomCurves(t *testing.T) {
	curves := CurvesFor(VariantClassic)
	key := CurveKey{Category: CategoryCorporateServices, Phase: PhaseFeasibility}
	c := curves[key]
	c.Base = 0
	c.Surcharge = nil
	curves[key] = c
	p := Project(classicParams(5, 5), DefaultThresholds(), Options{Curves: curves})
	if got := mustAt(t, p, 0).Values[CategoryCorporateServices]; got != 0 {
		t.Fatalf("custom curve ignored: corporate = %d", got)
	}
}

func TestProjectZeroVariantDefaultsToClassic(t *testing.T) {
	p := Project(ProjectParameters{Scale: 5, Complexity: 5}, DefaultThresholds(), Options{})
	if p.Variant != VariantClassic {
		t.Fatalf("variant = %q", p.Variant)
	}
	if diff := cmp.Diff(VariantClassic.Categories(), p.Categories); diff != "" {
		t.Fatalf("categories (-want +got):\n%s", diff)
	}
}
