package staffing

import (
	"math"
	"sort"
)

// Sum adds up the values of the listed categories.
func Sum(values map[Category]int, order []Category) int {
	total := 0
	for _, c := range order {
		total += values[c]
	}
	return total
}

// ClampToCap rescales values so their total respects limit, preserving the
// proportion between categories. Totals already within limit are returned
// unchanged.
//
// In the default mode every category is rescaled by limit/total and rounded
// up on its own, so the result may overshoot limit by up to len(order)-1.
// With strict set, the rounded-down shares are topped up by largest remainder
// and the total equals limit exactly.
func ClampToCap(values map[Category]int, order []Category, limit int, strict bool) map[Category]int {
	out := make(map[Category]int, len(order))
	total := Sum(values, order)
	if total <= limit || total == 0 {
		for _, c := range order {
			out[c] = values[c]
		}
		return out
	}
	ratio := float64(limit) / float64(total)
	if !strict {
		for _, c := range order {
			out[c] = int(math.Ceil(float64(values[c]) * ratio))
		}
		return out
	}

	type share struct {
		category Category
		whole    int
		fraction float64
	}
	shares := make([]share, 0, len(order))
	assigned := 0
	for _, c := range order {
		exact := float64(values[c]) * ratio
		whole := int(math.Floor(exact))
		shares = append(shares, share{category: c, whole: whole, fraction: exact - float64(whole)})
		assigned += whole
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].fraction > shares[j].fraction
	})
	for i := 0; assigned < limit && i < len(shares); i++ {
		shares[i].whole++
		assigned++
	}
	for _, s := range shares {
		out[s.category] = s.whole
	}
	return out
}
