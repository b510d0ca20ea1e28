package scoring

import "math"

// baselineTiers is the ordinal seasonal scale. Presence factors map onto it
// through factor*90.
var baselineTiers = []struct {
	value float64
	label string
}{
	{0, "absent"},
	{20, "poor"},
	{40, "fair"},
	{60, "good"},
	{80, "great"},
	{90, "excellent"},
}

const baselineScale = 90

// Baseline maps a monthly presence factor in [0,1] onto the seasonal scale by
// rounding factor*90 to the nearest tier. Ties go to the lower tier.
func Baseline(factor float64) (float64, string) {
	v := clamp(factor, 0, 1) * baselineScale
	best := baselineTiers[0]
	bestDist := math.Abs(v - best.value)
	for _, t := range baselineTiers[1:] {
		d := math.Abs(v - t.value)
		// strictly closer only, so an exact tie keeps the lower tier
		if d < bestDist-1e-9 {
			best, bestDist = t, d
		}
	}
	return best.value, best.label
}
