package scoring

import (
	"math"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
)

// BiteLabel maps a 0-100 score onto the display tiers shared by fish and bait.
func BiteLabel(score float64) string {
	switch {
	case score >= 80:
		return domain.BiteHot
	case score >= 50:
		return domain.BiteDecent
	case score >= 20:
		return domain.BiteSlow
	default:
		return domain.BiteUnlikely
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round rounds to the given number of decimals and never returns negative zero.
func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}

func round1(v float64) float64 { return round(v, 1) }
