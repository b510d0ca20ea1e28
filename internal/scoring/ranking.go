package scoring

import (
	"sort"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
)

// RankZones orders zones by descending score with ties broken by ascending
// zone id. The input slice is not modified.
func RankZones(scores []domain.ZoneScore) []domain.ZoneScore {
	out := make([]domain.ZoneScore, len(scores))
	copy(out, scores)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Zone < out[j].Zone
	})
	return out
}

// ApplyColdFront returns scores with each zone's cold-front adjustment added
// while a strong cold front is active. Other states return a plain copy.
// Zones missing from the site are left unadjusted.
func ApplyColdFront(scores []domain.ZoneScore, site profile.Site, state domain.ColdFront) []domain.ZoneScore {
	out := make([]domain.ZoneScore, len(scores))
	copy(out, scores)
	if state != domain.ColdFrontStrong {
		return out
	}
	adjust := make(map[string]float64, len(site.Zones))
	for _, z := range site.Zones {
		adjust[z.ID] = z.ColdFrontAdjustment
	}
	for i := range out {
		out[i].Score = round1(clamp(out[i].Score+adjust[out[i].Zone], 0, 100))
	}
	return out
}
