package scoring

import (
	"math"
	"time"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
)

// activityResult is the confidence-weighted recent catch bonus.
type activityResult struct {
	bonus   float64
	catches int
}

// inHorizon reports whether an event of the given age counts toward a
// horizon. Future events never count; the horizon edge itself does.
func inHorizon(age, horizon float64) bool {
	return age >= 0 && age <= horizon
}

// recentActivity sums the decayed catches of a species in a zone. Each catch
// is weighted by the confidence of the condition bucket it was logged under,
// falling back to the current bucket when the catch carries no snapshot.
// Catches beyond the horizon are dropped before summation.
func recentActivity(
	species, zone string,
	current domain.Confidence,
	now time.Time,
	w domain.EventWindow,
	t profile.Tunables,
) activityResult {
	var res activityResult
	var sum float64
	for _, ev := range w.Events {
		if ev.Kind != domain.EventCatch || profile.NormalizeKey(ev.Subject) != species || ev.Zone != zone {
			continue
		}
		age := ev.AgeHours(now)
		if !inHorizon(age, t.RecentActivity.HorizonHours) {
			continue
		}
		weight := current.Multiplier
		if ev.Snapshot != nil {
			weight = bucketConfidence(w, species, zone, ev.Snapshot.ConditionBucket(), t.Confidence).Multiplier
		}
		sum += t.RecentActivity.Base * weight * math.Pow(t.RecentActivity.DecayPerHour, age)
		res.catches++
	}
	res.bonus = clamp(sum, 0, t.RecentActivity.Max)
	return res
}
