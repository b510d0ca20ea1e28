package scoring

import (
	"time"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
)

// predatorPenalty returns the most severe decayed predator penalty in the
// zone. Sightings do not stack: two predators at once cost the same as the
// worse of the two. The penalty fades linearly to zero at the horizon.
func predatorPenalty(zone string, magnitude float64, now time.Time, w domain.EventWindow, t profile.PredatorTunables) float64 {
	var worst float64
	for _, ev := range w.Events {
		if ev.Kind != domain.EventPredatorSighting || ev.Zone != zone {
			continue
		}
		age := ev.AgeHours(now)
		if age < 0 || age >= t.HorizonHours {
			continue
		}
		if p := -magnitude * (1 - age/t.HorizonHours); p < worst {
			worst = p
		}
	}
	return worst
}
