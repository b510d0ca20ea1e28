package scoring

import (
	"math"
	"time"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
)

// baitResult holds the multiplicative terms of a bait score.
type baitResult struct {
	factors  domain.BaitFactors
	score    float64
	warnings []domain.MissingSnapshotFieldWarning
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// preferenceMatch scores one observed value against a preference set.
func preferenceMatch(p profile.Preference, v string, t profile.BaitTunables) float64 {
	switch {
	case contains(p.Preferred, v):
		return t.PreferredMatch
	case contains(p.Avoided, v):
		return t.AvoidedMatch
	default:
		return 1
	}
}

func (r *baitResult) missing(field string) {
	r.warnings = append(r.warnings, domain.MissingSnapshotFieldWarning{Field: field})
}

// envMatch is the weighted mean of the per-factor matches. Missing readings
// and values in neither set are neutral.
func (r *baitResult) envMatch(b *profile.BaitPreferences, s domain.Snapshot, z profile.ZoneGeometry, t profile.BaitTunables) float64 {
	type term struct {
		weight float64
		pref   profile.Preference
		value  string
		field  string
	}
	var current string
	if s.CurrentMPH != nil {
		current = profile.CurrentStrength(*s.CurrentMPH)
	}
	clarity := normalizeCategory(s.Clarity)
	if clarity == "" && len(b.Clarity.Preferred)+len(b.Clarity.Avoided) > 0 {
		if s.WindSpeedMPH != nil {
			clarity = estimateClarity(*s.WindSpeedMPH, s.CurrentMPH)
		}
		r.missing(fieldClarity)
	}
	terms := []term{
		{b.Weights.TideMovement, b.Tide, normalizeCategory(s.TideStage), fieldTideStage},
		{b.Weights.Current, b.Current, current, fieldCurrent},
		{b.Weights.Clarity, b.Clarity, clarity, ""},
		{b.Weights.TimeOfDay, b.TimeOfDay, normalizeCategory(s.TimeOfDay), fieldTimeOfDay},
	}

	var sum, weights float64
	for _, tm := range terms {
		weights += tm.weight
		if len(tm.pref.Preferred)+len(tm.pref.Avoided) == 0 {
			sum += tm.weight
			continue
		}
		if tm.value == "" {
			if tm.field != "" {
				r.missing(tm.field)
			}
			sum += tm.weight
			continue
		}
		sum += tm.weight * preferenceMatch(tm.pref, tm.value, t)
	}

	zoneMatch := preferenceMatch(b.Zones, z.ID, t)
	if b.LightAttracted && z.Lights && litAfterDark(s) {
		zoneMatch = math.Max(zoneMatch, t.LightMatch)
	}
	sum += b.Weights.Zone * zoneMatch
	weights += b.Weights.Zone

	if weights == 0 {
		return 1
	}
	return sum / weights
}

// estimateClarity stands in for a missing clarity reading. Wind and tidal
// flow both stir up the bottom; the tide rate in ft/hr is taken as twice the
// current speed, or 0.5 when the current is unknown.
func estimateClarity(windMPH float64, currentMPH *float64) string {
	tideRate := 0.5
	if currentMPH != nil {
		tideRate = math.Abs(*currentMPH) * 2
	}

	score := 10
	switch {
	case windMPH > 15:
		score -= 4
	case windMPH > 10:
		score -= 2
	case windMPH > 5:
		score--
	}
	switch {
	case tideRate > 1.5:
		score -= 3
	case tideRate > 0.8:
		score--
	}

	switch {
	case score >= 7:
		return domain.ClarityClear
	case score >= 4:
		return domain.ClaritySlightlyStained
	default:
		return domain.ClarityMuddy
	}
}

// litAfterDark reports whether the dock lights are known to be on after dark.
func litAfterDark(s domain.Snapshot) bool {
	tod := normalizeCategory(s.TimeOfDay)
	return s.LightsOn != nil && *s.LightsOn && (tod == domain.TimeEvening || tod == domain.TimeNight)
}

// windMultiplier drops linearly once the wind passes the threshold. Wind makes
// bait harder to catch, not less present.
func windMultiplier(speed *float64, t profile.BaitTunables) float64 {
	if speed == nil || *speed <= t.WindThresholdMPH {
		return 1
	}
	return math.Max(t.WindFloor, 1-(*speed-t.WindThresholdMPH)*t.WindDropPerMPH)
}

// sightingBase weights a bait sighting by how much bait was seen.
func sightingBase(qty int) float64 {
	switch {
	case qty >= 10:
		return 4
	case qty >= 3:
		return 2
	default:
		return 1
	}
}

// sightingMultiplier lifts the score for recent sightings of the same bait in
// the zone, decayed by age and capped.
func sightingMultiplier(bait, zone string, now time.Time, w domain.EventWindow, t profile.BaitTunables) (float64, int) {
	var sum float64
	var n int
	for _, ev := range w.Events {
		if ev.Kind != domain.EventBaitSighting || profile.NormalizeKey(ev.Subject) != bait || ev.Zone != zone {
			continue
		}
		age := ev.AgeHours(now)
		if !inHorizon(age, t.SightingHorizonHours) {
			continue
		}
		sum += sightingBase(ev.Quantity) * math.Pow(t.SightingDecayPerHour, age)
		n++
	}
	return 1 + math.Min(t.SightingCap, sum)/t.SightingScale, n
}

// scoreBait multiplies the seasonal baseline by the environment match, wind,
// and recent sighting terms. Bait scores are multiplicative while fish scores
// are additive; both share the 0-100 scale and labels.
func scoreBait(p profile.SpeciesProfile, baseline float64, s domain.Snapshot, z profile.ZoneGeometry, now time.Time, w domain.EventWindow, t profile.BaitTunables) baitResult {
	var res baitResult
	env := res.envMatch(p.Bait, s, z, t)
	if s.WindSpeedMPH == nil {
		res.missing(fieldWindSpeed)
	}
	wind := windMultiplier(s.WindSpeedMPH, t)
	sighting, n := sightingMultiplier(p.Key, z.ID, now, w, t)

	res.score = clamp(baseline*env*wind*sighting, 0, 100)
	res.factors = domain.BaitFactors{
		EnvMatch:           round(env, 3),
		WindMultiplier:     round(wind, 3),
		SightingMultiplier: round(sighting, 3),
		RecentSightings:    n,
	}
	return res
}
