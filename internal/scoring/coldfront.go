package scoring

import (
	"fmt"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
)

// ClassifyColdFront evaluates the cold north wind classifier for water of the
// given average depth. The states are checked in order: Strong needs a
// northerly wind at or above the speed threshold, a cold air or water
// reading, and shallow water. Moderate is a northerly wind over shallow water
// that misses the Strong thresholds. Missing readings never satisfy a
// threshold.
func ClassifyColdFront(w domain.Wind, temps domain.Temps, depthFt float64, t profile.ColdFrontTunables) domain.ColdFront {
	if !profile.IsNortherly(normalizeDirection(w.Direction)) || depthFt >= t.ShallowDepthFt {
		return domain.ColdFrontNone
	}
	fast := w.SpeedMPH != nil && *w.SpeedMPH >= t.MinWindMPH
	cold := (temps.AirF != nil && *temps.AirF <= t.MaxTempF) ||
		(temps.WaterF != nil && *temps.WaterF <= t.MaxTempF)
	if fast && cold {
		return domain.ColdFrontStrong
	}
	return domain.ColdFrontModerate
}

// depthShift returns how many feet deeper a species holds under a state.
func depthShift(state domain.ColdFront, class profile.DepthClass, t profile.ColdFrontTunables) int {
	switch state {
	case domain.ColdFrontStrong:
		switch class {
		case profile.DepthShallow:
			return t.ShiftShallow
		case profile.DepthMid:
			return t.ShiftMid
		default:
			return t.ShiftDeep
		}
	case domain.ColdFrontModerate:
		if class == profile.DepthShallow {
			return t.ShiftModerate
		}
	}
	return 0
}

// DepthDescription names a depth range for display.
func DepthDescription(r domain.DepthRange) string {
	avg := float64(r.MinFt+r.MaxFt) / 2
	switch {
	case avg <= 2.5:
		return "shallow"
	case avg <= 4.5:
		if r.MinFt < 3 {
			return "shallow-mid"
		}
		return "mid"
	case avg <= 6:
		if r.MaxFt < 6 {
			return "mid"
		}
		return "mid-deep"
	default:
		return "deep"
	}
}

// depthResult is the expected depth and behavior under the current wind.
type depthResult struct {
	state    domain.ColdFront
	depth    domain.DepthRange
	class    string
	behavior string
}

// depthBehavior overrides a species' normal depth and behavior note for the
// cold-front state over the zone. Shifted ranges are capped at the site's
// maximum depth. The numeric score is never touched here.
func depthBehavior(
	p profile.SpeciesProfile,
	w domain.Wind,
	temps domain.Temps,
	z profile.ZoneGeometry,
	maxDepthFt int,
	t profile.ColdFrontTunables,
) depthResult {
	state := ClassifyColdFront(w, temps, z.AverageDepthFt, t)
	res := depthResult{state: state, depth: p.NormalDepth, behavior: p.Behavior}

	shift := depthShift(state, p.DepthClass, t)
	if shift > 0 {
		res.depth = domain.DepthRange{
			MinFt: min(p.NormalDepth.MinFt+shift, maxDepthFt),
			MaxFt: min(p.NormalDepth.MaxFt+shift, maxDepthFt),
		}
		switch state {
		case domain.ColdFrontStrong:
			res.behavior = fmt.Sprintf("Cold north wind has pushed them off the flat, holding deeper at %s", res.depth)
			if z.NorthPilings {
				res.behavior += " tight to the north piling line"
			}
		case domain.ColdFrontModerate:
			res.behavior = fmt.Sprintf("North wind has them holding slightly deeper than normal, around %s", res.depth)
		}
	}
	res.class = DepthDescription(res.depth)
	return res
}
