package scoring

import (
	"strings"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
)

// factorBounds is the allowed contribution range of one environmental factor.
type factorBounds struct{ min, max float64 }

// Full-analytics factor ranges. Downside is deliberately larger than upside
// because the seasonal baseline already carries most of the upside.
var (
	temperatureBounds = factorBounds{-10, 5}
	tideBounds        = factorBounds{-8, 3}
	windBounds        = factorBounds{-5, 2}
	timeOfDayBounds   = factorBounds{-4, 2}
	pressureBounds    = factorBounds{-3, 1}
	fullEnvBounds     = factorBounds{-30, 10}

	conditionBounds = factorBounds{-10, 10}
	structureBounds = factorBounds{-10, 10}
)

// Snapshot field names reported in missing-field warnings.
const (
	fieldWaterTemp = "water_temp_f"
	fieldTideStage = "tide_stage"
	fieldWindSpeed = "wind_speed_mph"
	fieldTimeOfDay = "time_of_day"
	fieldPressure  = "pressure_trend"
	fieldClarity   = "water_clarity"
	fieldCurrent   = "current_speed_mph"
)

// envResult is the environmental adjustment for one species and snapshot.
type envResult struct {
	total    float64
	factors  domain.Factors
	warnings []domain.MissingSnapshotFieldWarning
}

func (r *envResult) missing(field string) {
	r.warnings = append(r.warnings, domain.MissingSnapshotFieldWarning{Field: field})
}

// rangeFactor scores a reading against an ideal range. Inside the range the
// contribution peaks at max on the midpoint and falls to zero at the edges;
// outside it falls linearly and reaches min at falloff beyond the edge.
func rangeFactor(v float64, ideal profile.Range, falloff float64, b factorBounds) float64 {
	if ideal.Contains(v) {
		hw := ideal.HalfWidth()
		if hw == 0 {
			return b.max
		}
		dist := v - ideal.Mid()
		if dist < 0 {
			dist = -dist
		}
		return b.max * (1 - dist/hw)
	}
	return clamp(b.min*ideal.Distance(v)/falloff, b.min, 0)
}

func tableFactor(table map[string]float64, key string, b factorBounds) float64 {
	return clamp(table[normalizeCategory(key)], b.min, b.max)
}

func normalizeCategory(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func normalizeDirection(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

func windFactor(p profile.SpeciesProfile, w domain.Wind) float64 {
	speed := *w.SpeedMPH
	f := rangeFactor(speed, p.WindSpeed, p.WindFalloff, windBounds)
	if speed > p.WindSpeed.Max {
		dir := normalizeDirection(w.Direction)
		for _, d := range p.UnfavorableWinds {
			if d == dir {
				f += p.WindDirectionPenalty
				break
			}
		}
	}
	return clamp(f, windBounds.min, windBounds.max)
}

// fullEnvironment sums the five independent factors of a full-analytics
// profile. Missing readings contribute zero and are reported.
func fullEnvironment(p profile.SpeciesProfile, s domain.Snapshot) envResult {
	var r envResult
	f := &r.factors

	if s.WaterTempF != nil {
		f.Temperature = rangeFactor(*s.WaterTempF, p.WaterTemp, p.WaterTempFalloff, temperatureBounds)
	} else {
		r.missing(fieldWaterTemp)
	}
	if s.TideStage != "" {
		f.Tide = tableFactor(p.Tide, s.TideStage, tideBounds)
	} else {
		r.missing(fieldTideStage)
	}
	if s.WindSpeedMPH != nil {
		f.Wind = windFactor(p, s.Wind())
	} else {
		r.missing(fieldWindSpeed)
	}
	if s.TimeOfDay != "" {
		f.TimeOfDay = tableFactor(p.TimeOfDay, s.TimeOfDay, timeOfDayBounds)
	} else {
		r.missing(fieldTimeOfDay)
	}
	if s.Pressure != "" {
		f.Pressure = tableFactor(p.Pressure, s.Pressure, pressureBounds)
	} else {
		r.missing(fieldPressure)
	}

	sum := f.Temperature + f.Tide + f.Wind + f.TimeOfDay + f.Pressure
	r.total = clamp(sum, fullEnvBounds.min, fullEnvBounds.max)
	return r
}

// simplifiedEnvironment scores a simplified profile as one combined condition
// match plus the species' affinity for the zone's structure.
func simplifiedEnvironment(p profile.SpeciesProfile, s domain.Snapshot, z profile.ZoneGeometry) envResult {
	var r envResult
	f := &r.factors

	var cond float64
	if len(p.Tide) > 0 {
		if s.TideStage != "" {
			cond += p.Tide[normalizeCategory(s.TideStage)]
		} else {
			r.missing(fieldTideStage)
		}
	}
	if len(p.TimeOfDay) > 0 {
		if s.TimeOfDay != "" {
			cond += p.TimeOfDay[normalizeCategory(s.TimeOfDay)]
		} else {
			r.missing(fieldTimeOfDay)
		}
	}
	f.Condition = clamp(cond, conditionBounds.min, conditionBounds.max)

	var structure float64
	for _, kind := range z.Structure {
		// a dark green light attracts nothing
		if kind == profile.StructGreenLight && s.LightsOn != nil && !*s.LightsOn {
			continue
		}
		structure += p.Structure[kind]
	}
	f.Structure = clamp(structure, structureBounds.min, structureBounds.max)

	r.total = f.Condition + f.Structure
	return r
}
