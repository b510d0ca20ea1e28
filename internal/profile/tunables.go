package profile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
)

// Tunables holds the scoring constants that may be overridden from a YAML
// file at process start. Zero-valued sections in the file keep their defaults.
type Tunables struct {
	RecentActivity RecentActivityTunables `yaml:"recent_activity"`
	Predator       PredatorTunables       `yaml:"predator"`
	Confidence     ConfidenceTunables     `yaml:"confidence"`
	ColdFront      ColdFrontTunables      `yaml:"cold_front"`
	Bait           BaitTunables           `yaml:"bait"`
}

// RecentActivityTunables controls the decayed catch bonus.
type RecentActivityTunables struct {
	Base         float64 `yaml:"base"`
	DecayPerHour float64 `yaml:"decay_per_hour"`
	HorizonHours float64 `yaml:"horizon_hours"`
	Max          float64 `yaml:"max"`
}

// PredatorTunables controls the predator sighting penalty. Magnitude is the
// full-scale penalty at age zero, expressed as a positive number.
type PredatorTunables struct {
	Magnitude    float64            `yaml:"magnitude"`
	HorizonHours float64            `yaml:"horizon_hours"`
	Overrides    map[string]float64 `yaml:"overrides"`
}

// ConfidenceTunables controls the sample-size step function.
type ConfidenceTunables struct {
	MediumAt         int     `yaml:"medium_at"`
	HighAt           int     `yaml:"high_at"`
	LowMultiplier    float64 `yaml:"low_multiplier"`
	MediumMultiplier float64 `yaml:"medium_multiplier"`
	HighMultiplier   float64 `yaml:"high_multiplier"`
}

// ColdFrontTunables controls the cold-front classifier and depth shifts.
type ColdFrontTunables struct {
	MinWindMPH     float64 `yaml:"min_wind_mph"`
	MaxTempF       float64 `yaml:"max_temp_f"`
	ShallowDepthFt float64 `yaml:"shallow_depth_ft"`
	ShiftShallow   int     `yaml:"shift_shallow"`
	ShiftMid       int     `yaml:"shift_mid"`
	ShiftDeep      int     `yaml:"shift_deep"`
	ShiftModerate  int     `yaml:"shift_moderate"`
}

// BaitTunables controls the multiplicative bait formula.
type BaitTunables struct {
	PreferredMatch       float64 `yaml:"preferred_match"`
	AvoidedMatch         float64 `yaml:"avoided_match"`
	LightMatch           float64 `yaml:"light_match"`
	WindThresholdMPH     float64 `yaml:"wind_threshold_mph"`
	WindDropPerMPH       float64 `yaml:"wind_drop_per_mph"`
	WindFloor            float64 `yaml:"wind_floor"`
	SightingHorizonHours float64 `yaml:"sighting_horizon_hours"`
	SightingDecayPerHour float64 `yaml:"sighting_decay_per_hour"`
	SightingCap          float64 `yaml:"sighting_cap"`
	SightingScale        float64 `yaml:"sighting_scale"`
}

// DefaultTunables returns the constants the engine ships with.
func DefaultTunables() Tunables {
	return Tunables{
		RecentActivity: RecentActivityTunables{
			Base:         4.0,
			DecayPerHour: 0.75,
			HorizonHours: 6,
			Max:          10,
		},
		Predator: PredatorTunables{
			Magnitude:    8,
			HorizonHours: 4,
		},
		Confidence: ConfidenceTunables{
			MediumAt:         10,
			HighAt:           50,
			LowMultiplier:    0.3,
			MediumMultiplier: 0.6,
			HighMultiplier:   1.0,
		},
		ColdFront: ColdFrontTunables{
			MinWindMPH:     10,
			MaxTempF:       60,
			ShallowDepthFt: 6,
			ShiftShallow:   3,
			ShiftMid:       2,
			ShiftDeep:      1,
			ShiftModerate:  1,
		},
		Bait: BaitTunables{
			PreferredMatch:       1.25,
			AvoidedMatch:         0.5,
			LightMatch:           1.25,
			WindThresholdMPH:     15,
			WindDropPerMPH:       0.05,
			WindFloor:            0.5,
			SightingHorizonHours: 4,
			SightingDecayPerHour: 0.75,
			SightingCap:          8,
			SightingScale:        40,
		},
	}
}

// PredatorMagnitude resolves the full-scale predator penalty for a species:
// a tunables override first, then the profile's own value, then the global
// magnitude.
func (t Tunables) PredatorMagnitude(p SpeciesProfile) float64 {
	if m, ok := t.Predator.Overrides[p.Key]; ok {
		return m
	}
	if p.PredatorPenalty > 0 {
		return p.PredatorPenalty
	}
	return t.Predator.Magnitude
}

type bound struct {
	name      string
	value     float64
	min, max  float64
	exclusive bool // value must be strictly above min
}

func (b bound) check() error {
	if b.value < b.min || b.value > b.max || (b.exclusive && b.value == b.min) {
		return &domain.ConfigurationRangeError{Name: b.name, Value: b.value, Min: b.min, Max: b.max}
	}
	return nil
}

// Validate checks every tunable against its documented bounds and returns
// the first violation as a *domain.ConfigurationRangeError.
func (t Tunables) Validate() error {
	ra, pr, cf, cb, bt := t.RecentActivity, t.Predator, t.Confidence, t.ColdFront, t.Bait
	bounds := []bound{
		{"recent_activity.base", ra.Base, 0, 20, true},
		{"recent_activity.decay_per_hour", ra.DecayPerHour, 0, 1, true},
		{"recent_activity.horizon_hours", ra.HorizonHours, 0, 24, true},
		{"recent_activity.max", ra.Max, 0, 10, true},

		{"predator.magnitude", pr.Magnitude, 0, 20, true},
		{"predator.horizon_hours", pr.HorizonHours, 0, 24, true},

		{"confidence.medium_at", float64(cf.MediumAt), 1, 1e6, false},
		{"confidence.high_at", float64(cf.HighAt), float64(cf.MediumAt) + 1, 1e6, false},
		{"confidence.low_multiplier", cf.LowMultiplier, 0, cf.MediumMultiplier, false},
		{"confidence.medium_multiplier", cf.MediumMultiplier, cf.LowMultiplier, cf.HighMultiplier, false},
		{"confidence.high_multiplier", cf.HighMultiplier, cf.MediumMultiplier, 1, false},

		{"cold_front.min_wind_mph", cb.MinWindMPH, 0, 60, true},
		{"cold_front.max_temp_f", cb.MaxTempF, 20, 90, false},
		{"cold_front.shallow_depth_ft", cb.ShallowDepthFt, 0, 20, true},
		{"cold_front.shift_shallow", float64(cb.ShiftShallow), 0, 10, false},
		{"cold_front.shift_mid", float64(cb.ShiftMid), 0, 10, false},
		{"cold_front.shift_deep", float64(cb.ShiftDeep), 0, 10, false},
		{"cold_front.shift_moderate", float64(cb.ShiftModerate), 0, 10, false},

		{"bait.preferred_match", bt.PreferredMatch, 1, 2, false},
		{"bait.avoided_match", bt.AvoidedMatch, 0, 1, false},
		{"bait.light_match", bt.LightMatch, 1, 2, false},
		{"bait.wind_threshold_mph", bt.WindThresholdMPH, 0, 60, false},
		{"bait.wind_drop_per_mph", bt.WindDropPerMPH, 0, 1, false},
		{"bait.wind_floor", bt.WindFloor, 0, 1, false},
		{"bait.sighting_horizon_hours", bt.SightingHorizonHours, 0, 24, true},
		{"bait.sighting_decay_per_hour", bt.SightingDecayPerHour, 0, 1, true},
		{"bait.sighting_cap", bt.SightingCap, 0, 40, false},
		{"bait.sighting_scale", bt.SightingScale, 0, 1000, true},
	}
	for _, b := range bounds {
		if err := b.check(); err != nil {
			return err
		}
	}
	for species, m := range pr.Overrides {
		if err := (bound{"predator.overrides." + species, m, 0, 20, true}).check(); err != nil {
			return err
		}
	}
	return nil
}

// LoadTunables reads a YAML overlay onto DefaultTunables and validates the
// result. An empty path returns the defaults. Unknown keys are rejected.
func LoadTunables(path string) (Tunables, error) {
	t := DefaultTunables()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Tunables{}, fmt.Errorf("open tunables: %w", err)
		}
		defer f.Close()
		if err := decodeTunables(f, &t); err != nil {
			return Tunables{}, fmt.Errorf("parse tunables %s: %w", path, err)
		}
	}
	if err := t.Validate(); err != nil {
		return Tunables{}, err
	}
	return t, nil
}

func decodeTunables(r io.Reader, t *Tunables) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if len(t.Predator.Overrides) > 0 {
		normalized := make(map[string]float64, len(t.Predator.Overrides))
		for k, v := range t.Predator.Overrides {
			normalized[NormalizeKey(k)] = v
		}
		t.Predator.Overrides = normalized
	}
	return nil
}
