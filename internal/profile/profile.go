// Package profile holds the static species, bait, and zone configuration the
// scoring engine reads. Profiles are built once at process start and never
// mutated afterwards.
package profile

import (
	"slices"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
)

// DepthClass groups species by where they normally hold in the water column.
type DepthClass string

const (
	DepthShallow DepthClass = "shallow"
	DepthMid     DepthClass = "mid"
	DepthDeep    DepthClass = "deep"
)

// Range is an inclusive ideal range for a numeric reading.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Mid returns the range midpoint.
func (r Range) Mid() float64 { return (r.Min + r.Max) / 2 }

// HalfWidth returns half the range width.
func (r Range) HalfWidth() float64 { return (r.Max - r.Min) / 2 }

// Contains reports whether v lies inside the range, edges included.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Distance returns how far v lies outside the range, or 0 when inside.
func (r Range) Distance(v float64) float64 {
	switch {
	case v < r.Min:
		return r.Min - v
	case v > r.Max:
		return v - r.Max
	default:
		return 0
	}
}

// SpeciesProfile is the immutable behavior profile of one species or bait.
type SpeciesProfile struct {
	Key  string
	Name string
	Tier domain.Tier

	// Prey species lose points to recent predator sightings.
	Prey bool
	// Predator marks species whose sightings are logged as predator events.
	Predator bool
	// PredatorPenalty overrides the global full-scale predator penalty
	// magnitude for this species when positive.
	PredatorPenalty float64

	DepthClass  DepthClass
	NormalDepth domain.DepthRange
	Behavior    string

	// Seasonality is the presence factor in [0,1] for January..December.
	Seasonality [12]float64

	// Full-analytics numeric preferences. Falloff is the distance beyond the
	// range edge at which the factor reaches its full penalty.
	WaterTemp        Range
	WaterTempFalloff float64
	WindSpeed        Range
	WindFalloff      float64
	// UnfavorableWinds lists directions that cost WindDirectionPenalty once
	// the wind speed is above the ideal range.
	UnfavorableWinds     []string
	WindDirectionPenalty float64

	// Categorical preference tables keyed by the snapshot's lower-case value.
	Tide      map[string]float64
	TimeOfDay map[string]float64
	Pressure  map[string]float64

	// Structure maps a zone structure type to the species' affinity for it.
	// Only simplified profiles read it.
	Structure map[string]float64

	Bait *BaitPreferences
}

// BaitWeights weights each environmental factor of the bait match. The
// weights of a profile sum to 1.
type BaitWeights struct {
	TideMovement float64
	Current      float64
	Clarity      float64
	TimeOfDay    float64
	Zone         float64
}

// Sum returns the total of all weights.
func (w BaitWeights) Sum() float64 {
	return w.TideMovement + w.Current + w.Clarity + w.TimeOfDay + w.Zone
}

// Preference splits the values of one factor into preferred and avoided sets.
// Values in neither set are neutral.
type Preference struct {
	Preferred []string
	Avoided   []string
}

// BaitPreferences describes when and where a forage species is easiest to catch.
type BaitPreferences struct {
	Weights   BaitWeights
	Tide      Preference
	Current   Preference // weak | moderate | strong
	Clarity   Preference
	TimeOfDay Preference
	Zones     Preference
	// LightAttracted bait stacks under lit zones at night.
	LightAttracted bool
}

// northerlyWinds are the compass points that push cold water off the flats.
var northerlyWinds = []string{"N", "NNE", "NE", "NNW", "NW"}

// NortherlyWinds returns a copy of the northerly compass points.
func NortherlyWinds() []string { return slices.Clone(northerlyWinds) }

// IsNortherly reports whether an upper-case compass point is northerly.
func IsNortherly(dir string) bool { return slices.Contains(northerlyWinds, dir) }

// Current strength buckets used by bait preferences.
const (
	CurrentWeak     = "weak"
	CurrentModerate = "moderate"
	CurrentStrong   = "strong"
)

// CurrentStrength buckets a current speed in mph.
func CurrentStrength(mph float64) string {
	switch {
	case mph < 0.3:
		return CurrentWeak
	case mph <= 1.0:
		return CurrentModerate
	default:
		return CurrentStrong
	}
}

// PresenceFactor returns the seasonal presence factor for a 1-based month.
func (p SpeciesProfile) PresenceFactor(month int) float64 {
	return p.Seasonality[(month-1)%12]
}

// IsFull reports whether the species uses full multi-factor scoring.
func (p SpeciesProfile) IsFull() bool { return p.Tier == domain.TierFull }
