package domain

import "fmt"

// Tier selects the scoring formula family for a species.
type Tier string

const (
	TierFull       Tier = "full"
	TierSimplified Tier = "simplified"
	TierBait       Tier = "bait"
)

// ColdFront is the state of the cold north wind classifier.
type ColdFront string

const (
	ColdFrontNone     ColdFront = "none"
	ColdFrontModerate ColdFront = "moderate"
	ColdFrontStrong   ColdFront = "strong"
)

// Bite tier labels shared by fish and bait scores.
const (
	BiteHot      = "HOT"
	BiteDecent   = "DECENT"
	BiteSlow     = "SLOW"
	BiteUnlikely = "UNLIKELY"
)

// DepthRange is an expected holding depth in whole feet.
type DepthRange struct {
	MinFt int `json:"min_ft"`
	MaxFt int `json:"max_ft"`
}

// String formats the range as "2-4 ft", or "5 ft" when both ends match.
func (r DepthRange) String() string {
	if r.MinFt == r.MaxFt {
		return fmt.Sprintf("%d ft", r.MinFt)
	}
	return fmt.Sprintf("%d-%d ft", r.MinFt, r.MaxFt)
}

// Confidence describes how much history backs an event-derived adjustment.
type Confidence struct {
	Label      string  `json:"label"`
	Samples    int     `json:"samples"`
	Multiplier float64 `json:"multiplier"`
	Bucket     string  `json:"bucket,omitempty"`
}

// Factors holds the individual environmental contributions. Full-analytics
// species fill the first five; simplified species fill Condition and Structure.
type Factors struct {
	Temperature float64 `json:"temperature"`
	Tide        float64 `json:"tide"`
	Wind        float64 `json:"wind"`
	TimeOfDay   float64 `json:"time_of_day"`
	Pressure    float64 `json:"pressure"`
	Condition   float64 `json:"condition"`
	Structure   float64 `json:"structure"`
}

// BaitFactors are the multiplicative terms of a bait activity score.
type BaitFactors struct {
	EnvMatch           float64 `json:"env_match"`
	WindMultiplier     float64 `json:"wind_multiplier"`
	SightingMultiplier float64 `json:"sighting_multiplier"`
	RecentSightings    int     `json:"recent_sightings"`
}

// ScoreBreakdown is the explainable result of one scoring call. It is
// regenerated on every call and never persisted by the engine.
type ScoreBreakdown struct {
	Species          string                        `json:"species"`
	Zone             string                        `json:"zone"`
	Tier             Tier                          `json:"tier"`
	SeasonalBaseline float64                       `json:"seasonal_baseline"`
	BaselineLabel    string                        `json:"baseline_label"`
	Environment      float64                       `json:"environment"`
	Factors          Factors                       `json:"factors"`
	RecentActivity   float64                       `json:"recent_activity"`
	RecentCatches    int                           `json:"recent_catches"`
	PredatorPenalty  float64                       `json:"predator_penalty"`
	Confidence       Confidence                    `json:"confidence"`
	ColdFront        ColdFront                     `json:"cold_front"`
	Depth            DepthRange                    `json:"depth"`
	DepthClass       string                        `json:"depth_class,omitempty"`
	Behavior         string                        `json:"behavior,omitempty"`
	Bait             *BaitFactors                  `json:"bait,omitempty"`
	Warnings         []MissingSnapshotFieldWarning `json:"warnings,omitempty"`
	Score            float64                       `json:"score"`
	Label            string                        `json:"label"`
}

// ZoneScore is one entry of a zone ranking.
type ZoneScore struct {
	Zone  string  `json:"zone"`
	Score float64 `json:"score"`
}
