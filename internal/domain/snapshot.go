package domain

import (
	"strings"
	"time"
)

// Tide stages reported by the snapshot collector.
const (
	TideIncoming = "incoming"
	TideOutgoing = "outgoing"
	TideHigh     = "high"
	TideLow      = "low"
	TideSlack    = "slack"
)

// Time-of-day buckets.
const (
	TimeDawn      = "dawn"
	TimeMorning   = "morning"
	TimeMidday    = "midday"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeNight     = "night"
)

// Barometric pressure trends.
const (
	PressureFalling    = "falling"
	PressureStable     = "stable"
	PressureRisingSlow = "rising_slow"
	PressureRisingFast = "rising_fast"
)

// Water clarity readings.
const (
	ClarityClear           = "clear"
	ClaritySlightlyStained = "slightly_stained"
	ClarityStained         = "stained"
	ClarityMuddy           = "muddy"
)

// Snapshot is one immutable, timestamped bundle of environmental readings.
// Numeric readings are pointers: nil means the collector had no value, which
// scoring treats as neutral rather than as bad conditions.
type Snapshot struct {
	ID           string    `json:"id,omitempty"`
	CapturedAt   time.Time `json:"captured_at"`
	WaterTempF   *float64  `json:"water_temp_f,omitempty"`
	AirTempF     *float64  `json:"air_temp_f,omitempty"`
	TideHeightFt *float64  `json:"tide_height_ft,omitempty"`
	TideStage    string    `json:"tide_stage,omitempty"`
	WindSpeedMPH *float64  `json:"wind_speed_mph,omitempty"`
	WindDir      string    `json:"wind_direction,omitempty"` // 16-point compass, e.g. "NNE"
	Pressure     string    `json:"pressure_trend,omitempty"`
	Sky          string    `json:"sky,omitempty"`
	TimeOfDay    string    `json:"time_of_day,omitempty"`
	MoonPhase    string    `json:"moon_phase,omitempty"`
	Clarity      string    `json:"water_clarity,omitempty"`
	CurrentMPH   *float64  `json:"current_speed_mph,omitempty"`
	LightsOn     *bool     `json:"lights_on,omitempty"`
}

// Wind is the subset of a snapshot the cold-front modifier reads.
type Wind struct {
	Direction string
	SpeedMPH  *float64
}

// Temps pairs the air and water readings used for cold-front detection.
type Temps struct {
	AirF   *float64
	WaterF *float64
}

// Wind returns the snapshot's wind reading.
func (s Snapshot) Wind() Wind {
	return Wind{Direction: s.WindDir, SpeedMPH: s.WindSpeedMPH}
}

// Temps returns the snapshot's air and water temperatures.
func (s Snapshot) Temps() Temps {
	return Temps{AirF: s.AirTempF, WaterF: s.WaterTempF}
}

// ConditionBucket groups snapshots by tide stage and time of day so that
// historical observation counts can be looked up per combination.
func (s Snapshot) ConditionBucket() string {
	return bucketPart(s.TideStage) + "/" + bucketPart(s.TimeOfDay)
}

func bucketPart(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return "unknown"
	}
	return v
}

// Float returns a pointer to v. Snapshot literals in tests and fixtures use it
// for optional readings.
func Float(v float64) *float64 {
	return &v
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}
