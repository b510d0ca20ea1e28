// Package domain models the inputs and outputs of hyperlocal bite scoring.
//
// # Snapshots
//
// An environment snapshot is captured on a fixed cadence by an upstream
// collector and published as JSON. Units are fixed:
//
//	Temperatures:   degrees Fahrenheit (water_temp_f, air_temp_f)
//	Wind speed:     miles per hour, direction as a 16-point compass string
//	Tide height:    feet relative to MLLW
//	Current speed:  miles per hour
//
// Categorical readings use lower-case keys:
//
//	tide_stage:     incoming | outgoing | high | low | slack
//	time_of_day:    dawn | morning | midday | afternoon | evening | night
//	pressure_trend: falling | stable | rising_slow | rising_fast
//	water_clarity:  clear | slightly_stained | stained | muddy
//
// Any reading may be absent. Absent readings are neutral for scoring; they are
// reported as [MissingSnapshotFieldWarning] values on the breakdown.
//
// # Activity events
//
// Catches, bait sightings, and predator sightings are append-only reports
// keyed by subject (species, bait, or predator) and zone. Each event may carry
// the snapshot that was current when it was reported; that snapshot's
// condition bucket ("incoming/morning") selects the historical sample size
// used to weight the event.
//
// # Score scale
//
// Final scores are clamped to 0–100 and labeled for display:
//
//	HOT ≥ 80 | DECENT 50–79 | SLOW 20–49 | UNLIKELY < 20
//
// Fish scores are additive (baseline plus bounded adjustments); bait scores
// are multiplicative. Both share the same labels.
package domain
