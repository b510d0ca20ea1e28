package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// forecastNamespace scopes forecast IDs so that the same snapshot scored at
// the same instant always produces the same ID.
var forecastNamespace = uuid.MustParse("5b1f2a52-7c0e-4f43-9d8e-3c1a7b6d2e90")

// Forecast is everything the engine has to say about one snapshot: every
// species in every zone, the best zones per species, and the bait board.
type Forecast struct {
	ID          string            `json:"id"`
	SnapshotID  string            `json:"snapshot_id"`
	SnapshotAt  time.Time         `json:"snapshot_at"`
	GeneratedAt time.Time         `json:"generated_at"`
	ColdFront   ColdFront         `json:"cold_front"`
	Species     []SpeciesForecast `json:"species"`
	Bait        []ScoreBreakdown  `json:"bait"`
}

// SpeciesForecast holds one species' per-zone breakdowns and zone ranking.
type SpeciesForecast struct {
	Species   string           `json:"species"`
	Zones     []ScoreBreakdown `json:"zones"`
	BestZones []ZoneScore      `json:"best_zones"`
}

// ForecastID derives a stable ID from the snapshot and the reference instant.
func ForecastID(snapshotID string, now time.Time) string {
	name := fmt.Sprintf("%s|%s", snapshotID, now.UTC().Format(time.RFC3339Nano))
	return uuid.NewSHA1(forecastNamespace, []byte(name)).String()
}
