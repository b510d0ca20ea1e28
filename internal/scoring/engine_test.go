package scoring_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
	"github.com/couchcryptid/bite-score-engine/internal/scoring"
)

const (
	trout = "speckled_trout"
	zone1 = "zone-1"
)

var testNow = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

func newEngine(t *testing.T) *scoring.Engine {
	t.Helper()
	return scoring.New(profile.DefaultRegistry(), profile.DefaultTunables(), slog.Default())
}

// troutSnapshot is the reference October morning: 68F water, incoming tide,
// light SE wind, stable pressure.
func troutSnapshot() domain.Snapshot {
	return domain.Snapshot{
		ID:           "snap-1",
		CapturedAt:   testNow,
		WaterTempF:   domain.Float(68),
		TideStage:    domain.TideIncoming,
		WindSpeedMPH: domain.Float(8),
		WindDir:      "SE",
		TimeOfDay:    domain.TimeMorning,
		Pressure:     domain.PressureStable,
	}
}

// coldFrontSnapshot is the reference morning with a cold north wind.
func coldFrontSnapshot() domain.Snapshot {
	s := troutSnapshot()
	s.WindDir = "N"
	s.WindSpeedMPH = domain.Float(12)
	s.AirTempF = domain.Float(51)
	s.WaterTempF = domain.Float(58)
	return s
}

func catchAt(age time.Duration, species, zone string) domain.ActivityEvent {
	return domain.ActivityEvent{
		Kind:      domain.EventCatch,
		Subject:   species,
		Zone:      zone,
		Timestamp: testNow.Add(-age),
		Quantity:  1,
	}
}

func predatorAt(age time.Duration, zone string) domain.ActivityEvent {
	return domain.ActivityEvent{
		Kind:      domain.EventPredatorSighting,
		Subject:   "dolphin",
		Zone:      zone,
		Timestamp: testNow.Add(-age),
	}
}

func TestScoreSpecies_SpeckledTroutExample(t *testing.T) {
	e := newEngine(t)

	b, err := e.ScoreSpecies(trout, zone1, troutSnapshot(), testNow, domain.EventWindow{})
	require.NoError(t, err)

	assert.Equal(t, domain.TierFull, b.Tier)
	assert.InDelta(t, 60.0, b.SeasonalBaseline, 1e-9)
	assert.Equal(t, "good", b.BaselineLabel)
	assert.InDelta(t, 2.0, b.Factors.Temperature, 1e-9)
	assert.InDelta(t, 3.0, b.Factors.Tide, 1e-9)
	assert.InDelta(t, 2.0, b.Factors.Wind, 1e-9)
	assert.InDelta(t, 1.0, b.Factors.TimeOfDay, 1e-9)
	assert.InDelta(t, 0.0, b.Factors.Pressure, 1e-9)
	assert.InDelta(t, 8.0, b.Environment, 1e-9)
	assert.Zero(t, b.RecentActivity)
	assert.Zero(t, b.PredatorPenalty)
	assert.InDelta(t, 68.0, b.Score, 1e-9)
	assert.Equal(t, domain.BiteDecent, b.Label)

	assert.Equal(t, domain.ColdFrontNone, b.ColdFront)
	assert.Equal(t, domain.DepthRange{MinFt: 2, MaxFt: 4}, b.Depth)
	assert.Equal(t, "shallow-mid", b.DepthClass)
	assert.Empty(t, b.Warnings)
	assert.Equal(t, scoring.ConfidenceLow, b.Confidence.Label)
	assert.Equal(t, "incoming/morning", b.Confidence.Bucket)
}

func TestScoreSpecies_ColdFrontExample(t *testing.T) {
	e := newEngine(t)

	b, err := e.ScoreSpecies(trout, zone1, coldFrontSnapshot(), testNow, domain.EventWindow{})
	require.NoError(t, err)

	assert.Equal(t, domain.ColdFrontStrong, b.ColdFront)
	assert.Equal(t, domain.DepthRange{MinFt: 5, MaxFt: 7}, b.Depth)
	assert.Equal(t, "5-7 ft", b.Depth.String())
	assert.Contains(t, b.Behavior, "pushed them off the flat")
	assert.Contains(t, b.Behavior, "holding deeper")
	assert.Contains(t, b.Behavior, "north piling line")

	// The same inputs with the strong trigger out of reach keep the score.
	tun := profile.DefaultTunables()
	tun.ColdFront.MinWindMPH = 60
	calm := scoring.New(profile.DefaultRegistry(), tun, slog.Default())
	nb, err := calm.ScoreSpecies(trout, zone1, coldFrontSnapshot(), testNow, domain.EventWindow{})
	require.NoError(t, err)

	assert.NotEqual(t, domain.ColdFrontStrong, nb.ColdFront)
	assert.InDelta(t, nb.Score, b.Score, 1e-9, "cold front must not change the numeric score")
	assert.NotEqual(t, nb.Depth, b.Depth)
}

func TestScoreSpecies_ConfidenceStep(t *testing.T) {
	e := newEngine(t)
	snap := troutSnapshot()
	key := domain.ObservationKey{Species: trout, Zone: zone1, Bucket: snap.ConditionBucket()}
	events := []domain.ActivityEvent{catchAt(0, trout, zone1)}

	score := func(n int) domain.ScoreBreakdown {
		b, err := e.ScoreSpecies(trout, zone1, snap, testNow, domain.EventWindow{
			Events:       events,
			Observations: map[domain.ObservationKey]int{key: n},
		})
		require.NoError(t, err)
		return b
	}

	nine, ten := score(9), score(10)
	assert.Equal(t, scoring.ConfidenceLow, nine.Confidence.Label)
	assert.Equal(t, scoring.ConfidenceMedium, ten.Confidence.Label)
	assert.InDelta(t, 1.2, nine.RecentActivity, 1e-9)
	assert.InDelta(t, 2.4, ten.RecentActivity, 1e-9)
	// 4.0 x (0.6 - 0.3)
	assert.InDelta(t, 1.2, ten.Score-nine.Score, 1e-9)

	assert.Equal(t, scoring.ConfidenceMedium, score(49).Confidence.Label)
	assert.Equal(t, scoring.ConfidenceHigh, score(50).Confidence.Label)
}

func TestScoreSpecies_RecentActivityHorizon(t *testing.T) {
	e := newEngine(t)
	snap := troutSnapshot()

	score := func(age time.Duration) float64 {
		b, err := e.ScoreSpecies(trout, zone1, snap, testNow, domain.EventWindow{
			Events: []domain.ActivityEvent{catchAt(age, trout, zone1)},
		})
		require.NoError(t, err)
		return b.RecentActivity
	}

	assert.Greater(t, score(6*time.Hour), 0.0)
	assert.Zero(t, score(6*time.Hour+time.Minute))
	assert.Zero(t, score(-time.Hour), "future catches do not count")

	prev := score(0)
	for age := 30 * time.Minute; age <= 6*time.Hour; age += 30 * time.Minute {
		cur := score(age)
		assert.LessOrEqual(t, cur, prev, "age %s", age)
		prev = cur
	}
}

func TestScoreSpecies_RecentActivityFiltersSpeciesAndZone(t *testing.T) {
	e := newEngine(t)
	w := domain.EventWindow{Events: []domain.ActivityEvent{
		catchAt(0, "redfish", zone1),
		catchAt(0, trout, "zone-2"),
		{Kind: domain.EventBaitSighting, Subject: trout, Zone: zone1, Timestamp: testNow},
	}}
	b, err := e.ScoreSpecies(trout, zone1, troutSnapshot(), testNow, w)
	require.NoError(t, err)
	assert.Zero(t, b.RecentActivity)
	assert.Zero(t, b.RecentCatches)
}

func TestScoreSpecies_RecentActivityUsesEventBucket(t *testing.T) {
	e := newEngine(t)
	snap := troutSnapshot()

	logged := snap
	logged.TideStage = domain.TideOutgoing
	logged.TimeOfDay = domain.TimeEvening
	ev := catchAt(0, "Speckled Trout", zone1)
	ev.Snapshot = &logged

	b, err := e.ScoreSpecies(trout, zone1, snap, testNow, domain.EventWindow{
		Events: []domain.ActivityEvent{ev},
		Observations: map[domain.ObservationKey]int{
			{Species: trout, Zone: zone1, Bucket: "outgoing/evening"}: 80,
		},
	})
	require.NoError(t, err)

	// the current bucket has no history, the catch's own bucket is HIGH
	assert.Equal(t, scoring.ConfidenceLow, b.Confidence.Label)
	assert.InDelta(t, 4.0, b.RecentActivity, 1e-9)
	assert.Equal(t, 1, b.RecentCatches)
}

func TestScoreSpecies_RecentActivityClamped(t *testing.T) {
	e := newEngine(t)
	snap := troutSnapshot()
	var events []domain.ActivityEvent
	for i := 0; i < 20; i++ {
		events = append(events, catchAt(time.Duration(i)*time.Minute, trout, zone1))
	}
	b, err := e.ScoreSpecies(trout, zone1, snap, testNow, domain.EventWindow{
		Events:       events,
		Observations: map[domain.ObservationKey]int{{Species: trout, Zone: zone1, Bucket: snap.ConditionBucket()}: 100},
	})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, b.RecentActivity, 1e-9)
	assert.InDelta(t, 78.0, b.Score, 1e-9)
}

func TestScoreSpecies_PredatorPenalty(t *testing.T) {
	e := newEngine(t)
	snap := troutSnapshot()

	tests := []struct {
		name   string
		events []domain.ActivityEvent
		want   float64
	}{
		{"none", nil, 0},
		{"fresh sighting", []domain.ActivityEvent{predatorAt(0, zone1)}, -8},
		{"half faded", []domain.ActivityEvent{predatorAt(2*time.Hour, zone1)}, -4},
		{"at horizon", []domain.ActivityEvent{predatorAt(4*time.Hour, zone1)}, 0},
		{"other zone", []domain.ActivityEvent{predatorAt(0, "zone-3")}, 0},
		{"two do not stack", []domain.ActivityEvent{predatorAt(time.Hour, zone1), predatorAt(2*time.Hour, zone1)}, -6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := e.ScoreSpecies(trout, zone1, snap, testNow, domain.EventWindow{Events: tt.events})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, b.PredatorPenalty, 1e-9)
			assert.InDelta(t, 68+tt.want, b.Score, 1e-9)
		})
	}
}

func TestScoreSpecies_PredatorPenaltyOnlyForFullPrey(t *testing.T) {
	e := newEngine(t)
	w := domain.EventWindow{Events: []domain.ActivityEvent{predatorAt(0, zone1)}}

	for _, species := range []string{"redfish", "mullet", "white_trout"} {
		b, err := e.ScoreSpecies(species, zone1, troutSnapshot(), testNow, w)
		require.NoError(t, err)
		assert.Zero(t, b.PredatorPenalty, species)
	}
}

func TestScoreSpecies_RecentActivityOnlyForFullTier(t *testing.T) {
	e := newEngine(t)

	for _, species := range []string{"croaker", "mullet", "white_trout"} {
		w := domain.EventWindow{Events: []domain.ActivityEvent{
			catchAt(0, species, zone1),
			catchAt(time.Hour, species, zone1),
		}}
		with, err := e.ScoreSpecies(species, zone1, troutSnapshot(), testNow, w)
		require.NoError(t, err)
		without, err := e.ScoreSpecies(species, zone1, troutSnapshot(), testNow, domain.EventWindow{})
		require.NoError(t, err)

		assert.Zero(t, with.RecentActivity, species)
		assert.Zero(t, with.RecentCatches, species)
		assert.InDelta(t, without.Score, with.Score, 1e-9, species)
	}

	redfish, err := e.ScoreSpecies("redfish", zone1, troutSnapshot(), testNow, domain.EventWindow{
		Events: []domain.ActivityEvent{catchAt(0, "redfish", zone1)},
	})
	require.NoError(t, err)
	assert.Positive(t, redfish.RecentActivity)
}

func TestScoreSpecies_PredatorMagnitudeTunable(t *testing.T) {
	tun := profile.DefaultTunables()
	tun.Predator.Magnitude = 20
	e := scoring.New(profile.DefaultRegistry(), tun, slog.Default())

	b, err := e.ScoreSpecies(trout, zone1, troutSnapshot(), testNow, domain.EventWindow{
		Events: []domain.ActivityEvent{predatorAt(0, zone1)},
	})
	require.NoError(t, err)
	assert.InDelta(t, -20.0, b.PredatorPenalty, 1e-9)
	assert.InDelta(t, 48.0, b.Score, 1e-9)
}

func TestScoreSpecies_MissingFieldsAreNeutral(t *testing.T) {
	e := newEngine(t)

	b, err := e.ScoreSpecies(trout, zone1, domain.Snapshot{CapturedAt: testNow}, testNow, domain.EventWindow{})
	require.NoError(t, err)

	assert.Zero(t, b.Environment)
	assert.InDelta(t, 60.0, b.Score, 1e-9)
	assert.Equal(t, []domain.MissingSnapshotFieldWarning{
		{Field: "water_temp_f"},
		{Field: "tide_stage"},
		{Field: "wind_speed_mph"},
		{Field: "time_of_day"},
		{Field: "pressure_trend"},
	}, b.Warnings)
	assert.Equal(t, "unknown/unknown", b.Confidence.Bucket)
	assert.Equal(t, domain.ColdFrontNone, b.ColdFront)
}

func TestScoreSpecies_SimplifiedStructureAndLights(t *testing.T) {
	e := newEngine(t)
	night := domain.Snapshot{CapturedAt: testNow, TimeOfDay: domain.TimeNight, LightsOn: domain.Bool(true)}

	b, err := e.ScoreSpecies("white_trout", "zone-4", night, testNow, domain.EventWindow{})
	require.NoError(t, err)
	assert.Equal(t, domain.TierSimplified, b.Tier)
	assert.InDelta(t, 80.0, b.SeasonalBaseline, 1e-9)
	assert.InDelta(t, 5.0, b.Factors.Condition, 1e-9)
	assert.InDelta(t, 8.0, b.Factors.Structure, 1e-9)
	assert.InDelta(t, 93.0, b.Score, 1e-9)
	assert.Equal(t, domain.BiteHot, b.Label)

	night.LightsOn = domain.Bool(false)
	b, err = e.ScoreSpecies("white_trout", "zone-4", night, testNow, domain.EventWindow{})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, b.Factors.Structure, 1e-9)
	assert.InDelta(t, 87.0, b.Score, 1e-9)

	night.LightsOn = nil
	b, err = e.ScoreSpecies("white_trout", "zone-4", night, testNow, domain.EventWindow{})
	require.NoError(t, err)
	assert.InDelta(t, 8.0, b.Factors.Structure, 1e-9)
}

func TestScoreSpecies_AlwaysInRange(t *testing.T) {
	e := newEngine(t)
	snapshots := []domain.Snapshot{
		{},
		{
			WaterTempF: domain.Float(20), AirTempF: domain.Float(10),
			WindSpeedMPH: domain.Float(80), WindDir: "N",
			TideStage: domain.TideSlack, TimeOfDay: domain.TimeMidday, Pressure: domain.PressureRisingFast,
			LightsOn: domain.Bool(false),
		},
		{
			WaterTempF: domain.Float(71), WindSpeedMPH: domain.Float(8), WindDir: "S",
			TideStage: domain.TideIncoming, TimeOfDay: domain.TimeDawn, Pressure: domain.PressureFalling,
			LightsOn: domain.Bool(true),
		},
	}
	var heavy []domain.ActivityEvent
	for _, z := range e.Registry().Site().Zones {
		for _, key := range e.Registry().Keys() {
			for i := 0; i < 5; i++ {
				heavy = append(heavy, catchAt(time.Duration(i)*time.Minute, key, z.ID))
			}
		}
		heavy = append(heavy, predatorAt(0, z.ID), predatorAt(time.Minute, z.ID))
	}
	windows := []domain.EventWindow{{}, {Events: heavy}}

	for _, snap := range snapshots {
		for _, w := range windows {
			for _, month := range []time.Month{time.January, time.April, time.July, time.October} {
				now := time.Date(2026, month, 10, 12, 0, 0, 0, time.UTC)
				for _, key := range e.Registry().Keys() {
					for _, z := range e.Registry().Site().Zones {
						b, err := e.ScoreSpecies(key, z.ID, snap, now, w)
						require.NoError(t, err)
						assert.GreaterOrEqual(t, b.Score, 0.0, "%s %s", key, z.ID)
						assert.LessOrEqual(t, b.Score, 100.0, "%s %s", key, z.ID)
						assert.GreaterOrEqual(t, b.Environment, -30.0)
						assert.LessOrEqual(t, b.RecentActivity, 10.0)
					}
				}
			}
		}
	}
}

func TestScoreSpecies_Idempotent(t *testing.T) {
	e := newEngine(t)
	logged := troutSnapshot()
	ev := catchAt(90*time.Minute, trout, zone1)
	ev.Snapshot = &logged
	w := domain.EventWindow{
		Events: []domain.ActivityEvent{ev, predatorAt(time.Hour, zone1)},
		Observations: map[domain.ObservationKey]int{
			{Species: trout, Zone: zone1, Bucket: logged.ConditionBucket()}: 12,
		},
	}

	first, err := e.ScoreSpecies(trout, zone1, coldFrontSnapshot(), testNow, w)
	require.NoError(t, err)
	second, err := e.ScoreSpecies(trout, zone1, coldFrontSnapshot(), testNow, w)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("ScoreSpecies not idempotent (-first +second):\n%s", diff)
	}
	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestScoreSpecies_UnknownSpecies(t *testing.T) {
	e := newEngine(t)
	_, err := e.ScoreSpecies("speckled_trot", zone1, troutSnapshot(), testNow, domain.EventWindow{})

	var unknown *domain.UnknownSpeciesError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, trout, unknown.Suggestion)
}

func TestScoreSpecies_UnknownZone(t *testing.T) {
	e := newEngine(t)
	_, err := e.ScoreSpecies(trout, "zone-9", troutSnapshot(), testNow, domain.EventWindow{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownZone))
}

func TestSeasonalBaseline(t *testing.T) {
	e := newEngine(t)

	v, label, err := e.SeasonalBaseline(trout, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.InDelta(t, 40.0, v, 1e-9)
	assert.Equal(t, "fair", label)

	_, _, err = e.SeasonalBaseline("marlin", testNow)
	var unknown *domain.UnknownSpeciesError
	assert.True(t, errors.As(err, &unknown))
}

func TestScoreBait_LightsAtNight(t *testing.T) {
	e := newEngine(t)
	snap := domain.Snapshot{
		CapturedAt:   testNow,
		TideStage:    domain.TideIncoming,
		CurrentMPH:   domain.Float(0.5),
		Clarity:      domain.ClarityClear,
		TimeOfDay:    domain.TimeNight,
		WindSpeedMPH: domain.Float(5),
		LightsOn:     domain.Bool(true),
	}

	b, err := e.ScoreBait("live_shrimp", "zone-4", snap, testNow, domain.EventWindow{})
	require.NoError(t, err)
	require.NotNil(t, b.Bait)

	assert.Equal(t, domain.TierBait, b.Tier)
	assert.InDelta(t, 80.0, b.SeasonalBaseline, 1e-9)
	assert.InDelta(t, 1.2125, b.Bait.EnvMatch, 0.001)
	assert.InDelta(t, 1.0, b.Bait.WindMultiplier, 1e-9)
	assert.InDelta(t, 1.0, b.Bait.SightingMultiplier, 1e-9)
	assert.InDelta(t, 97.0, b.Score, 0.05)
	assert.Equal(t, domain.BiteHot, b.Label)
	assert.Empty(t, b.Warnings)
}

func TestScoreBait_WindAndSightings(t *testing.T) {
	e := newEngine(t)
	snap := domain.Snapshot{
		CapturedAt:   testNow,
		TideStage:    domain.TideIncoming,
		CurrentMPH:   domain.Float(0.5),
		Clarity:      domain.ClarityClear,
		TimeOfDay:    domain.TimeNight,
		WindSpeedMPH: domain.Float(21),
		LightsOn:     domain.Bool(true),
	}

	b, err := e.ScoreBait("live_shrimp", "zone-4", snap, testNow, domain.EventWindow{})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, b.Bait.WindMultiplier, 1e-9)
	assert.InDelta(t, 67.9, b.Score, 0.05)
	assert.Equal(t, domain.BiteDecent, b.Label)

	snap.WindSpeedMPH = domain.Float(40)
	b, err = e.ScoreBait("live_shrimp", "zone-4", snap, testNow, domain.EventWindow{})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, b.Bait.WindMultiplier, 1e-9, "floored")

	snap.WindSpeedMPH = domain.Float(21)
	w := domain.EventWindow{Events: []domain.ActivityEvent{
		{Kind: domain.EventBaitSighting, Subject: "live_shrimp", Zone: "zone-4", Timestamp: testNow, Quantity: 12},
		{Kind: domain.EventBaitSighting, Subject: "live_shrimp", Zone: "zone-4", Timestamp: testNow.Add(-5 * time.Hour), Quantity: 12},
		{Kind: domain.EventBaitSighting, Subject: "menhaden", Zone: "zone-4", Timestamp: testNow, Quantity: 12},
	}}
	b, err = e.ScoreBait("live_shrimp", "zone-4", snap, testNow, w)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Bait.RecentSightings)
	assert.InDelta(t, 1.1, b.Bait.SightingMultiplier, 1e-9)
	assert.InDelta(t, 74.7, b.Score, 0.05)
}

func TestScoreBait_ClampedToHundred(t *testing.T) {
	e := newEngine(t)
	snap := domain.Snapshot{
		TideStage: domain.TideIncoming, CurrentMPH: domain.Float(0.5), TimeOfDay: domain.TimeNight,
		WindSpeedMPH: domain.Float(5), LightsOn: domain.Bool(true),
	}
	var events []domain.ActivityEvent
	for i := 0; i < 5; i++ {
		events = append(events, domain.ActivityEvent{
			Kind: domain.EventBaitSighting, Subject: "live_shrimp", Zone: "zone-4", Timestamp: testNow, Quantity: 50,
		})
	}
	b, err := e.ScoreBait("live_shrimp", "zone-4", snap, testNow, domain.EventWindow{Events: events})
	require.NoError(t, err)
	assert.InDelta(t, 1.2, b.Bait.SightingMultiplier, 1e-9, "capped")
	assert.InDelta(t, 100.0, b.Score, 1e-9)
}

func TestScoreBait_LightAttraction(t *testing.T) {
	glass := profile.SpeciesProfile{
		Key:         "glass_minnow",
		Name:        "Glass Minnow",
		Tier:        domain.TierBait,
		NormalDepth: domain.DepthRange{MinFt: 1, MaxFt: 3},
		Seasonality: [12]float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
		Bait: &profile.BaitPreferences{
			Weights:        profile.BaitWeights{Zone: 1},
			LightAttracted: true,
		},
	}
	reg, err := profile.NewRegistry([]profile.SpeciesProfile{glass}, profile.DockSite())
	require.NoError(t, err)
	e := scoring.New(reg, profile.DefaultTunables(), slog.Default())

	tests := []struct {
		name   string
		zone   string
		tod    string
		lights *bool
		want   float64
	}{
		{"lit at night", "zone-4", domain.TimeNight, domain.Bool(true), 50},
		{"lit in the evening", "zone-4", domain.TimeEvening, domain.Bool(true), 50},
		{"dark at night", "zone-4", domain.TimeNight, domain.Bool(false), 40},
		{"unknown lights", "zone-4", domain.TimeNight, nil, 40},
		{"lit at midday", "zone-4", domain.TimeMidday, domain.Bool(true), 40},
		{"zone without lights", "zone-1", domain.TimeNight, domain.Bool(true), 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := domain.Snapshot{TimeOfDay: tt.tod, LightsOn: tt.lights, WindSpeedMPH: domain.Float(5)}
			b, err := e.ScoreBait("glass_minnow", tt.zone, snap, testNow, domain.EventWindow{})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, b.Score, 1e-9)
		})
	}
}

func TestScoreBait_Errors(t *testing.T) {
	e := newEngine(t)

	_, err := e.ScoreBait("redfish", zone1, troutSnapshot(), testNow, domain.EventWindow{})
	assert.True(t, errors.Is(err, scoring.ErrNotBait))

	_, err = e.ScoreBait("live_shrimps", zone1, troutSnapshot(), testNow, domain.EventWindow{})
	var unknown *domain.UnknownSpeciesError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "live_shrimp", unknown.Suggestion)
}

func TestScoreSpecies_BaitKeyUsesBaitFormula(t *testing.T) {
	e := newEngine(t)
	b, err := e.ScoreSpecies("menhaden", zone1, troutSnapshot(), testNow, domain.EventWindow{})
	require.NoError(t, err)
	assert.Equal(t, domain.TierBait, b.Tier)
	assert.NotNil(t, b.Bait)
}

func TestScoreBait_MissingFieldsAreNeutral(t *testing.T) {
	e := newEngine(t)
	b, err := e.ScoreBait("live_fish", "zone-3", domain.Snapshot{}, testNow, domain.EventWindow{})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, b.Bait.WindMultiplier, 1e-9)
	assert.ElementsMatch(t, []domain.MissingSnapshotFieldWarning{
		{Field: "tide_stage"},
		{Field: "current_speed_mph"},
		{Field: "water_clarity"},
		{Field: "time_of_day"},
		{Field: "wind_speed_mph"},
	}, b.Warnings)
}

func TestScoreBait_EstimatesMissingClarity(t *testing.T) {
	e := newEngine(t)
	tests := []struct {
		name    string
		wind    float64
		current float64
		implied string
	}{
		{"calm slow tide reads clear", 3, 0.2, domain.ClarityClear},
		{"wind and hard tide read muddy", 18, 1.0, domain.ClarityMuddy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := domain.Snapshot{
				TideStage: domain.TideIncoming, TimeOfDay: domain.TimeMorning,
				WindSpeedMPH: domain.Float(tt.wind), CurrentMPH: domain.Float(tt.current),
			}
			got, err := e.ScoreBait("live_fish", "zone-3", snap, testNow, domain.EventWindow{})
			require.NoError(t, err)

			snap.Clarity = tt.implied
			read, err := e.ScoreBait("live_fish", "zone-3", snap, testNow, domain.EventWindow{})
			require.NoError(t, err)

			assert.InDelta(t, read.Bait.EnvMatch, got.Bait.EnvMatch, 1e-9)
			assert.InDelta(t, read.Score, got.Score, 1e-9)
			assert.Contains(t, got.Warnings, domain.MissingSnapshotFieldWarning{Field: "water_clarity"})
			assert.Empty(t, read.Warnings)
		})
	}
}

func TestBestZones(t *testing.T) {
	e := newEngine(t)

	t.Run("equal scores rank by zone id", func(t *testing.T) {
		best, zones, err := e.BestZones(trout, troutSnapshot(), testNow, domain.EventWindow{})
		require.NoError(t, err)
		require.Len(t, zones, 5)
		ids := make([]string, len(best))
		for i, z := range best {
			ids[i] = z.Zone
			assert.InDelta(t, 68.0, z.Score, 1e-9)
		}
		assert.Equal(t, []string{"zone-1", "zone-2", "zone-3", "zone-4", "zone-5"}, ids)
	})

	t.Run("strong cold front favors deep zones", func(t *testing.T) {
		best, zones, err := e.BestZones(trout, coldFrontSnapshot(), testNow, domain.EventWindow{})
		require.NoError(t, err)
		want := []domain.ZoneScore{
			{Zone: "zone-5", Score: 59},
			{Zone: "zone-4", Score: 58},
			{Zone: "zone-3", Score: 56},
			{Zone: "zone-1", Score: 53},
			{Zone: "zone-2", Score: 52},
		}
		if diff := cmp.Diff(want, best); diff != "" {
			t.Errorf("BestZones mismatch (-want +got):\n%s", diff)
		}
		for _, b := range zones {
			assert.InDelta(t, 56.0, b.Score, 1e-9, "breakdowns stay unadjusted")
		}
	})

	t.Run("recent catches lift a zone", func(t *testing.T) {
		w := domain.EventWindow{Events: []domain.ActivityEvent{catchAt(0, trout, "zone-3")}}
		best, _, err := e.BestZones(trout, troutSnapshot(), testNow, w)
		require.NoError(t, err)
		assert.Equal(t, "zone-3", best[0].Zone)
	})
}

func TestDepthBehavior(t *testing.T) {
	e := newEngine(t)
	z, ok := e.Registry().Zone("zone-2")
	require.True(t, ok)
	snap := coldFrontSnapshot()

	depth, behavior, err := e.DepthBehavior(trout, snap.Wind(), snap.Temps(), z)
	require.NoError(t, err)
	assert.Equal(t, domain.DepthRange{MinFt: 5, MaxFt: 7}, depth)
	assert.Contains(t, behavior, "holding deeper")
	assert.NotContains(t, behavior, "piling", "zone-2 has no north pilings")

	calm := troutSnapshot()
	depth, behavior, err = e.DepthBehavior(trout, calm.Wind(), calm.Temps(), z)
	require.NoError(t, err)
	assert.Equal(t, domain.DepthRange{MinFt: 2, MaxFt: 4}, depth)
	assert.Equal(t, "Pushing shallow along rocks and dock edges", behavior)

	_, _, err = e.DepthBehavior("tarpon", calm.Wind(), calm.Temps(), z)
	assert.Error(t, err)
}

func TestForecast(t *testing.T) {
	e := newEngine(t)
	snap := coldFrontSnapshot()

	f, err := e.Forecast(snap, testNow, domain.EventWindow{})
	require.NoError(t, err)

	assert.Equal(t, domain.ForecastID(snap.ID, testNow), f.ID)
	assert.Equal(t, snap.ID, f.SnapshotID)
	assert.Equal(t, testNow, f.GeneratedAt)
	assert.Equal(t, domain.ColdFrontStrong, f.ColdFront)
	assert.Len(t, f.Species, 10)
	for _, sf := range f.Species {
		assert.Len(t, sf.Zones, 5, sf.Species)
		assert.Len(t, sf.BestZones, 5, sf.Species)
	}
	assert.Len(t, f.Bait, 30)

	again, err := e.Forecast(snap, testNow, domain.EventWindow{})
	require.NoError(t, err)
	if diff := cmp.Diff(f, again); diff != "" {
		t.Errorf("Forecast not deterministic (-first +second):\n%s", diff)
	}
}
