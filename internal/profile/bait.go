package profile

import "github.com/couchcryptid/bite-score-engine/internal/domain"

var (
	movingTide = []string{domain.TideIncoming, domain.TideOutgoing}
	slackTide  = []string{domain.TideSlack, domain.TideHigh, domain.TideLow}
)

// Baits returns the catchable forage profiles shipped with the engine.
func Baits() []SpeciesProfile {
	return []SpeciesProfile{
		{
			Key:         "live_shrimp",
			Name:        "Live Shrimp",
			Tier:        domain.TierBait,
			DepthClass:  DepthMid,
			NormalDepth: domain.DepthRange{MinFt: 2, MaxFt: 5},
			Behavior:    "Moving with the tide over grass and under the dock lights",
			Seasonality: [12]float64{0.4, 0.4, 0.6, 0.8, 1.0, 1.0, 1.0, 1.0, 1.0, 0.8, 0.6, 0.4},
			Bait: &BaitPreferences{
				Weights: BaitWeights{TideMovement: 0.30, Current: 0.25, Clarity: 0.15, TimeOfDay: 0.15, Zone: 0.15},
				Tide:    Preference{Preferred: movingTide, Avoided: []string{domain.TideSlack}},
				Current: Preference{Preferred: []string{CurrentModerate, CurrentStrong}},
				Clarity: Preference{},
				TimeOfDay: Preference{
					Preferred: []string{domain.TimeNight, domain.TimeDawn},
					Avoided:   []string{domain.TimeMidday},
				},
				Zones:          Preference{Preferred: []string{"zone-2", "zone-3", "zone-4"}},
				LightAttracted: true,
			},
		},
		{
			Key:         "live_fish",
			Name:        "Live Bait Fish",
			Tier:        domain.TierBait,
			DepthClass:  DepthMid,
			NormalDepth: domain.DepthRange{MinFt: 3, MaxFt: 7},
			Behavior:    "Schooling around deeper structure with the current",
			Seasonality: [12]float64{0.4, 0.4, 0.6, 0.8, 1.0, 1.0, 1.0, 1.0, 1.0, 0.8, 0.6, 0.4},
			Bait: &BaitPreferences{
				Weights: BaitWeights{TideMovement: 0.25, Current: 0.30, Clarity: 0.20, TimeOfDay: 0.15, Zone: 0.10},
				Tide:    Preference{Preferred: movingTide},
				Current: Preference{Preferred: []string{CurrentModerate, CurrentStrong}, Avoided: []string{CurrentWeak}},
				Clarity: Preference{
					Preferred: []string{domain.ClarityClear, domain.ClaritySlightlyStained},
					Avoided:   []string{domain.ClarityMuddy},
				},
				TimeOfDay: Preference{
					Preferred: []string{domain.TimeDawn, domain.TimeEvening, domain.TimeMorning},
					Avoided:   []string{domain.TimeNight},
				},
				Zones: Preference{Preferred: []string{"zone-3", "zone-4", "zone-5"}},
			},
		},
		{
			Key:         "mud_minnows",
			Name:        "Mud Minnows",
			Tier:        domain.TierBait,
			DepthClass:  DepthShallow,
			NormalDepth: domain.DepthRange{MinFt: 1, MaxFt: 3},
			Behavior:    "Working muddy, grassy bottom on the falling tide",
			Seasonality: [12]float64{0.6, 0.6, 0.8, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 0.8, 0.6},
			Bait: &BaitPreferences{
				Weights: BaitWeights{TideMovement: 0.30, Current: 0.25, Clarity: 0.15, TimeOfDay: 0.20, Zone: 0.10},
				Tide:    Preference{Preferred: []string{domain.TideOutgoing, domain.TideSlack}},
				Current: Preference{Preferred: []string{CurrentWeak, CurrentModerate}, Avoided: []string{CurrentStrong}},
				Clarity: Preference{
					Preferred: []string{domain.ClaritySlightlyStained, domain.ClarityStained, domain.ClarityMuddy},
					Avoided:   []string{domain.ClarityClear},
				},
				TimeOfDay: Preference{
					Preferred: []string{domain.TimeMorning, domain.TimeMidday, domain.TimeAfternoon, domain.TimeEvening},
					Avoided:   []string{domain.TimeNight},
				},
				Zones: Preference{Preferred: []string{"zone-3", "zone-4", "zone-5"}},
			},
		},
		{
			Key:         "pinfish",
			Name:        "Pinfish",
			Tier:        domain.TierBait,
			DepthClass:  DepthMid,
			NormalDepth: domain.DepthRange{MinFt: 2, MaxFt: 5},
			Behavior:    "Picking around pilings and rubble in daylight",
			Seasonality: [12]float64{0.2, 0.2, 0.6, 0.8, 1.0, 1.0, 1.0, 1.0, 1.0, 0.8, 0.4, 0.2},
			Bait: &BaitPreferences{
				Weights: BaitWeights{TideMovement: 0.20, Current: 0.20, Clarity: 0.25, TimeOfDay: 0.20, Zone: 0.15},
				Tide:    Preference{Preferred: movingTide},
				Current: Preference{Preferred: []string{CurrentModerate}},
				Clarity: Preference{
					Preferred: []string{domain.ClarityClear, domain.ClaritySlightlyStained},
					Avoided:   []string{domain.ClarityMuddy},
				},
				TimeOfDay: Preference{
					Preferred: []string{domain.TimeMorning, domain.TimeMidday, domain.TimeAfternoon},
					Avoided:   []string{domain.TimeNight, domain.TimeDawn},
				},
				Zones: Preference{Preferred: []string{"zone-1", "zone-3", "zone-5"}},
			},
		},
		{
			Key:         "menhaden",
			Name:        "Menhaden (Pogies)",
			Tier:        domain.TierBait,
			DepthClass:  DepthMid,
			NormalDepth: domain.DepthRange{MinFt: 2, MaxFt: 6},
			Behavior:    "Flipping on the surface in open water",
			Seasonality: [12]float64{0, 0, 0.2, 0.6, 1.0, 1.0, 1.0, 1.0, 1.0, 0.8, 0.4, 0},
			Bait: &BaitPreferences{
				Weights: BaitWeights{TideMovement: 0.25, Current: 0.25, Clarity: 0.20, TimeOfDay: 0.20, Zone: 0.10},
				Tide:    Preference{Preferred: movingTide, Avoided: slackTide},
				Current: Preference{Preferred: []string{CurrentModerate, CurrentStrong}},
				Clarity: Preference{
					Preferred: []string{domain.ClarityClear, domain.ClaritySlightlyStained},
					Avoided:   []string{domain.ClarityMuddy},
				},
				TimeOfDay: Preference{
					Preferred: []string{domain.TimeDawn, domain.TimeMorning},
					Avoided:   []string{domain.TimeNight},
				},
				Zones: Preference{Preferred: []string{"zone-1", "zone-3", "zone-5"}},
			},
		},
		{
			Key:         "fiddler_crabs",
			Name:        "Fiddler Crabs",
			Tier:        domain.TierBait,
			DepthClass:  DepthShallow,
			NormalDepth: domain.DepthRange{MinFt: 0, MaxFt: 2},
			Behavior:    "Out on the exposed mud and rocks at low water",
			Seasonality: [12]float64{1.0, 1.0, 1.0, 0.8, 0.6, 0.6, 0.6, 0.6, 0.6, 0.8, 1.0, 1.0},
			Bait: &BaitPreferences{
				Weights: BaitWeights{TideMovement: 0.40, Current: 0.10, Clarity: 0.10, TimeOfDay: 0.25, Zone: 0.15},
				Tide:    Preference{Preferred: []string{domain.TideLow, domain.TideOutgoing}, Avoided: []string{domain.TideHigh}},
				Current: Preference{},
				Clarity: Preference{},
				TimeOfDay: Preference{
					Preferred: []string{domain.TimeMidday, domain.TimeAfternoon},
					Avoided:   []string{domain.TimeNight},
				},
				Zones: Preference{Preferred: []string{"zone-1", "zone-2"}},
			},
		},
	}
}
