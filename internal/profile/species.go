package profile

import "github.com/couchcryptid/bite-score-engine/internal/domain"

// Structure types present in zones.
const (
	StructPilings     = "pilings"
	StructDualPilings = "dual_pilings"
	StructRubble      = "rubble"
	StructShoreline   = "shoreline"
	StructOpenWater   = "open_water"
	StructDropOff     = "drop_off"
	StructMudBottom   = "mud_bottom"
	StructDeepHole    = "deep_hole"
	StructGreenLight  = "green_light"
)

// Species returns the fish profiles shipped with the engine.
func Species() []SpeciesProfile {
	return []SpeciesProfile{
		{
			Key:         "speckled_trout",
			Name:        "Speckled Trout",
			Tier:        domain.TierFull,
			Prey:        true,
			DepthClass:  DepthShallow,
			NormalDepth: domain.DepthRange{MinFt: 2, MaxFt: 4},
			Behavior:    "Pushing shallow along rocks and dock edges",
			Seasonality: [12]float64{1.0, 0.6, 0.8, 0.8, 1.0, 1.0, 1.0, 0.6, 0.4, 0.6, 1.0, 1.0},

			WaterTemp:            Range{Min: 66, Max: 76},
			WaterTempFalloff:     10,
			WindSpeed:            Range{Min: 4, Max: 12},
			WindFalloff:          10,
			UnfavorableWinds:     NortherlyWinds(),
			WindDirectionPenalty: -3,
			Tide: map[string]float64{
				domain.TideIncoming: 3, domain.TideOutgoing: 2,
				domain.TideHigh: 0, domain.TideLow: 0, domain.TideSlack: -6,
			},
			TimeOfDay: map[string]float64{
				domain.TimeDawn: 2, domain.TimeMorning: 1, domain.TimeMidday: -1,
				domain.TimeAfternoon: 0, domain.TimeEvening: 2, domain.TimeNight: 0,
			},
			Pressure: map[string]float64{
				domain.PressureFalling: 1, domain.PressureStable: 0,
				domain.PressureRisingSlow: 0, domain.PressureRisingFast: -3,
			},
		},
		{
			Key:         "redfish",
			Name:        "Redfish",
			Tier:        domain.TierFull,
			DepthClass:  DepthShallow,
			NormalDepth: domain.DepthRange{MinFt: 1, MaxFt: 3},
			Behavior:    "Roaming tight to rocks and flooded shoreline",
			Seasonality: [12]float64{1.0, 0.6, 0.8, 0.8, 1.0, 1.0, 1.0, 0.6, 0.6, 0.8, 0.8, 0.8},

			WaterTemp:        Range{Min: 65, Max: 80},
			WaterTempFalloff: 12,
			WindSpeed:        Range{Min: 3, Max: 15},
			WindFalloff:      12,
			Tide: map[string]float64{
				domain.TideIncoming: 3, domain.TideOutgoing: 3,
				domain.TideHigh: 1, domain.TideLow: -1, domain.TideSlack: -5,
			},
			TimeOfDay: map[string]float64{
				domain.TimeDawn: 2, domain.TimeMorning: 2, domain.TimeMidday: 0,
				domain.TimeAfternoon: 1, domain.TimeEvening: 2, domain.TimeNight: 1,
			},
			Pressure: map[string]float64{
				domain.PressureFalling: 1, domain.PressureStable: 1,
				domain.PressureRisingSlow: 0, domain.PressureRisingFast: -1,
			},
		},
		{
			Key:         "flounder",
			Name:        "Flounder",
			Tier:        domain.TierFull,
			DepthClass:  DepthMid,
			NormalDepth: domain.DepthRange{MinFt: 3, MaxFt: 5},
			Behavior:    "Laying on bottom along the dock shadow line",
			Seasonality: [12]float64{0.2, 0.6, 0.8, 1.0, 1.0, 0.8, 0.8, 0.6, 0.6, 1.0, 1.0, 0.6},

			WaterTemp:            Range{Min: 65, Max: 75},
			WaterTempFalloff:     8,
			WindSpeed:            Range{Min: 3, Max: 10},
			WindFalloff:          10,
			UnfavorableWinds:     []string{"N", "NW"},
			WindDirectionPenalty: -4,
			Tide: map[string]float64{
				domain.TideIncoming: 2, domain.TideOutgoing: 3,
				domain.TideHigh: -1, domain.TideLow: 0, domain.TideSlack: -8,
			},
			TimeOfDay: map[string]float64{
				domain.TimeDawn: 2, domain.TimeMorning: 2, domain.TimeMidday: -1,
				domain.TimeAfternoon: 0, domain.TimeEvening: 2, domain.TimeNight: 1,
			},
			Pressure: map[string]float64{
				domain.PressureFalling: 1, domain.PressureStable: 1,
				domain.PressureRisingSlow: 0, domain.PressureRisingFast: -3,
			},
		},
		{
			Key:         "sheepshead",
			Name:        "Sheepshead",
			Tier:        domain.TierFull,
			DepthClass:  DepthMid,
			NormalDepth: domain.DepthRange{MinFt: 3, MaxFt: 5},
			Behavior:    "Tight to pilings and dock structure",
			Seasonality: [12]float64{0.8, 0.8, 1.0, 1.0, 0.8, 0.4, 0.4, 0.4, 0.6, 0.8, 1.0, 1.0},

			WaterTemp:        Range{Min: 55, Max: 70},
			WaterTempFalloff: 10,
			WindSpeed:        Range{Min: 0, Max: 20},
			WindFalloff:      15,
			Tide: map[string]float64{
				domain.TideIncoming: 2, domain.TideOutgoing: 2,
				domain.TideHigh: 1, domain.TideLow: 1, domain.TideSlack: -3,
			},
			TimeOfDay: map[string]float64{
				domain.TimeDawn: 2, domain.TimeMorning: 2, domain.TimeMidday: 1,
				domain.TimeAfternoon: 1, domain.TimeEvening: 1, domain.TimeNight: -2,
			},
			Pressure: map[string]float64{
				domain.PressureFalling: 1, domain.PressureStable: 1,
				domain.PressureRisingSlow: 1, domain.PressureRisingFast: -1,
			},
		},
		{
			Key:         "black_drum",
			Name:        "Black Drum",
			Tier:        domain.TierFull,
			DepthClass:  DepthDeep,
			NormalDepth: domain.DepthRange{MinFt: 4, MaxFt: 7},
			Behavior:    "Rooting bottom off the dock edge",
			Seasonality: [12]float64{0.8, 0.6, 0.8, 0.8, 0.8, 0.8, 1.0, 0.6, 0.8, 1.0, 1.0, 1.0},

			WaterTemp:        Range{Min: 60, Max: 75},
			WaterTempFalloff: 15,
			WindSpeed:        Range{Min: 0, Max: 18},
			WindFalloff:      15,
			Tide: map[string]float64{
				domain.TideIncoming: 2, domain.TideOutgoing: 2,
				domain.TideHigh: 1, domain.TideLow: 1, domain.TideSlack: -2,
			},
			TimeOfDay: map[string]float64{
				domain.TimeDawn: 1, domain.TimeMorning: 1, domain.TimeMidday: 1,
				domain.TimeAfternoon: 1, domain.TimeEvening: 1, domain.TimeNight: 0,
			},
			Pressure: map[string]float64{
				domain.PressureFalling: 1, domain.PressureStable: 1,
				domain.PressureRisingSlow: 0, domain.PressureRisingFast: 0,
			},
		},

		// Simplified profiles score a combined tide and time-of-day match plus
		// structure affinity for the zone.
		{
			Key:         "croaker",
			Name:        "Croaker",
			Tier:        domain.TierSimplified,
			DepthClass:  DepthMid,
			NormalDepth: domain.DepthRange{MinFt: 3, MaxFt: 5},
			Behavior:    "On bottom around the dock and nearby slope",
			Seasonality: [12]float64{0.3, 0.3, 0.5, 0.7, 0.9, 1.0, 1.0, 1.0, 0.9, 0.7, 0.5, 0.3},
			Tide: map[string]float64{
				domain.TideIncoming: 3, domain.TideOutgoing: 3, domain.TideSlack: -2,
			},
			Structure: map[string]float64{StructMudBottom: 3, StructDropOff: 3},
		},
		{
			Key:         "white_trout",
			Name:        "White Trout",
			Tier:        domain.TierSimplified,
			Prey:        true,
			DepthClass:  DepthMid,
			NormalDepth: domain.DepthRange{MinFt: 4, MaxFt: 7},
			Behavior:    "Schooling off the dock edge",
			Seasonality: [12]float64{0.8, 0.6, 0.6, 0.6, 0.8, 0.8, 1.0, 0.6, 0.8, 0.8, 0.8, 0.8},
			TimeOfDay: map[string]float64{
				domain.TimeDawn: 2, domain.TimeEvening: 4, domain.TimeNight: 5,
			},
			Structure: map[string]float64{StructGreenLight: 6, StructDropOff: 2},
		},
		{
			Key:         "jack_crevalle",
			Name:        "Jack Crevalle",
			Tier:        domain.TierSimplified,
			Predator:    true,
			DepthClass:  DepthMid,
			NormalDepth: domain.DepthRange{MinFt: 2, MaxFt: 5},
			Behavior:    "Roaming fast across the shelf when bait stacks up",
			Seasonality: [12]float64{0, 0, 0, 0.2, 0.4, 0.8, 1.0, 1.0, 1.0, 1.0, 0.6, 0},
			Tide: map[string]float64{
				domain.TideIncoming: 2, domain.TideOutgoing: 2,
			},
			Structure: map[string]float64{StructOpenWater: 3, StructDropOff: 2},
		},
		{
			Key:         "blue_crab",
			Name:        "Blue Crab",
			Tier:        domain.TierSimplified,
			DepthClass:  DepthMid,
			NormalDepth: domain.DepthRange{MinFt: 2, MaxFt: 5},
			Behavior:    "Active along bottom from the rocks to the dock edge",
			Seasonality: [12]float64{0.2, 0.2, 0.4, 0.6, 0.8, 1.0, 1.0, 1.0, 0.8, 0.6, 0.4, 0.2},
			Tide: map[string]float64{
				domain.TideIncoming: 2, domain.TideOutgoing: 1, domain.TideSlack: -1,
			},
			Structure: map[string]float64{StructPilings: 3, StructRubble: 2, StructMudBottom: 2},
		},
		{
			Key:         "mullet",
			Name:        "Mullet",
			Tier:        domain.TierSimplified,
			Prey:        true,
			DepthClass:  DepthShallow,
			NormalDepth: domain.DepthRange{MinFt: 1, MaxFt: 3},
			Behavior:    "Schooling visibly around rocks and shoreline",
			Seasonality: [12]float64{0.4, 0.4, 0.6, 0.8, 0.9, 1.0, 1.0, 1.0, 1.0, 1.0, 0.8, 0.5},
			Tide:        map[string]float64{domain.TideIncoming: 4},
			Structure:   map[string]float64{StructShoreline: 4, StructOpenWater: 3, StructPilings: -1},
		},
	}
}
