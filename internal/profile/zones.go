package profile

// ZoneGeometry is the static description of one zone at the site.
type ZoneGeometry struct {
	ID             string
	Name           string
	MinDepthFt     float64
	MaxDepthFt     float64
	AverageDepthFt float64
	Structure      []string
	// NorthPilings marks zones whose north-facing edge has pilings fish can
	// tuck behind when a cold north wind blows.
	NorthPilings bool
	// Lights marks zones under dock lights.
	Lights bool
	// ColdFrontAdjustment is added to the zone's ranking score while a strong
	// cold front is active.
	ColdFrontAdjustment float64
}

// HasStructure reports whether the zone contains the given structure type.
func (z ZoneGeometry) HasStructure(kind string) bool {
	for _, s := range z.Structure {
		if s == kind {
			return true
		}
	}
	return false
}

// Site groups the zones of one fishing location.
type Site struct {
	Name string
	// AverageDepthFt is the depth used for the site-wide cold-front check.
	AverageDepthFt float64
	// MaxDepthFt caps shifted depth ranges.
	MaxDepthFt int
	Zones      []ZoneGeometry
}

// DockSite returns the dock geometry shipped with the engine: five zones
// running from the rocky shoreline out to the deep end of the pier.
func DockSite() Site {
	return Site{
		Name:           "Belle Fontaine Dock",
		AverageDepthFt: 4.5,
		MaxDepthFt:     7,
		Zones: []ZoneGeometry{
			{
				ID: "zone-1", Name: "Shoreline rocks",
				MinDepthFt: 2, MaxDepthFt: 4, AverageDepthFt: 3,
				Structure:           []string{StructPilings, StructRubble, StructShoreline},
				NorthPilings:        true,
				ColdFrontAdjustment: -3,
			},
			{
				ID: "zone-2", Name: "Inner flat",
				MinDepthFt: 2, MaxDepthFt: 4, AverageDepthFt: 3,
				Structure:           []string{StructOpenWater, StructShoreline},
				ColdFrontAdjustment: -4,
			},
			{
				ID: "zone-3", Name: "Mid dock",
				MinDepthFt: 3, MaxDepthFt: 6, AverageDepthFt: 4.5,
				Structure:    []string{StructPilings, StructDropOff},
				NorthPilings: true,
			},
			{
				ID: "zone-4", Name: "Green light",
				MinDepthFt: 3, MaxDepthFt: 6, AverageDepthFt: 4.5,
				Structure:           []string{StructGreenLight, StructDropOff},
				Lights:              true,
				ColdFrontAdjustment: 2,
			},
			{
				ID: "zone-5", Name: "Dock end",
				MinDepthFt: 5, MaxDepthFt: 7, AverageDepthFt: 6,
				Structure:           []string{StructPilings, StructDualPilings, StructMudBottom, StructDeepHole},
				NorthPilings:        true,
				ColdFrontAdjustment: 3,
			},
		},
	}
}
