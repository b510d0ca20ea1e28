package profile

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
)

// Registry is the read-only lookup of species, bait, and zone configuration.
// It is safe for concurrent use once built.
type Registry struct {
	profiles map[string]SpeciesProfile
	keys     []string
	site     Site
	zones    map[string]ZoneGeometry
}

// NewRegistry validates the profiles and site and builds a registry.
func NewRegistry(profiles []SpeciesProfile, site Site) (*Registry, error) {
	r := &Registry{
		profiles: make(map[string]SpeciesProfile, len(profiles)),
		site:     site,
		zones:    make(map[string]ZoneGeometry, len(site.Zones)),
	}
	for _, p := range profiles {
		if err := validateProfile(p); err != nil {
			return nil, err
		}
		if _, dup := r.profiles[p.Key]; dup {
			return nil, fmt.Errorf("duplicate profile %q", p.Key)
		}
		r.profiles[p.Key] = p
		r.keys = append(r.keys, p.Key)
	}
	sort.Strings(r.keys)

	if site.MaxDepthFt <= 0 {
		return nil, fmt.Errorf("site %q: max depth must be positive", site.Name)
	}
	for _, z := range site.Zones {
		if _, dup := r.zones[z.ID]; dup {
			return nil, fmt.Errorf("duplicate zone %q", z.ID)
		}
		if z.MinDepthFt > z.MaxDepthFt {
			return nil, fmt.Errorf("zone %q: min depth %g above max depth %g", z.ID, z.MinDepthFt, z.MaxDepthFt)
		}
		r.zones[z.ID] = z
	}
	return r, nil
}

func validateProfile(p SpeciesProfile) error {
	if p.Key == "" {
		return fmt.Errorf("profile %q: empty key", p.Name)
	}
	for i, f := range p.Seasonality {
		if f < 0 || f > 1 {
			return fmt.Errorf("profile %q: seasonality for month %d is %g, want [0,1]", p.Key, i+1, f)
		}
	}
	if p.NormalDepth.MinFt > p.NormalDepth.MaxFt {
		return fmt.Errorf("profile %q: normal depth %s is inverted", p.Key, p.NormalDepth)
	}
	if p.PredatorPenalty < 0 {
		return fmt.Errorf("profile %q: predator penalty must be a positive magnitude", p.Key)
	}
	switch p.Tier {
	case domain.TierFull:
		if p.WaterTemp.Min > p.WaterTemp.Max || p.WindSpeed.Min > p.WindSpeed.Max {
			return fmt.Errorf("profile %q: inverted ideal range", p.Key)
		}
		if p.WaterTempFalloff <= 0 || p.WindFalloff <= 0 {
			return fmt.Errorf("profile %q: falloff must be positive", p.Key)
		}
	case domain.TierSimplified:
	case domain.TierBait:
		if p.Bait == nil {
			return fmt.Errorf("profile %q: bait tier without bait preferences", p.Key)
		}
		if math.Abs(p.Bait.Weights.Sum()-1) > 1e-6 {
			return fmt.Errorf("profile %q: bait weights sum to %g, want 1", p.Key, p.Bait.Weights.Sum())
		}
	default:
		return fmt.Errorf("profile %q: unknown tier %q", p.Key, p.Tier)
	}
	return nil
}

// DefaultRegistry builds the registry from the built-in species, bait, and
// dock tables. It panics if the built-in tables are invalid.
func DefaultRegistry() *Registry {
	profiles := append(Species(), Baits()...)
	r, err := NewRegistry(profiles, DockSite())
	if err != nil {
		panic(fmt.Sprintf("built-in profiles: %v", err))
	}
	return r
}

// NormalizeKey lower-cases a species key and folds spaces and dashes to
// underscores, so "Speckled Trout" and "speckled-trout" resolve alike.
func NormalizeKey(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(k)
}

// Lookup returns the profile for key. Unknown keys yield an
// *domain.UnknownSpeciesError carrying the closest registered key.
func (r *Registry) Lookup(key string) (SpeciesProfile, error) {
	k := NormalizeKey(key)
	if p, ok := r.profiles[k]; ok {
		return p, nil
	}
	return SpeciesProfile{}, &domain.UnknownSpeciesError{Key: key, Suggestion: r.suggest(k)}
}

func (r *Registry) suggest(key string) string {
	if len(key) < 3 {
		return ""
	}
	best, bestDist := "", math.MaxInt
	for _, cand := range r.keys {
		dist := levenshtein.ComputeDistance(key, cand)
		if dist > suggestionLimit(len(cand)) {
			continue
		}
		// keys are sorted, so ties keep the alphabetically first candidate
		if dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Keys returns the sorted keys of all profiles in the given tiers, or of all
// profiles when no tier is given.
func (r *Registry) Keys(tiers ...domain.Tier) []string {
	out := make([]string, 0, len(r.keys))
	for _, k := range r.keys {
		if len(tiers) == 0 {
			out = append(out, k)
			continue
		}
		for _, t := range tiers {
			if r.profiles[k].Tier == t {
				out = append(out, k)
				break
			}
		}
	}
	return out
}

// Site returns the site geometry.
func (r *Registry) Site() Site { return r.site }

// Zone returns the geometry for a zone id.
func (r *Registry) Zone(id string) (ZoneGeometry, bool) {
	z, ok := r.zones[id]
	return z, ok
}
