// Package scoring turns an environment snapshot and a window of recent
// activity into explainable bite scores. Every function here is a pure
// function of its arguments and the immutable registry and tunables; the
// engine keeps no state between calls and is safe for concurrent use.
package scoring

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
)

// ErrNotBait is returned when ScoreBait is asked to score a fish profile.
var ErrNotBait = errors.New("profile has no bait preferences")

// Engine scores species and bait against a fixed registry and tunables.
type Engine struct {
	registry *profile.Registry
	tunables profile.Tunables
	logger   *slog.Logger
}

// New creates an engine. The tunables must already be validated.
func New(registry *profile.Registry, tunables profile.Tunables, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{registry: registry, tunables: tunables, logger: logger}
}

// Registry returns the profile registry the engine scores against.
func (e *Engine) Registry() *profile.Registry { return e.registry }

func (e *Engine) zone(id string) (profile.ZoneGeometry, error) {
	z, ok := e.registry.Zone(id)
	if !ok {
		return profile.ZoneGeometry{}, fmt.Errorf("%w %q", domain.ErrUnknownZone, id)
	}
	return z, nil
}

// SeasonalBaseline returns the baseline and label for a species on a date.
func (e *Engine) SeasonalBaseline(species string, date time.Time) (float64, string, error) {
	p, err := e.registry.Lookup(species)
	if err != nil {
		return 0, "", err
	}
	v, label := Baseline(p.PresenceFactor(int(date.Month())))
	return v, label, nil
}

// ScoreSpecies composes baseline, environment, recent activity, and predator
// penalty into a clamped 0-100 score. Recent activity applies to
// full-analytics species only, then attaches the expected depth and
// behavior for the current wind. Bait keys are scored with the bait formula.
// The seasonal baseline uses the month of now.
func (e *Engine) ScoreSpecies(species, zoneID string, snap domain.Snapshot, now time.Time, window domain.EventWindow) (domain.ScoreBreakdown, error) {
	p, err := e.registry.Lookup(species)
	if err != nil {
		return domain.ScoreBreakdown{}, err
	}
	if p.Tier == domain.TierBait {
		return e.ScoreBait(species, zoneID, snap, now, window)
	}
	z, err := e.zone(zoneID)
	if err != nil {
		return domain.ScoreBreakdown{}, err
	}

	baseline, baselineLabel := Baseline(p.PresenceFactor(int(now.Month())))

	var env envResult
	if p.IsFull() {
		env = fullEnvironment(p, snap)
	} else {
		env = simplifiedEnvironment(p, snap, z)
	}

	conf := bucketConfidence(window, p.Key, z.ID, snap.ConditionBucket(), e.tunables.Confidence)
	// Simplified species score from season, conditions, and structure only.
	var activity activityResult
	if p.IsFull() {
		activity = recentActivity(p.Key, z.ID, conf, now, window, e.tunables)
	}

	var penalty float64
	if p.Prey && p.IsFull() {
		penalty = predatorPenalty(z.ID, e.tunables.PredatorMagnitude(p), now, window, e.tunables.Predator)
	}

	score := round1(clamp(baseline+env.total+activity.bonus+penalty, 0, 100))
	db := depthBehavior(p, snap.Wind(), snap.Temps(), z, e.registry.Site().MaxDepthFt, e.tunables.ColdFront)

	e.logMissing(p.Key, z.ID, env.warnings)

	return domain.ScoreBreakdown{
		Species:          p.Key,
		Zone:             z.ID,
		Tier:             p.Tier,
		SeasonalBaseline: baseline,
		BaselineLabel:    baselineLabel,
		Environment:      round1(env.total),
		Factors:          roundFactors(env.factors),
		RecentActivity:   round1(activity.bonus),
		RecentCatches:    activity.catches,
		PredatorPenalty:  round1(penalty),
		Confidence:       conf,
		ColdFront:        db.state,
		Depth:            db.depth,
		DepthClass:       db.class,
		Behavior:         db.behavior,
		Warnings:         env.warnings,
		Score:            score,
		Label:            BiteLabel(score),
	}, nil
}

// ScoreBait scores a forage species in a zone with the multiplicative bait
// formula.
func (e *Engine) ScoreBait(bait, zoneID string, snap domain.Snapshot, now time.Time, window domain.EventWindow) (domain.ScoreBreakdown, error) {
	p, err := e.registry.Lookup(bait)
	if err != nil {
		return domain.ScoreBreakdown{}, err
	}
	if p.Bait == nil {
		return domain.ScoreBreakdown{}, fmt.Errorf("score bait %q: %w", p.Key, ErrNotBait)
	}
	z, err := e.zone(zoneID)
	if err != nil {
		return domain.ScoreBreakdown{}, err
	}

	baseline, baselineLabel := Baseline(p.PresenceFactor(int(now.Month())))
	res := scoreBait(p, baseline, snap, z, now, window, e.tunables.Bait)
	score := round1(res.score)
	e.logMissing(p.Key, z.ID, res.warnings)

	factors := res.factors
	return domain.ScoreBreakdown{
		Species:          p.Key,
		Zone:             z.ID,
		Tier:             p.Tier,
		SeasonalBaseline: baseline,
		BaselineLabel:    baselineLabel,
		ColdFront:        domain.ColdFrontNone,
		Depth:            p.NormalDepth,
		DepthClass:       DepthDescription(p.NormalDepth),
		Behavior:         p.Behavior,
		Bait:             &factors,
		Warnings:         res.warnings,
		Score:            score,
		Label:            BiteLabel(score),
	}, nil
}

// RankZones orders zone scores for display. See the package-level RankZones.
func (e *Engine) RankZones(scores []domain.ZoneScore) []domain.ZoneScore {
	return RankZones(scores)
}

// DepthBehavior returns where a species is expected to hold in a zone under
// the given wind and temperatures, and how to describe it.
func (e *Engine) DepthBehavior(species string, wind domain.Wind, temps domain.Temps, zone profile.ZoneGeometry) (domain.DepthRange, string, error) {
	p, err := e.registry.Lookup(species)
	if err != nil {
		return domain.DepthRange{}, "", err
	}
	db := depthBehavior(p, wind, temps, zone, e.registry.Site().MaxDepthFt, e.tunables.ColdFront)
	return db.depth, db.behavior, nil
}

// SiteColdFront classifies the cold-front state for the whole site, using the
// site's average depth.
func (e *Engine) SiteColdFront(snap domain.Snapshot) domain.ColdFront {
	return ClassifyColdFront(snap.Wind(), snap.Temps(), e.registry.Site().AverageDepthFt, e.tunables.ColdFront)
}

// BestZones scores a species in every zone of the site and ranks them. Under
// a strong cold front the zones' cold-front adjustments shift the ranking
// scores; the per-zone breakdowns are returned unadjusted.
func (e *Engine) BestZones(species string, snap domain.Snapshot, now time.Time, window domain.EventWindow) ([]domain.ZoneScore, []domain.ScoreBreakdown, error) {
	site := e.registry.Site()
	breakdowns := make([]domain.ScoreBreakdown, 0, len(site.Zones))
	scores := make([]domain.ZoneScore, 0, len(site.Zones))
	for _, z := range site.Zones {
		b, err := e.ScoreSpecies(species, z.ID, snap, now, window)
		if err != nil {
			return nil, nil, err
		}
		breakdowns = append(breakdowns, b)
		scores = append(scores, domain.ZoneScore{Zone: z.ID, Score: b.Score})
	}
	adjusted := ApplyColdFront(scores, site, e.SiteColdFront(snap))
	return RankZones(adjusted), breakdowns, nil
}

// Forecast scores every fish species in every zone and the bait board for
// one snapshot, all against the same reference instant.
func (e *Engine) Forecast(snap domain.Snapshot, now time.Time, window domain.EventWindow) (domain.Forecast, error) {
	f := domain.Forecast{
		ID:          domain.ForecastID(snap.ID, now),
		SnapshotID:  snap.ID,
		SnapshotAt:  snap.CapturedAt,
		GeneratedAt: now,
		ColdFront:   e.SiteColdFront(snap),
	}
	for _, key := range e.registry.Keys(domain.TierFull, domain.TierSimplified) {
		best, zones, err := e.BestZones(key, snap, now, window)
		if err != nil {
			return domain.Forecast{}, fmt.Errorf("forecast %s: %w", key, err)
		}
		f.Species = append(f.Species, domain.SpeciesForecast{Species: key, Zones: zones, BestZones: best})
	}
	for _, key := range e.registry.Keys(domain.TierBait) {
		for _, z := range e.registry.Site().Zones {
			b, err := e.ScoreBait(key, z.ID, snap, now, window)
			if err != nil {
				return domain.Forecast{}, fmt.Errorf("forecast %s: %w", key, err)
			}
			f.Bait = append(f.Bait, b)
		}
	}
	return f, nil
}

func (e *Engine) logMissing(species, zone string, warnings []domain.MissingSnapshotFieldWarning) {
	for _, w := range warnings {
		e.logger.Debug("missing snapshot field",
			"species", species,
			"zone", zone,
			"field", w.Field,
		)
	}
}

func roundFactors(f domain.Factors) domain.Factors {
	return domain.Factors{
		Temperature: round1(f.Temperature),
		Tide:        round1(f.Tide),
		Wind:        round1(f.Wind),
		TimeOfDay:   round1(f.TimeOfDay),
		Pressure:    round1(f.Pressure),
		Condition:   round1(f.Condition),
		Structure:   round1(f.Structure),
	}
}
