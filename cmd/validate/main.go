// Command validate performs end-to-end integrity checks on the data the
// engine ships with and is tested against: the built-in profile registry, a
// tunables overlay, and the mock dock-day fixture. The fixture is replayed
// through the scoring engine and every forecast is checked for range,
// labeling, ranking, and determinism.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -fixture data/mock/dock_day_20261016.json \
//	  -tunables deploy/tunables.yaml
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
	"github.com/couchcryptid/bite-score-engine/internal/scoring"
	"github.com/couchcryptid/bite-score-engine/internal/store"
)

const (
	wantFishSpecies = 10
	wantBaitSpecies = 6
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// fixture is the dock-day layout written by cmd/genmock.
type fixture struct {
	Snapshots []json.RawMessage `json:"snapshots"`
	Events    []json.RawMessage `json:"events"`
}

func main() {
	fixturePath := flag.String("fixture", "data/mock/dock_day_20261016.json", "path to the dock-day fixture")
	tunablesPath := flag.String("tunables", "", "optional tunables YAML overlay to validate and score with")
	flag.Parse()

	if *fixturePath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*fixturePath, *tunablesPath, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(fixturePath, tunablesPath string, out io.Writer) int {
	fmt.Fprintln(out, "=== Bite Score Integrity Validation ===")
	fmt.Fprintln(out)

	fx, err := loadFixture(fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
		return 1
	}

	tunablesPhase, tunables := validateTunables(tunablesPath)
	registryPhase, registry := validateRegistry()
	parsePhase, snaps, events := validateFixture(fx, registry)

	phases := []*phase{tunablesPhase, registryPhase, parsePhase}
	if registryPhase.passed() && tunablesPhase.passed() && parsePhase.passed() {
		phases = append(phases, validateScoring(registry, tunables, snaps, events))
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Fixture: %d snapshots, %d events\n", len(fx.Snapshots), len(fx.Events))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func loadFixture(path string) (fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixture{}, err
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return fixture{}, err
	}
	return fx, nil
}

// ── Phase 1: Tunables ──

func validateTunables(path string) (*phase, profile.Tunables) {
	p := &phase{name: "Tunables"}
	t, err := profile.LoadTunables(path)
	if err != nil {
		p.errorf("%v", err)
		return p, profile.DefaultTunables()
	}
	return p, t
}

// ── Phase 2: Profile registry ──

func validateRegistry() (*phase, *profile.Registry) {
	p := &phase{name: "Profile registry"}

	reg, err := profile.NewRegistry(append(profile.Species(), profile.Baits()...), profile.DockSite())
	if err != nil {
		p.errorf("build registry: %v", err)
		return p, profile.DefaultRegistry()
	}

	if n := len(reg.Keys(domain.TierFull, domain.TierSimplified)); n != wantFishSpecies {
		p.errorf("fish species: got %d, want %d", n, wantFishSpecies)
	}
	if n := len(reg.Keys(domain.TierBait)); n != wantBaitSpecies {
		p.errorf("bait species: got %d, want %d", n, wantBaitSpecies)
	}

	for _, key := range reg.Keys() {
		sp, _ := reg.Lookup(key)
		var peak float64
		for _, v := range sp.Seasonality {
			peak = max(peak, v)
		}
		if peak == 0 {
			p.errorf("%s: never present in any month", key)
		}
		if sp.NormalDepth.MaxFt > reg.Site().MaxDepthFt {
			p.errorf("%s: normal depth %s deeper than site max %d ft", key, sp.NormalDepth, reg.Site().MaxDepthFt)
		}
		if sp.Bait != nil {
			if sum := sp.Bait.Weights.Sum(); sum < 0.999 || sum > 1.001 {
				p.errorf("%s: bait weights sum to %.3f", key, sum)
			}
		}
	}

	for _, z := range reg.Site().Zones {
		if z.AverageDepthFt < z.MinDepthFt || z.AverageDepthFt > z.MaxDepthFt {
			p.errorf("%s: average depth %.1f outside %.1f-%.1f", z.ID, z.AverageDepthFt, z.MinDepthFt, z.MaxDepthFt)
		}
	}
	return p, reg
}

// ── Phase 3: Fixture parsing ──

func validateFixture(fx fixture, reg *profile.Registry) (*phase, []domain.Snapshot, []domain.ActivityEvent) {
	p := &phase{name: "Fixture parsing"}

	snaps := make([]domain.Snapshot, 0, len(fx.Snapshots))
	seen := map[string]bool{}
	for i, raw := range fx.Snapshots {
		s, err := domain.ParseSnapshot(domain.RawMessage{Value: raw})
		if err != nil {
			p.errorf("snapshot %d: %v", i, err)
			continue
		}
		if seen[s.ID] {
			p.errorf("snapshot %d: duplicate id %s", i, s.ID)
		}
		seen[s.ID] = true
		snaps = append(snaps, s)
	}
	if !sort.SliceIsSorted(snaps, func(i, j int) bool { return snaps[i].CapturedAt.Before(snaps[j].CapturedAt) }) {
		p.errorf("snapshots are not in capture order")
	}

	events := make([]domain.ActivityEvent, 0, len(fx.Events))
	for i, raw := range fx.Events {
		ev, err := domain.ParseActivityEvent(domain.RawMessage{Value: raw})
		if err != nil {
			p.errorf("event %d: %v", i, err)
			continue
		}
		if seen[ev.ID] {
			p.errorf("event %d: duplicate id %s", i, ev.ID)
		}
		seen[ev.ID] = true
		if _, ok := reg.Zone(ev.Zone); !ok {
			p.errorf("event %s: unknown zone %q", ev.ID, ev.Zone)
		}
		// Predator sightings may name animals with no profile, such as dolphins.
		if ev.Kind != domain.EventPredatorSighting {
			if _, err := reg.Lookup(ev.Subject); err != nil {
				p.errorf("event %s: %v", ev.ID, err)
			}
		}
		events = append(events, ev)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Timestamp.Before(events[j].Timestamp) })
	return p, snaps, events
}

// ── Phase 4: Scoring replay ──

func validateScoring(reg *profile.Registry, tunables profile.Tunables, snaps []domain.Snapshot, events []domain.ActivityEvent) *phase {
	p := &phase{name: "Scoring replay"}
	defer domain.SetClock(nil)

	engine := scoring.New(reg, tunables, slog.New(slog.NewTextHandler(io.Discard, nil)))
	window := store.NewEventStore(time.Duration(tunables.RecentActivity.HorizonHours * float64(time.Hour)))

	next := 0
	for _, snap := range snaps {
		domain.SetClock(clockwork.NewFakeClockAt(snap.CapturedAt))
		for next < len(events) && !events[next].Timestamp.After(snap.CapturedAt) {
			window.Add(events[next])
			next++
		}
		now := domain.Now()
		w := window.Window(now)

		f, err := engine.Forecast(snap, now, w)
		if err != nil {
			p.errorf("%s: %v", snap.ID, err)
			continue
		}
		again, err := engine.Forecast(snap, now, w)
		if err != nil {
			p.errorf("%s: %v", snap.ID, err)
			continue
		}
		if diff := cmp.Diff(f, again); diff != "" {
			p.errorf("%s: forecast not deterministic:\n%s", snap.ID, diff)
		}
		checkForecast(p, reg, f)
	}
	return p
}

func checkForecast(p *phase, reg *profile.Registry, f domain.Forecast) {
	all := make([]domain.ScoreBreakdown, 0, len(f.Bait)+len(f.Species)*len(reg.Site().Zones))
	all = append(all, f.Bait...)
	for _, sf := range f.Species {
		all = append(all, sf.Zones...)
		for i := 1; i < len(sf.BestZones); i++ {
			if sf.BestZones[i-1].Score < sf.BestZones[i].Score {
				p.errorf("%s %s: best zones out of order at %d", f.SnapshotID, sf.Species, i)
			}
		}
	}
	for _, b := range all {
		if b.Score < 0 || b.Score > 100 {
			p.errorf("%s %s/%s: score %.1f out of range", f.SnapshotID, b.Species, b.Zone, b.Score)
		}
		if want := scoring.BiteLabel(b.Score); b.Label != want {
			p.errorf("%s %s/%s: label %s for score %.1f, want %s", f.SnapshotID, b.Species, b.Zone, b.Label, b.Score, want)
		}
		if b.Depth.MinFt > b.Depth.MaxFt || b.Depth.MaxFt > reg.Site().MaxDepthFt {
			p.errorf("%s %s/%s: depth %s invalid", f.SnapshotID, b.Species, b.Zone, b.Depth)
		}
	}
}
