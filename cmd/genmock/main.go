// Command genmock writes the mock dock-day fixture used by the pipeline and
// integration test suites. Every snapshot and event is passed through the
// domain parsers and the day is replayed through the scoring engine, so the
// printed stats match what the pipeline will produce.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/dock_day_20261016.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
	"github.com/couchcryptid/bite-score-engine/internal/scoring"
	"github.com/couchcryptid/bite-score-engine/internal/store"
)

var baseDate = time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)

// mockDay is the fixture layout.
type mockDay struct {
	Snapshots []domain.Snapshot      `json:"snapshots"`
	Events    []domain.ActivityEvent `json:"events"`
}

// reading is one row of the scenario table. A negative current means the
// sensor dropped out.
type reading struct {
	hour               int
	water, air, tide   float64
	stage              string
	wind               float64
	dir                string
	pressure, sky, tod string
	clarity            string
	current            float64
	lights             bool
}

type report struct {
	hour, minute int
	kind         domain.EventKind
	subject      string
	zone         string
	quantity     int
	tag          string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/mock/dock_day_20261016.json", "output path for the dock-day fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	day, err := buildDay()
	if err != nil {
		return err
	}
	log.Printf("snapshots: %d, events: %d", len(day.Snapshots), len(day.Events))

	if err := writeJSON(*out, day); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s", *out)

	return printStats(day)
}

func buildDay() (mockDay, error) {
	readings := []reading{
		{6, 72, 70, 1.4, domain.TideIncoming, 6, "SSE", domain.PressureFalling, "partly_cloudy", domain.TimeDawn, domain.ClaritySlightlyStained, 0.6, true},
		{9, 73, 74, 2.1, domain.TideIncoming, 8, "S", domain.PressureStable, "partly_cloudy", domain.TimeMorning, domain.ClaritySlightlyStained, 0.8, false},
		{12, 74, 79, 2.6, domain.TideHigh, 10, "SW", domain.PressureStable, "clear", domain.TimeMidday, domain.ClarityClear, 0.2, false},
		{15, 71, 66, 1.9, domain.TideOutgoing, 9, "NNE", domain.PressureRisingSlow, "overcast", domain.TimeAfternoon, domain.ClarityStained, 0.9, false},
		{18, 64, 58, 0.7, domain.TideLow, 16, "N", domain.PressureRisingFast, "clear", domain.TimeEvening, domain.ClarityStained, 0.4, true},
		{21, 61, 54, 0.9, domain.TideSlack, 14, "N", domain.PressureRisingFast, "clear", domain.TimeNight, domain.ClarityMuddy, -1, true},
	}
	reports := []report{
		{6, 20, domain.EventBaitSighting, "live_shrimp", "zone-4", 12, "shrimp"},
		{7, 10, domain.EventCatch, "speckled_trout", "zone-3", 2, "trout"},
		{8, 30, domain.EventCatch, "redfish", "zone-1", 1, "red"},
		{13, 40, domain.EventPredatorSighting, "dolphin", "zone-3", 0, "dolphin"},
		{15, 30, domain.EventBaitSighting, "mud_minnows", "zone-1", 4, "minnows"},
		{16, 5, domain.EventCatch, "sheepshead", "zone-5", 3, "sheeps"},
		{18, 45, domain.EventPredatorSighting, "jack_crevalle", "zone-4", 0, "jacks"},
		{19, 15, domain.EventCatch, "black_drum", "zone-5", 1, "drum"},
	}

	var day mockDay
	for _, r := range readings {
		s := domain.Snapshot{
			ID:           fmt.Sprintf("snap-%s-%02d00", baseDate.Format("20060102"), r.hour),
			CapturedAt:   baseDate.Add(time.Duration(r.hour) * time.Hour),
			WaterTempF:   domain.Float(r.water),
			AirTempF:     domain.Float(r.air),
			TideHeightFt: domain.Float(r.tide),
			TideStage:    r.stage,
			WindSpeedMPH: domain.Float(r.wind),
			WindDir:      r.dir,
			Pressure:     r.pressure,
			Sky:          r.sky,
			TimeOfDay:    r.tod,
			MoonPhase:    "waxing_crescent",
			Clarity:      r.clarity,
			LightsOn:     domain.Bool(r.lights),
		}
		if r.current >= 0 {
			s.CurrentMPH = domain.Float(r.current)
		}
		// Round-trip through the parser so the fixture is exactly what the
		// pipeline accepts.
		data, err := json.Marshal(s)
		if err != nil {
			return mockDay{}, fmt.Errorf("marshal snapshot %s: %w", s.ID, err)
		}
		if _, err := domain.ParseSnapshot(domain.RawMessage{Value: data}); err != nil {
			return mockDay{}, err
		}
		day.Snapshots = append(day.Snapshots, s)
	}

	for _, r := range reports {
		ev := domain.ActivityEvent{
			ID:        fmt.Sprintf("evt-%02d%02d-%s", r.hour, r.minute, r.tag),
			Kind:      r.kind,
			Subject:   r.subject,
			Zone:      r.zone,
			Timestamp: baseDate.Add(time.Duration(r.hour)*time.Hour + time.Duration(r.minute)*time.Minute),
			Quantity:  r.quantity,
		}
		data, err := json.Marshal(ev)
		if err != nil {
			return mockDay{}, fmt.Errorf("marshal event %s: %w", ev.ID, err)
		}
		if _, err := domain.ParseActivityEvent(domain.RawMessage{Value: data}); err != nil {
			return mockDay{}, err
		}
		day.Events = append(day.Events, ev)
	}
	return day, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// printStats replays the day the way the pipeline does and prints the
// numbers the fixture-driven tests assert on.
func printStats(day mockDay) error {
	defer domain.SetClock(nil)

	engine := scoring.New(profile.DefaultRegistry(), profile.DefaultTunables(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	events := store.NewEventStore(6 * time.Hour)

	fmt.Println("\n=== Stats for updating test assertions ===")
	next := 0
	for _, snap := range day.Snapshots {
		// Set a fixed clock at capture time for reproducible forecast IDs.
		domain.SetClock(clockwork.NewFakeClockAt(snap.CapturedAt))
		for next < len(day.Events) && !day.Events[next].Timestamp.After(snap.CapturedAt) {
			events.Add(day.Events[next])
			next++
		}

		now := domain.Now()
		f, err := engine.Forecast(snap, now, events.Window(now))
		if err != nil {
			return fmt.Errorf("forecast %s: %w", snap.ID, err)
		}

		fmt.Printf("\n%s cold_front=%s window=%d\n", snap.ID, f.ColdFront, events.Len())
		for _, sf := range f.Species {
			best := sf.BestZones[0]
			fmt.Printf("  %-16s best=%s %.1f\n", sf.Species, best.Zone, best.Score)
		}
		printTopBait(f.Bait)
	}
	return nil
}

func printTopBait(bait []domain.ScoreBreakdown) {
	top := make([]domain.ScoreBreakdown, len(bait))
	copy(top, bait)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Score > top[j].Score })
	for _, b := range top[:min(3, len(top))] {
		fmt.Printf("  bait %-12s %s %.1f %s\n", b.Species, b.Zone, b.Score, b.Label)
	}
}
