// Command score runs the scoring engine offline against a snapshot file and
// prints the result as JSON. It is meant for tuning profiles and tunables
// without a broker.
//
// Usage:
//
//	go run ./cmd/score -snapshot snap.json [-events events.json] [-species redfish] [-zone zone-1]
//	go run ./cmd/score -species flounder -at 2026-11-01T00:00:00Z
//
// With a species and a zone it prints one breakdown; with only a species it
// prints the zone ranking; with neither it prints a full forecast. Without a
// snapshot it prints the species' seasonal baseline for -at.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
	"github.com/couchcryptid/bite-score-engine/internal/scoring"
	"github.com/couchcryptid/bite-score-engine/internal/store"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	snapshot string
	events   string
	species  string
	zone     string
	at       string
	tunables string
	horizon  time.Duration
	verbose  bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.StringVar(&o.snapshot, "snapshot", "", "path to an environment snapshot JSON file")
	fs.StringVar(&o.events, "events", "", "path to a JSON array of activity events")
	fs.StringVar(&o.species, "species", "", "species or bait key to score")
	fs.StringVar(&o.zone, "zone", "", "zone id to score (requires -species)")
	fs.StringVar(&o.at, "at", "", "reference instant, RFC3339 (default: snapshot capture time)")
	fs.StringVar(&o.tunables, "tunables", "", "path to a tunables YAML overlay")
	fs.DurationVar(&o.horizon, "horizon", 6*time.Hour, "event retention horizon")
	fs.BoolVar(&o.verbose, "v", false, "log missing snapshot fields")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.zone != "" && o.species == "" {
		return options{}, errors.New("-zone requires -species")
	}
	if o.snapshot == "" && o.species == "" {
		fs.Usage()
		return options{}, errors.New("missing required flag: -snapshot or -species")
	}
	return o, nil
}

func run(args []string, stdout io.Writer) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	tunables, err := profile.LoadTunables(o.tunables)
	if err != nil {
		return err
	}
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	engine := scoring.New(profile.DefaultRegistry(), tunables, logger)

	if o.snapshot == "" {
		at, err := parseAt(o.at, time.Now().UTC())
		if err != nil {
			return err
		}
		v, label, err := engine.SeasonalBaseline(o.species, at)
		if err != nil {
			return err
		}
		return writeJSON(stdout, map[string]any{
			"species":  profile.NormalizeKey(o.species),
			"month":    at.Month().String(),
			"baseline": v,
			"label":    label,
		})
	}

	snap, err := readSnapshot(o.snapshot)
	if err != nil {
		return err
	}
	now, err := parseAt(o.at, snap.CapturedAt)
	if err != nil {
		return err
	}
	// Pin the clock so IDs and generated_at are reproducible between runs.
	domain.SetClock(clockwork.NewFakeClockAt(now))
	defer domain.SetClock(nil)

	window, err := readWindow(o.events, o.horizon, now)
	if err != nil {
		return err
	}

	switch {
	case o.zone != "":
		b, err := engine.ScoreSpecies(o.species, o.zone, snap, now, window)
		if err != nil {
			return err
		}
		return writeJSON(stdout, b)
	case o.species != "":
		ranked, zones, err := engine.BestZones(o.species, snap, now, window)
		if err != nil {
			return err
		}
		return writeJSON(stdout, domain.SpeciesForecast{
			Species:   profile.NormalizeKey(o.species),
			Zones:     zones,
			BestZones: ranked,
		})
	default:
		f, err := engine.Forecast(snap, domain.Now(), window)
		if err != nil {
			return err
		}
		return writeJSON(stdout, f)
	}
}

func parseAt(v string, def time.Time) (time.Time, error) {
	if v == "" {
		return def, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -at %q: %w", v, err)
	}
	return t.UTC(), nil
}

func readSnapshot(path string) (domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return domain.ParseSnapshot(domain.RawMessage{Value: data})
}

// readWindow loads events through the same store the service uses, so
// duplicates and events past the horizon are dropped identically.
func readWindow(path string, horizon time.Duration, now time.Time) (domain.EventWindow, error) {
	events := store.NewEventStore(horizon)
	if path == "" {
		return events.Window(now), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.EventWindow{}, fmt.Errorf("read events: %w", err)
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return domain.EventWindow{}, fmt.Errorf("parse events: %w", err)
	}
	for i, raw := range raws {
		ev, err := domain.ParseActivityEvent(domain.RawMessage{Value: raw, Timestamp: now})
		if err != nil {
			return domain.EventWindow{}, fmt.Errorf("event %d: %w", i, err)
		}
		events.Add(ev)
	}
	return events.Window(now), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
