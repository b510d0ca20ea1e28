package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/observability"
	"github.com/couchcryptid/bite-score-engine/internal/scoring"
)

// SnapshotSink records parsed snapshots for later lookups.
type SnapshotSink interface {
	Put(snap domain.Snapshot)
}

// WindowSource hands out the current event window.
type WindowSource interface {
	Window(now time.Time) domain.EventWindow
}

// ForecastTransformer implements Transformer: it parses a snapshot, scores a
// full forecast against the current event window, and serializes it.
type ForecastTransformer struct {
	engine    *scoring.Engine
	snapshots SnapshotSink
	events    WindowSource
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewTransformer creates a ForecastTransformer.
func NewTransformer(engine *scoring.Engine, snapshots SnapshotSink, events WindowSource, metrics *observability.Metrics, logger *slog.Logger) *ForecastTransformer {
	return &ForecastTransformer{
		engine:    engine,
		snapshots: snapshots,
		events:    events,
		metrics:   metrics,
		logger:    logger,
	}
}

// Transform reads the clock once and uses that instant for every decay
// calculation in the forecast.
func (t *ForecastTransformer) Transform(_ context.Context, raw domain.RawMessage) (domain.OutputMessage, error) {
	snap, err := domain.ParseSnapshot(raw)
	if err != nil {
		return domain.OutputMessage{}, err
	}
	t.snapshots.Put(snap)

	now := domain.Now()
	window := t.events.Window(now)

	start := time.Now()
	f, err := t.engine.Forecast(snap, now, window)
	if err != nil {
		return domain.OutputMessage{}, err
	}
	t.metrics.ForecastDuration.Observe(time.Since(start).Seconds())
	t.metrics.SetColdFront(f.ColdFront)

	missing := missingFields(f)
	for _, field := range missing {
		t.metrics.MissingFields.WithLabelValues(field).Inc()
	}

	t.logger.Info("forecast scored",
		"snapshot_id", snap.ID,
		"forecast_id", f.ID,
		"cold_front", f.ColdFront,
		"events", len(window.Events),
		"missing_fields", missing,
	)

	return domain.SerializeForecast(f)
}

// missingFields lists each absent snapshot field once per forecast.
func missingFields(f domain.Forecast) []string {
	seen := map[string]bool{}
	add := func(b domain.ScoreBreakdown) {
		for _, w := range b.Warnings {
			seen[w.Field] = true
		}
	}
	for _, sf := range f.Species {
		for _, b := range sf.Zones {
			add(b)
		}
	}
	for _, b := range f.Bait {
		add(b)
	}

	fields := make([]string, 0, len(seen))
	for field := range seen {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
