package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/observability"
)

// EventSink accepts activity events into the window.
type EventSink interface {
	Add(ev domain.ActivityEvent) bool
	Len() int
}

// SnapshotLookup resolves the snapshot that was current at an instant.
type SnapshotLookup interface {
	At(t time.Time) (domain.Snapshot, error)
}

// Ingester consumes activity events into the event window. Unlike the
// forecast pipeline it produces nothing; each message is committed once it
// has been applied or rejected.
type Ingester struct {
	extractor BatchExtractor
	events    EventSink
	snapshots SnapshotLookup
	logger    *slog.Logger
	metrics   *observability.Metrics
	batchSize int
}

// NewIngester creates an Ingester. snapshots may be nil, in which case
// catches keep only the snapshot they were reported with.
func NewIngester(e BatchExtractor, events EventSink, snapshots SnapshotLookup, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Ingester {
	return &Ingester{
		extractor: e,
		events:    events,
		snapshots: snapshots,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// Run consumes events until the context is cancelled.
func (in *Ingester) Run(ctx context.Context) error {
	in.logger.Info("event ingester started", "batch_size", in.batchSize)
	backoff := initialBackoff

	for {
		select {
		case <-ctx.Done():
			in.logger.Info("event ingester stopping", "reason", ctx.Err())
			return nil
		default:
		}

		batch, err := in.extractor.ExtractBatch(ctx, in.batchSize)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			in.logger.Error("extract events failed", "error", err)
			if !backoffOrStop(ctx, &backoff, maxBackoff) {
				return nil
			}
			continue
		}
		backoff = initialBackoff

		for _, raw := range batch {
			in.apply(raw)
			commitOffset(ctx, in.logger, raw)
		}
		if len(batch) > 0 {
			in.metrics.EventWindowSize.Set(float64(in.events.Len()))
		}
	}
}

func (in *Ingester) apply(raw domain.RawMessage) {
	ev, err := domain.ParseActivityEvent(raw)
	if err != nil {
		in.logger.Warn("invalid activity event, skipping message",
			"error", err,
			"topic", raw.Topic,
			"partition", raw.Partition,
			"offset", raw.Offset,
		)
		in.metrics.EventsRejected.Inc()
		return
	}

	if ev.Kind == domain.EventCatch && ev.Snapshot == nil && in.snapshots != nil {
		if snap, err := in.snapshots.At(ev.Timestamp); err == nil {
			ev.Snapshot = &snap
		}
	}

	if !in.events.Add(ev) {
		in.metrics.EventsDuplicate.Inc()
		return
	}
	in.metrics.EventsIngested.WithLabelValues(string(ev.Kind)).Inc()
	in.logger.Debug("activity event ingested",
		"event_id", ev.ID,
		"kind", ev.Kind,
		"subject", ev.Subject,
		"zone", ev.Zone,
	)
}
