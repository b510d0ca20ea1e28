// Package pipeline drives the two consumer loops of the engine.
//
// The forecast loop reads environment snapshots, scores each one into a
// single forecast against the event window as it stands at scoring time, and
// publishes the forecasts in one write per batch. A snapshot that fails to
// parse or score is logged, counted and committed so it is never redelivered;
// its batch-mates still publish. Offsets of scored snapshots are committed
// only after the forecast write succeeds, so a broker outage replays them.
// The service reports ready once the first forecast has been published.
//
// The ingest loop (see Ingester) feeds catches, predator sightings and bait
// sightings into the event store that every forecast reads from.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/observability"
)

// BatchExtractor reads up to batchSize raw messages from a source topic.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawMessage, error)
}

// Transformer turns one snapshot message into one forecast message.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawMessage) (domain.OutputMessage, error)
}

// BatchLoader writes multiple forecast messages to the sink topic.
type BatchLoader interface {
	LoadBatch(ctx context.Context, msgs []domain.OutputMessage) error
}

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Pipeline is the forecast loop: snapshots in, forecasts out.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil once a forecast has been published.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no forecast has been published yet")
	}
	return nil
}

// Ready reports whether at least one forecast has been published.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Run scores snapshots until ctx is cancelled. Extract and load failures are
// retried with exponential backoff between initialBackoff and maxBackoff.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("forecast loop started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	backoff := initialBackoff
	for ctx.Err() == nil {
		if !p.step(ctx, &backoff) {
			break
		}
	}
	p.logger.Info("forecast loop stopping", "reason", context.Cause(ctx))
	return nil
}

// step handles one batch of snapshots. It returns false when the loop should
// exit.
func (p *Pipeline) step(ctx context.Context, backoff *time.Duration) bool {
	start := time.Now()

	batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	switch {
	case ctx.Err() != nil:
		return false
	case err != nil:
		p.logger.Error("reading snapshots failed", "error", err)
		return backoffOrStop(ctx, backoff, maxBackoff)
	case len(batch) == 0:
		return true
	}
	*backoff = initialBackoff

	p.metrics.MessagesConsumed.Add(float64(len(batch)))
	p.metrics.BatchSize.Observe(float64(len(batch)))

	forecasts, scored := p.score(ctx, batch)
	if len(forecasts) == 0 {
		return true
	}

	if err := p.loader.LoadBatch(ctx, forecasts); err != nil {
		p.logger.Error("publishing forecasts failed", "error", err, "forecasts", len(forecasts))
		return backoffOrStop(ctx, backoff, maxBackoff)
	}
	p.metrics.MessagesProduced.Add(float64(len(forecasts)))
	for _, raw := range scored {
		commitOffset(ctx, p.logger, raw)
	}

	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	if !p.ready.Swap(true) {
		p.logger.Info("first forecast published")
	}
	return true
}

// score transforms each snapshot and returns the forecasts alongside the raw
// messages they came from. Snapshots that cannot be scored are committed here.
func (p *Pipeline) score(ctx context.Context, batch []domain.RawMessage) ([]domain.OutputMessage, []domain.RawMessage) {
	forecasts := make([]domain.OutputMessage, 0, len(batch))
	scored := make([]domain.RawMessage, 0, len(batch))

	for _, raw := range batch {
		out, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("snapshot skipped",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			commitOffset(ctx, p.logger, raw)
			continue
		}
		forecasts = append(forecasts, out)
		scored = append(scored, raw)
	}
	return forecasts, scored
}

// backoffOrStop sleeps for the current backoff and doubles it. It returns
// false if ctx ends first.
func backoffOrStop(ctx context.Context, backoff *time.Duration, limit time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	timer := time.NewTimer(*backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}
	*backoff = min(*backoff*2, limit)
	return true
}

// commitOffset commits raw if it came from a consumer group. Failures are
// logged; the message will be redelivered and deduplicated downstream.
func commitOffset(ctx context.Context, logger *slog.Logger, raw domain.RawMessage) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}
