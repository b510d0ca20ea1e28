//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/bite-score-engine/internal/adapter/kafka"
	"github.com/couchcryptid/bite-score-engine/internal/config"
	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/observability"
	"github.com/couchcryptid/bite-score-engine/internal/pipeline"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
	"github.com/couchcryptid/bite-score-engine/internal/scoring"
	"github.com/couchcryptid/bite-score-engine/internal/store"
)

const (
	testSnapshotTopic = "test-snapshots"
	testEventTopic    = "test-events"
	testForecastTopic = "test-forecasts"
)

// forecastMessage holds a deserialized message read from the forecast topic.
type forecastMessage struct {
	Forecast domain.Forecast
	Key      string
	Headers  map[string]string
}

func testConfig(broker, group string) *config.Config {
	return &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSnapshotTopic: testSnapshotTopic,
		KafkaEventTopic:    testEventTopic,
		KafkaForecastTopic: testForecastTopic,
		KafkaGroupID:       fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}
}

func createTopics(t *testing.T, broker string) {
	t.Helper()
	for _, topic := range []string{testSnapshotTopic, testEventTopic, testForecastTopic} {
		createTopic(t, broker, topic)
	}
}

func newEngine() *scoring.Engine {
	return scoring.New(profile.DefaultRegistry(), profile.DefaultTunables(), discardLogger())
}

// pinClock fixes the engine's reference instant for the rest of the test.
func pinClock(t *testing.T, at time.Time) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { domain.SetClock(nil) })
}

func publish(ctx context.Context, t *testing.T, broker, topic string, msgs ...kafkago.Message) {
	t.Helper()
	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: topic}
	defer producer.Close()
	require.NoError(t, producer.WriteMessages(ctx, msgs...))
}

func newForecastConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testForecastTopic,
		GroupID:     fmt.Sprintf("test-forecasts-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

// readForecast reads a single message from the forecast consumer and deserializes it.
func readForecast(ctx context.Context, t *testing.T, consumer *kafkago.Reader) forecastMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from forecast topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var f domain.Forecast
	require.NoError(t, json.Unmarshal(msg.Value, &f), "unmarshal forecast")

	return forecastMessage{Forecast: f, Key: string(msg.Key), Headers: headers}
}

func speciesZone(t *testing.T, f domain.Forecast, species, zone string) domain.ScoreBreakdown {
	t.Helper()
	for _, sf := range f.Species {
		if sf.Species != species {
			continue
		}
		for _, b := range sf.Zones {
			if b.Zone == zone {
				return b
			}
		}
	}
	t.Fatalf("forecast %s has no %s in %s", f.SnapshotID, species, zone)
	return domain.ScoreBreakdown{}
}

// TestKafkaReaderWriter verifies the adapter layer: a snapshot read by the
// snapshot reader and scored by the transformer round-trips to the forecast
// topic through the writer.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopics(t, broker)
	cfg := testConfig(broker, "test-reader")

	day := loadMockData(t)
	payload := day.Snapshots[4] // 18:00, strong cold front
	pinClock(t, time.Date(2026, time.October, 16, 18, 0, 0, 0, time.UTC))

	publish(ctx, t, broker, testSnapshotTopic, kafkago.Message{Key: []byte("dock"), Value: payload})

	// Retry because the consumer group may need time to rebalance before
	// partitions are assigned and messages become available.
	reader := kafka.NewSnapshotReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawMessage
	for {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if len(batch) > 0 {
			break
		}
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for snapshot")
		}
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("dock"), raw.Key)
	assert.JSONEq(t, string(payload), string(raw.Value))
	assert.Equal(t, testSnapshotTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")
	require.NoError(t, raw.Commit(ctx))

	transformer := pipeline.NewTransformer(newEngine(), store.NewSnapshotStore(8), store.NewEventStore(6*time.Hour),
		observability.NewMetricsForTesting(), discardLogger())
	out, err := transformer.Transform(ctx, raw)
	require.NoError(t, err)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.LoadBatch(ctx, []domain.OutputMessage{out}))

	fm := readForecast(ctx, t, newForecastConsumer(t, broker))
	assert.Equal(t, "snap-20261016-1800", fm.Key)
	assert.Equal(t, "strong", fm.Headers["cold_front"])
	assert.Equal(t, fm.Forecast.ID, fm.Headers["forecast_id"])
	assert.Equal(t, "application/json", fm.Headers["content_type"])

	assert.Equal(t, domain.ColdFrontStrong, fm.Forecast.ColdFront)
	assert.Len(t, fm.Forecast.Species, 10)
	assert.Len(t, fm.Forecast.Bait, 30)
	trout := speciesZone(t, fm.Forecast, "speckled_trout", "zone-3")
	assert.Equal(t, domain.DepthRange{MinFt: 5, MaxFt: 7}, trout.Depth)
}

// TestPipelineEndToEnd wires event ingestion and the forecast pipeline with
// real Kafka, replays the mock dock day, and checks every forecast.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopics(t, broker)
	cfg := testConfig(broker, "test-pipeline")

	// Every forecast is scored at the end of the day, so the window holds
	// the events from the last six hours.
	pinClock(t, time.Date(2026, time.October, 16, 21, 0, 0, 0, time.UTC))

	day := loadMockData(t)
	eventMsgs := make([]kafkago.Message, 0, len(day.Events))
	for _, ev := range day.Events {
		eventMsgs = append(eventMsgs, kafkago.Message{Value: ev})
	}
	// Publish every event twice; the store must dedupe the replay.
	publish(ctx, t, broker, testEventTopic, append(eventMsgs, eventMsgs...)...)

	engine := newEngine()
	snapshots := store.NewSnapshotStore(96)
	events := store.NewEventStore(6 * time.Hour)
	metrics := observability.NewMetricsForTesting()

	eventReader := kafka.NewEventReader(cfg, discardLogger())
	t.Cleanup(func() { _ = eventReader.Close() })
	snapshotReader := kafka.NewSnapshotReader(cfg, discardLogger())
	t.Cleanup(func() { _ = snapshotReader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	ingester := pipeline.NewIngester(eventReader, events, snapshots, discardLogger(), metrics, 50)
	transformer := pipeline.NewTransformer(engine, snapshots, events, metrics, discardLogger())
	p := pipeline.New(snapshotReader, transformer, writer, discardLogger(), metrics, 50)

	runCtx, runCancel := context.WithCancel(ctx)
	errCh := make(chan error, 2)
	go func() { errCh <- ingester.Run(runCtx) }()

	require.Eventually(t, func() bool { return events.Len() == len(day.Events) },
		60*time.Second, 100*time.Millisecond, "events ingested")

	snapMsgs := make([]kafkago.Message, 0, len(day.Snapshots))
	for _, s := range day.Snapshots {
		snapMsgs = append(snapMsgs, kafkago.Message{Value: s})
	}
	publish(ctx, t, broker, testSnapshotTopic, snapMsgs...)

	go func() { errCh <- p.Run(runCtx) }()

	consumer := newForecastConsumer(t, broker)
	received := make(map[string]forecastMessage, len(day.Snapshots))
	for len(received) < len(day.Snapshots) {
		fm := readForecast(ctx, t, consumer)
		received[fm.Key] = fm
	}
	assert.True(t, p.Ready())

	runCancel()
	require.NoError(t, <-errCh)
	require.NoError(t, <-errCh)

	wantColdFront := map[string]domain.ColdFront{
		"snap-20261016-0600": domain.ColdFrontNone,
		"snap-20261016-0900": domain.ColdFrontNone,
		"snap-20261016-1200": domain.ColdFrontNone,
		"snap-20261016-1500": domain.ColdFrontModerate,
		"snap-20261016-1800": domain.ColdFrontStrong,
		"snap-20261016-2100": domain.ColdFrontStrong,
	}
	for id, want := range wantColdFront {
		fm, ok := received[id]
		require.True(t, ok, "forecast for %s", id)
		assert.Equal(t, want, fm.Forecast.ColdFront, id)
		assert.Equal(t, string(want), fm.Headers["cold_front"], id)

		// Catches within six hours of 21:00 lift zone-5 in every forecast;
		// the morning catches have aged out.
		assert.Equal(t, 1, speciesZone(t, fm.Forecast, "black_drum", "zone-5").RecentCatches, id)
		assert.Equal(t, 1, speciesZone(t, fm.Forecast, "sheepshead", "zone-5").RecentCatches, id)
		assert.Zero(t, speciesZone(t, fm.Forecast, "speckled_trout", "zone-3").RecentCatches, id)
	}
}

// TestPipelineTransformError verifies that an invalid snapshot (poison pill)
// is skipped and the pipeline continues processing valid messages.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopics(t, broker)
	cfg := testConfig(broker, "test-poison")
	pinClock(t, time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC))

	day := loadMockData(t)
	publish(ctx, t, broker, testSnapshotTopic,
		kafkago.Message{Key: []byte("bad"), Value: []byte("not-json{{{")},
		kafkago.Message{Key: []byte("good"), Value: day.Snapshots[1]},
	)

	reader := kafka.NewSnapshotReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	transformer := pipeline.NewTransformer(newEngine(), store.NewSnapshotStore(8), store.NewEventStore(6*time.Hour),
		observability.NewMetricsForTesting(), discardLogger())
	p := pipeline.New(reader, transformer, writer, discardLogger(), observability.NewMetricsForTesting(), 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := newForecastConsumer(t, broker)
	fm := readForecast(ctx, t, consumer)
	assert.Equal(t, "snap-20261016-0900", fm.Key)
	assert.Equal(t, domain.ColdFrontNone, fm.Forecast.ColdFront)

	// Verify no second message arrives (the poison pill was skipped).
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on forecast topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}
