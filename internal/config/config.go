package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers       []string
	KafkaSnapshotTopic string
	KafkaEventTopic    string
	KafkaForecastTopic string
	KafkaGroupID       string
	HTTPAddr           string
	LogLevel           string
	LogFormat          string
	ShutdownTimeout    time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// TunablesPath points at an optional YAML overlay of the scoring
	// tunables. Empty means built-in defaults.
	TunablesPath string

	// SnapshotCacheSize bounds how many recent snapshots are kept for
	// resolving the conditions an activity event was reported under.
	SnapshotCacheSize int

	// EventHorizon is how long activity events stay in the in-memory window.
	// It must cover the longest decay horizon in the tunables.
	EventHorizon time.Duration
}

// EventGroupID is the consumer group for the activity event topic. It is
// separate from the snapshot group so the two readers never rebalance
// against each other.
func (c *Config) EventGroupID() string {
	return c.KafkaGroupID + "-events"
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	horizon, err := parseEventHorizon()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSnapshotTopic: sharedcfg.EnvOrDefault("KAFKA_SNAPSHOT_TOPIC", "environment-snapshots"),
		KafkaEventTopic:    sharedcfg.EnvOrDefault("KAFKA_EVENT_TOPIC", "activity-events"),
		KafkaForecastTopic: sharedcfg.EnvOrDefault("KAFKA_FORECAST_TOPIC", "bite-forecasts"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "bite-score-engine"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
		TunablesPath:       os.Getenv("TUNABLES_PATH"),
		SnapshotCacheSize:  parseSnapshotCacheSize(),
		EventHorizon:       horizon,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSnapshotTopic == "" {
		return nil, errors.New("KAFKA_SNAPSHOT_TOPIC is required")
	}
	if cfg.KafkaEventTopic == "" {
		return nil, errors.New("KAFKA_EVENT_TOPIC is required")
	}
	if cfg.KafkaForecastTopic == "" {
		return nil, errors.New("KAFKA_FORECAST_TOPIC is required")
	}

	return cfg, nil
}

func parseEventHorizon() (time.Duration, error) {
	s := sharedcfg.EnvOrDefault("EVENT_HORIZON", "6h")
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid EVENT_HORIZON %q", s)
	}
	return d, nil
}

func parseSnapshotCacheSize() int {
	if s := os.Getenv("SNAPSHOT_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 96
}
