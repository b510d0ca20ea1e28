package domain

import (
	"context"
	"time"
)

// EventKind distinguishes the user-reported activity streams.
type EventKind string

const (
	EventCatch            EventKind = "catch"
	EventBaitSighting     EventKind = "bait_sighting"
	EventPredatorSighting EventKind = "predator_sighting"
)

// ActivityEvent is a single user report. Events are append-only; the engine
// only reads the ones inside its decay horizons.
type ActivityEvent struct {
	ID        string    `json:"id"`
	Kind      EventKind `json:"kind"`
	Subject   string    `json:"subject"` // species, bait, or predator key
	Zone      string    `json:"zone"`
	Timestamp time.Time `json:"timestamp"`
	Quantity  int       `json:"quantity,omitempty"` // catches and bait sightings only

	// Snapshot is the environment captured when the event was reported. It
	// decides which condition bucket the event's confidence comes from.
	Snapshot *Snapshot `json:"snapshot,omitempty"`
}

// AgeHours returns the event's age relative to now in fractional hours.
// Events stamped after now have a negative age.
func (e ActivityEvent) AgeHours(now time.Time) float64 {
	return now.Sub(e.Timestamp).Hours()
}

// ObservationKey identifies one (species, zone, condition bucket) combination.
type ObservationKey struct {
	Species string
	Zone    string
	Bucket  string
}

// EventWindow is the time-bounded slice of events plus the historical
// observation counts handed to the engine for one computation.
type EventWindow struct {
	Events       []ActivityEvent
	Observations map[ObservationKey]int
}

// Count returns the number of historical observations for key.
func (w EventWindow) Count(key ObservationKey) int {
	return w.Observations[key]
}

// RawMessage represents an unprocessed message from a source topic.
type RawMessage struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputMessage is the serialized form destined for the sink topic.
type OutputMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
