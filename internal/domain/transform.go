package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidMessage marks messages that can never be processed. The pipeline
// skips them instead of retrying.
var ErrInvalidMessage = errors.New("invalid message")

// ParseSnapshot deserializes an environment snapshot published by the
// collector. Categorical fields are normalized to the lower-case keys the
// profiles use and wind direction to upper-case compass points. A snapshot
// without a capture time takes the message timestamp.
func ParseSnapshot(raw RawMessage) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(raw.Value, &s); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot: %w: %w", ErrInvalidMessage, err)
	}
	if s.CapturedAt.IsZero() {
		s.CapturedAt = raw.Timestamp
	}
	if s.CapturedAt.IsZero() {
		return Snapshot{}, fmt.Errorf("parse snapshot: %w: missing captured_at", ErrInvalidMessage)
	}
	s.CapturedAt = s.CapturedAt.UTC()

	s.TideStage = lower(s.TideStage)
	s.TimeOfDay = lower(s.TimeOfDay)
	s.Pressure = lower(s.Pressure)
	s.Clarity = lower(s.Clarity)
	s.WindDir = strings.ToUpper(strings.TrimSpace(s.WindDir))

	if s.ID == "" {
		s.ID = generateID("snap", s.CapturedAt.Format(time.RFC3339Nano))
	}
	return s, nil
}

// ParseActivityEvent deserializes a user-reported catch or sighting. The
// subject is kept as reported; scoring normalizes it on lookup.
func ParseActivityEvent(raw RawMessage) (ActivityEvent, error) {
	var e ActivityEvent
	if err := json.Unmarshal(raw.Value, &e); err != nil {
		return ActivityEvent{}, fmt.Errorf("parse activity event: %w: %w", ErrInvalidMessage, err)
	}

	e.Kind = EventKind(lower(string(e.Kind)))
	switch e.Kind {
	case EventCatch, EventBaitSighting, EventPredatorSighting:
	default:
		return ActivityEvent{}, fmt.Errorf("parse activity event: %w: unknown kind %q", ErrInvalidMessage, e.Kind)
	}
	e.Subject = strings.TrimSpace(e.Subject)
	e.Zone = strings.TrimSpace(e.Zone)
	if e.Subject == "" || e.Zone == "" {
		return ActivityEvent{}, fmt.Errorf("parse activity event: %w: subject and zone are required", ErrInvalidMessage)
	}
	if e.Quantity < 0 {
		return ActivityEvent{}, fmt.Errorf("parse activity event: %w: negative quantity %d", ErrInvalidMessage, e.Quantity)
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = raw.Timestamp
	}
	e.Timestamp = e.Timestamp.UTC()

	if e.ID == "" {
		e.ID = eventID(e, raw)
	}
	return e, nil
}

// SerializeForecast converts a forecast into a keyed message for the sink
// topic. The key is the snapshot ID so forecasts for one snapshot share a
// partition.
func SerializeForecast(f Forecast) (OutputMessage, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return OutputMessage{}, fmt.Errorf("serialize forecast: %w", err)
	}
	return OutputMessage{
		Key:   []byte(f.SnapshotID),
		Value: data,
		Headers: map[string]string{
			"forecast_id":  f.ID,
			"cold_front":   string(f.ColdFront),
			"content_type": "application/json",
		},
	}, nil
}

// eventID derives an ID for a report that arrived without one. Broker
// messages are identified by their position, so a redelivery keeps its ID
// while two identical reports at the same instant stay distinct. Messages
// without a topic fall back to the report's content.
func eventID(e ActivityEvent, raw RawMessage) string {
	if raw.Topic != "" {
		return generateID(string(e.Kind), raw.Topic, fmt.Sprint(raw.Partition), fmt.Sprint(raw.Offset))
	}
	return generateID(string(e.Kind), e.Subject, e.Zone, e.Timestamp.Format(time.RFC3339Nano), fmt.Sprint(e.Quantity))
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// generateID produces a deterministic ID from key fields, so replaying the
// same message yields the same ID.
func generateID(prefix string, parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return prefix + "-" + hex.EncodeToString(hash[:8])
}
