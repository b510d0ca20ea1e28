package store

import (
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
)

// EventStore holds activity events inside the horizon and the running
// observation counts that back confidence weighting. Events older than the
// horizon are pruned; observation counts are never pruned, and neither are
// the ids of the catches that fed them, so a redelivered catch is counted
// once no matter how late it arrives.
type EventStore struct {
	horizon time.Duration

	mu           sync.Mutex
	events       []domain.ActivityEvent // ordered by timestamp
	seen         map[string]struct{}    // ids of events in the window
	counted      map[string]struct{}    // ids of catches already in observations
	cutoff       time.Time              // oldest timestamp the window still holds
	observations map[domain.ObservationKey]int
}

// NewEventStore creates an empty store that keeps events for horizon.
func NewEventStore(horizon time.Duration) *EventStore {
	return &EventStore{
		horizon:      horizon,
		seen:         make(map[string]struct{}),
		counted:      make(map[string]struct{}),
		observations: make(map[domain.ObservationKey]int),
	}
}

// Add appends an event and reports whether it was new. Replays of an event
// already in the window are ignored. A catch that carries the snapshot it was
// reported under counts as one observation for that condition bucket. An
// event older than the last pruning cutoff is not added to the window; a
// first-seen catch among them still counts toward its bucket, and only that
// case reports true.
func (s *EventStore) Add(ev domain.ActivityEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.seen[ev.ID]; dup {
		return false
	}
	observed := s.observe(ev)
	if !s.cutoff.IsZero() && ev.Timestamp.Before(s.cutoff) {
		return observed
	}
	s.seen[ev.ID] = struct{}{}

	i := sort.Search(len(s.events), func(i int) bool {
		return s.events[i].Timestamp.After(ev.Timestamp)
	})
	s.events = append(s.events, domain.ActivityEvent{})
	copy(s.events[i+1:], s.events[i:])
	s.events[i] = ev
	return true
}

// observe counts a catch toward its condition bucket the first time its id
// is seen.
func (s *EventStore) observe(ev domain.ActivityEvent) bool {
	if ev.Kind != domain.EventCatch || ev.Snapshot == nil {
		return false
	}
	if _, ok := s.counted[ev.ID]; ok {
		return false
	}
	s.counted[ev.ID] = struct{}{}
	key := domain.ObservationKey{
		Species: profile.NormalizeKey(ev.Subject),
		Zone:    ev.Zone,
		Bucket:  ev.Snapshot.ConditionBucket(),
	}
	s.observations[key]++
	return true
}

// Window prunes events older than the horizon and returns a copy of what is
// left together with the observation counts. Events stamped after now are
// kept; the engine ignores them until they are in the past.
func (s *EventStore) Window(now time.Time) domain.EventWindow {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune(now)

	events := make([]domain.ActivityEvent, len(s.events))
	copy(events, s.events)
	return domain.EventWindow{
		Events:       events,
		Observations: maps.Clone(s.observations),
	}
}

// Len returns the number of events currently held.
func (s *EventStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func (s *EventStore) prune(now time.Time) {
	cutoff := now.Add(-s.horizon)
	if cutoff.After(s.cutoff) {
		s.cutoff = cutoff
	}
	n := sort.Search(len(s.events), func(i int) bool {
		return !s.events[i].Timestamp.Before(s.cutoff)
	})
	if n == 0 {
		return
	}
	for _, ev := range s.events[:n] {
		delete(s.seen, ev.ID)
	}
	s.events = append(s.events[:0:0], s.events[n:]...)
}
