// Package store holds the host's in-memory state: recent environment
// snapshots and the time-bounded activity event window. Both are safe for
// concurrent use and hand out copies, never references to their internals.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/couchcryptid/bite-score-engine/internal/domain"
)

// SnapshotStore keeps the most recent snapshots ordered by capture time.
// When full, the oldest capture is evicted regardless of arrival order.
type SnapshotStore struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // newest capture
	tail       *entry // oldest capture
}

type entry struct {
	value domain.Snapshot
	prev  *entry // newer
	next  *entry // older
}

// NewSnapshotStore creates a store that holds at most maxEntries snapshots.
func NewSnapshotStore(maxEntries int) *SnapshotStore {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &SnapshotStore{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

// Put records a snapshot. A snapshot with an ID already present replaces it.
func (s *SnapshotStore) Put(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[snap.ID]; ok {
		s.remove(e)
		delete(s.entries, snap.ID)
	}

	e := &entry{value: snap}
	s.entries[snap.ID] = e
	s.insertOrdered(e)

	if len(s.entries) > s.maxEntries {
		s.evictTail()
	}
}

// Latest returns the newest snapshot by capture time.
func (s *SnapshotStore) Latest() (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.head == nil {
		return domain.Snapshot{}, domain.ErrSnapshotUnavailable
	}
	return s.head.value, nil
}

// At returns the snapshot that was current at t: the newest one captured at
// or before t. Instants older than every held snapshot are unavailable.
func (s *SnapshotStore) At(t time.Time) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for e := s.head; e != nil; e = e.next {
		if !e.value.CapturedAt.After(t) {
			return e.value, nil
		}
	}
	return domain.Snapshot{}, fmt.Errorf("snapshot at %s: %w", t.UTC().Format(time.RFC3339), domain.ErrSnapshotUnavailable)
}

// Len returns the number of snapshots held.
func (s *SnapshotStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// insertOrdered walks from the newest end, so in-order arrivals are O(1).
func (s *SnapshotStore) insertOrdered(e *entry) {
	var newer *entry
	older := s.head
	for older != nil && older.value.CapturedAt.After(e.value.CapturedAt) {
		newer, older = older, older.next
	}

	e.prev, e.next = newer, older
	if newer != nil {
		newer.next = e
	} else {
		s.head = e
	}
	if older != nil {
		older.prev = e
	} else {
		s.tail = e
	}
}

func (s *SnapshotStore) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
}

func (s *SnapshotStore) evictTail() {
	if s.tail == nil {
		return
	}
	delete(s.entries, s.tail.value.ID)
	s.remove(s.tail)
}
