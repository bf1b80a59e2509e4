package core

import (
	"sync"
	"sync/atomic"

	"communitycore/pkg/domain"
)

// Store is an in-memory keyed store for a single entity family. All access
// is guarded by a read-write mutex; every value that crosses the store
// boundary is cloned so callers can never mutate committed state.
type Store[E domain.Keyed] struct {
	mu      sync.RWMutex
	entity  domain.EntityType
	records map[string]E
	cloneFn func(E) E
	mods    atomic.Uint64
}

// StoreStats is a point-in-time snapshot of store counters.
type StoreStats struct {
	Entities      int    `json:"entities"`
	Modifications uint64 `json:"modifications"`
}

// NewStore constructs a store for the given entity family. The clone function
// produces the defensive copies handed out on reads and taken in on writes;
// pass nil for records whose assignment copy is already deep.
func NewStore[E domain.Keyed](entity domain.EntityType, clone func(E) E) *Store[E] {
	return &Store[E]{
		entity:  entity,
		records: make(map[string]E),
		cloneFn: clone,
	}
}

func (s *Store[E]) clone(e E) E {
	if s.cloneFn == nil {
		return e
	}
	return s.cloneFn(e)
}

// Save stores the entity under its key, replacing any previous record.
func (s *Store[E]) Save(entity E) error {
	if !entity.HasKey() {
		return domain.InvalidArgumentError{Op: "save", Field: "key", Reason: "must not be empty"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked(entity)
	return nil
}

// Insert stores a new entity, failing if its key is already taken. Unlike
// Save it never replaces an existing record.
func (s *Store[E]) Insert(entity E) error {
	if !entity.HasKey() {
		return domain.InvalidArgumentError{Op: "insert", Field: "key", Reason: "must not be empty"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[entity.Key()]; exists {
		return domain.DuplicateEntityError{Entity: s.entity, Constraint: "key", Value: entity.Key()}
	}
	s.saveLocked(entity)
	return nil
}

func (s *Store[E]) saveLocked(entity E) {
	s.records[entity.Key()] = s.clone(entity)
	s.mods.Add(1)
}

// FindByKey retrieves a record by key.
func (s *Store[E]) FindByKey(key string) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[key]
	if !ok {
		var zero E
		return zero, false
	}
	return s.clone(record), true
}

// Exists reports whether a record is stored under the key.
func (s *Store[E]) Exists(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[key]
	return ok
}

// ListAll returns a snapshot of every record. Order is unspecified.
func (s *Store[E]) ListAll() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]E, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, s.clone(record))
	}
	return out
}

// Count returns the number of stored records.
func (s *Store[E]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// DeleteByKey removes the record stored under the key and reports whether a
// record was present.
func (s *Store[E]) DeleteByKey(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return false
	}
	delete(s.records, key)
	s.mods.Add(1)
	return true
}

// Delete removes the record matching the entity's key.
func (s *Store[E]) Delete(entity E) bool {
	if !entity.HasKey() {
		return false
	}
	return s.DeleteByKey(entity.Key())
}

// DeleteAll removes every record and returns the number removed.
func (s *Store[E]) DeleteAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := len(s.records)
	if removed > 0 {
		s.records = make(map[string]E)
		s.mods.Add(1)
	}
	return removed
}

// Update applies the mutator to the stored record under the writer lock and
// commits the result. The key is pinned across the mutation so a mutator
// cannot rekey a record. Returns the committed copy.
func (s *Store[E]) Update(key string, mutator func(*E) error) (E, error) {
	var zero E
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.records[key]
	if !ok {
		return zero, domain.NotFoundError{Entity: s.entity, Key: key, Op: "update"}
	}
	working := s.clone(current)
	if err := mutator(&working); err != nil {
		return zero, err
	}
	if working.Key() != key {
		return zero, domain.InvalidArgumentError{Op: "update", Field: "key", Reason: "must not change"}
	}
	s.records[key] = s.clone(working)
	s.mods.Add(1)
	return s.clone(working), nil
}

// FindFirst returns the first record satisfying the predicate. Iteration
// order is unspecified; the predicate must not depend on it.
func (s *Store[E]) FindFirst(pred func(E) bool) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findFirstLocked(pred)
}

func (s *Store[E]) findFirstLocked(pred func(E) bool) (E, bool) {
	for _, record := range s.records {
		if pred == nil || pred(record) {
			return s.clone(record), true
		}
	}
	var zero E
	return zero, false
}

// FindAll returns every record satisfying the predicate. A nil predicate
// matches everything.
func (s *Store[E]) FindAll(pred func(E) bool) []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]E, 0)
	for _, record := range s.records {
		if pred == nil || pred(record) {
			out = append(out, s.clone(record))
		}
	}
	return out
}

// FindByKeys returns the records stored under the given keys, skipping
// missing ones. Results follow the order of the keys argument.
func (s *Store[E]) FindByKeys(keys ...string) []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]E, 0, len(keys))
	for _, key := range keys {
		if record, ok := s.records[key]; ok {
			out = append(out, s.clone(record))
		}
	}
	return out
}

// Stats returns the record count and the cumulative modification counter.
func (s *Store[E]) Stats() StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StoreStats{
		Entities:      len(s.records),
		Modifications: s.mods.Load(),
	}
}
