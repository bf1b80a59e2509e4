package core

import (
	"strings"

	"communitycore/pkg/domain"
)

// Constraint declares a uniqueness requirement over one extracted attribute.
// Extracted values are normalized (trimmed, lowercased) before comparison,
// so constraints are case-insensitive.
type Constraint[E domain.Keyed] struct {
	Name    string
	Extract func(E) string
}

// UniquenessGuard wraps a store's write path with declared attribute
// uniqueness constraints. Checks and the following save run under the
// store's writer lock, so no concurrent insert can slip between them.
type UniquenessGuard[E domain.Keyed] struct {
	store       *Store[E]
	constraints []Constraint[E]
}

// NewUniquenessGuard constructs a guard over the store with the given
// constraints. Constraints are evaluated in declaration order.
func NewUniquenessGuard[E domain.Keyed](store *Store[E], constraints ...Constraint[E]) *UniquenessGuard[E] {
	return &UniquenessGuard[E]{store: store, constraints: constraints}
}

func normalizeAttr(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// violated returns the first constraint whose extracted attribute collides
// with a stored record other than excludeKey. Caller holds the store lock.
func (g *UniquenessGuard[E]) violated(candidate E, excludeKey string) (Constraint[E], string, bool) {
	for _, constraint := range g.constraints {
		want := normalizeAttr(constraint.Extract(candidate))
		if want == "" {
			continue
		}
		_, found := g.store.findFirstLocked(func(existing E) bool {
			if existing.Key() == excludeKey {
				return false
			}
			return normalizeAttr(constraint.Extract(existing)) == want
		})
		if found {
			return constraint, constraint.Extract(candidate), true
		}
	}
	return Constraint[E]{}, "", false
}

// Insert saves a new entity after verifying every constraint. The entity's
// own key must be absent; duplicates fail before any mutation.
func (g *UniquenessGuard[E]) Insert(entity E) error {
	if !entity.HasKey() {
		return domain.InvalidArgumentError{Op: "insert", Field: "key", Reason: "must not be empty"}
	}
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if _, exists := g.store.records[entity.Key()]; exists {
		return domain.DuplicateEntityError{Entity: g.store.entity, Constraint: "key", Value: entity.Key()}
	}
	if constraint, value, bad := g.violated(entity, ""); bad {
		return domain.DuplicateEntityError{Entity: g.store.entity, Constraint: constraint.Name, Value: value}
	}
	g.store.saveLocked(entity)
	return nil
}

// Update re-saves an existing entity, verifying every constraint against all
// records except the entity itself.
func (g *UniquenessGuard[E]) Update(entity E) error {
	if !entity.HasKey() {
		return domain.InvalidArgumentError{Op: "update", Field: "key", Reason: "must not be empty"}
	}
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if _, exists := g.store.records[entity.Key()]; !exists {
		return domain.NotFoundError{Entity: g.store.entity, Key: entity.Key(), Op: "update"}
	}
	if constraint, value, bad := g.violated(entity, entity.Key()); bad {
		return domain.DuplicateEntityError{Entity: g.store.entity, Constraint: constraint.Name, Value: value}
	}
	g.store.saveLocked(entity)
	return nil
}
