package domain

import "fmt"

// InvalidArgumentError reports a malformed or missing input detected before
// any mutation took place.
type InvalidArgumentError struct {
	Op     string
	Field  string
	Reason string
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Op, e.Field, e.Reason)
}

// NotFoundError reports a lookup miss for a keyed record.
type NotFoundError struct {
	Entity EntityType
	Key    string
	Op     string
}

func (e NotFoundError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
	}
	return fmt.Sprintf("%s: %s %s not found", e.Op, e.Entity, e.Key)
}

// DuplicateEntityError reports a uniqueness constraint violation. Constraint
// names the declared constraint; Value is the conflicting attribute value.
type DuplicateEntityError struct {
	Entity     EntityType
	Constraint string
	Value      string
}

func (e DuplicateEntityError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Constraint, e.Value)
}

// StateTransitionError reports an attempted edge absent from the service
// lifecycle transition relation.
type StateTransitionError struct {
	Key  string
	From ServiceStatus
	To   ServiceStatus
}

func (e StateTransitionError) Error() string {
	return fmt.Sprintf("service %s: cannot transition from %s to %s", e.Key, e.From, e.To)
}

// SchedulingConflictError reports a rejected scheduling attempt: a past or
// weekend-restricted time, or a provider whose window overlaps the request.
type SchedulingConflictError struct {
	Key    string
	Reason string
}

func (e SchedulingConflictError) Error() string {
	return fmt.Sprintf("service %s: scheduling conflict: %s", e.Key, e.Reason)
}
