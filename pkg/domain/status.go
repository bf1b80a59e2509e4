package domain

// ServiceStatus is the lifecycle state of a service request.
type ServiceStatus string

const (
	StatusRequested  ServiceStatus = "REQUESTED"
	StatusScheduled  ServiceStatus = "SCHEDULED"
	StatusInProgress ServiceStatus = "IN_PROGRESS"
	StatusCompleted  ServiceStatus = "COMPLETED"
	StatusCancelled  ServiceStatus = "CANCELLED"
	StatusFailed     ServiceStatus = "FAILED"
)

// serviceTransitions is the full transition relation. Terminal states carry
// no outgoing edges; absent pairs are rejected.
var serviceTransitions = map[ServiceStatus]map[ServiceStatus]struct{}{
	StatusRequested:  toSet(StatusScheduled, StatusCancelled),
	StatusScheduled:  toSet(StatusInProgress, StatusCancelled),
	StatusInProgress: toSet(StatusCompleted, StatusFailed),
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusFailed:     {},
}

func toSet(values ...ServiceStatus) map[ServiceStatus]struct{} {
	set := make(map[ServiceStatus]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// ServiceStatuses returns all lifecycle states.
func ServiceStatuses() []ServiceStatus {
	return []ServiceStatus{
		StatusRequested,
		StatusScheduled,
		StatusInProgress,
		StatusCompleted,
		StatusCancelled,
		StatusFailed,
	}
}

// Valid reports whether the status is one of the known lifecycle states.
func (s ServiceStatus) Valid() bool {
	_, ok := serviceTransitions[s]
	return ok
}

// Terminal reports whether the status has no outgoing transitions.
func (s ServiceStatus) Terminal() bool {
	targets, ok := serviceTransitions[s]
	return ok && len(targets) == 0
}

// CanTransitionTo reports whether the edge from s to target exists in the
// transition relation. The check is a pure lookup with no side effects.
func (s ServiceStatus) CanTransitionTo(target ServiceStatus) bool {
	targets, ok := serviceTransitions[s]
	if !ok {
		return false
	}
	_, ok = targets[target]
	return ok
}
