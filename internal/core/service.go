package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"communitycore/pkg/domain"
)

// providerWindow is the fixed slot a provider is considered busy around a
// scheduled appointment.
const providerWindow = 2 * time.Hour

func cloneServiceRequest(r domain.ServiceRequest) domain.ServiceRequest {
	cp := r
	if r.EstimatedCost != nil {
		cost := *r.EstimatedCost
		cp.EstimatedCost = &cost
	}
	if r.ScheduledAt != nil {
		scheduled := *r.ScheduledAt
		cp.ScheduledAt = &scheduled
	}
	if r.CompletedAt != nil {
		completed := *r.CompletedAt
		cp.CompletedAt = &completed
	}
	return cp
}

// NewServiceRequestStore constructs a store for service requests with the
// deep-copy clone wired in.
func NewServiceRequestStore() *Store[domain.ServiceRequest] {
	return NewStore(domain.EntityServiceRequest, cloneServiceRequest)
}

// LifecycleService owns every status mutation of service requests. All other
// components treat requests as read-only.
type LifecycleService struct {
	requests *Store[domain.ServiceRequest]
	inst     instrumentation
}

// NewLifecycleService constructs a lifecycle service over the supplied
// request store.
func NewLifecycleService(requests *Store[domain.ServiceRequest], opts ...Option) *LifecycleService {
	inst := defaultInstrumentation()
	inst.randInt = rand.Intn
	for _, opt := range opts {
		opt(&inst)
	}
	return &LifecycleService{requests: requests, inst: inst}
}

// NewInMemoryLifecycleService creates a lifecycle service with a fresh
// in-memory request store.
func NewInMemoryLifecycleService(opts ...Option) *LifecycleService {
	return NewLifecycleService(NewServiceRequestStore(), opts...)
}

// Store returns the underlying request store.
func (s *LifecycleService) Store() *Store[domain.ServiceRequest] {
	return s.requests
}

// newRequestKey mints a request identifier of the form
// <CATEGORY>_<epoch millis>_<0-999>.
func (s *LifecycleService) newRequestKey(category domain.ServiceCategory, now time.Time) string {
	return fmt.Sprintf("%s_%d_%d", category, now.UnixMilli(), s.inst.randInt(1000))
}

// RequestService records a new service request in the REQUESTED state. The
// input supplies category, description, provider, requester, and optionally
// an estimated cost; identity, status, and timestamps are assigned here.
func (s *LifecycleService) RequestService(ctx context.Context, input domain.ServiceRequest) (domain.ServiceRequest, error) {
	finish := s.inst.observe(ctx, "request_service")

	description := strings.TrimSpace(input.Description)
	provider := strings.TrimSpace(input.Provider)
	requester := strings.TrimSpace(input.Requester)
	var err error
	switch {
	case !input.Category.Valid():
		err = domain.InvalidArgumentError{Op: "request_service", Field: "category", Reason: fmt.Sprintf("unknown category %q", string(input.Category))}
	case description == "":
		err = domain.InvalidArgumentError{Op: "request_service", Field: "description", Reason: "must not be empty"}
	case provider == "":
		err = domain.InvalidArgumentError{Op: "request_service", Field: "provider", Reason: "must not be empty"}
	case requester == "":
		err = domain.InvalidArgumentError{Op: "request_service", Field: "requester", Reason: "must not be empty"}
	case input.EstimatedCost != nil && *input.EstimatedCost < 0:
		err = domain.InvalidArgumentError{Op: "request_service", Field: "estimated_cost", Reason: "must not be negative"}
	}
	if err != nil {
		finish("", err)
		return domain.ServiceRequest{}, err
	}

	now := s.inst.now()
	request := domain.ServiceRequest{
		Category:      input.Category,
		Description:   description,
		Provider:      provider,
		EstimatedCost: input.EstimatedCost,
		Requester:     requester,
		Status:        domain.StatusRequested,
		RequestedAt:   now,
	}
	// Retry on suffix collision so concurrent requests never overwrite
	// each other.
	for {
		request.ID = s.newRequestKey(request.Category, now)
		insertErr := s.requests.Insert(request)
		if insertErr == nil {
			break
		}
		var dup domain.DuplicateEntityError
		if !errors.As(insertErr, &dup) {
			finish(request.ID, insertErr)
			return domain.ServiceRequest{}, insertErr
		}
	}
	finish(request.ID, nil)
	return request, nil
}

// ScheduleService sets the appointment time, moving the request from
// REQUESTED to SCHEDULED. The appointment must be strictly in the future,
// respect the category's weekend availability, and must not intersect the
// fixed two-hour window of another request already scheduled for the same
// provider.
func (s *LifecycleService) ScheduleService(ctx context.Context, key string, at time.Time) (domain.ServiceRequest, error) {
	finish := s.inst.observe(ctx, "schedule_service")

	current, ok := s.requests.FindByKey(key)
	if !ok {
		err := domain.NotFoundError{Entity: domain.EntityServiceRequest, Key: key, Op: "schedule_service"}
		finish(key, err)
		return domain.ServiceRequest{}, err
	}
	if !current.Status.CanTransitionTo(domain.StatusScheduled) {
		err := domain.StateTransitionError{Key: key, From: current.Status, To: domain.StatusScheduled}
		finish(key, err)
		return domain.ServiceRequest{}, err
	}
	if err := s.validateSchedule(current, at); err != nil {
		finish(key, err)
		return domain.ServiceRequest{}, err
	}

	updated, err := s.requests.Update(key, func(req *domain.ServiceRequest) error {
		if !req.Status.CanTransitionTo(domain.StatusScheduled) {
			return domain.StateTransitionError{Key: key, From: req.Status, To: domain.StatusScheduled}
		}
		req.Status = domain.StatusScheduled
		if req.ScheduledAt == nil {
			scheduled := at
			req.ScheduledAt = &scheduled
		}
		return nil
	})
	finish(key, err)
	return updated, err
}

func (s *LifecycleService) validateSchedule(request domain.ServiceRequest, at time.Time) error {
	if !at.After(s.inst.now()) {
		return domain.SchedulingConflictError{Key: request.ID, Reason: "time is in the past"}
	}
	if wd := at.Weekday(); (wd == time.Saturday || wd == time.Sunday) && !request.Category.AvailableOnWeekends() {
		return domain.SchedulingConflictError{Key: request.ID, Reason: fmt.Sprintf("category %s is not available on weekends", request.Category)}
	}
	_, busy := s.requests.FindFirst(func(existing domain.ServiceRequest) bool {
		if existing.ID == request.ID || existing.Status != domain.StatusScheduled || existing.ScheduledAt == nil {
			return false
		}
		if !strings.EqualFold(strings.TrimSpace(existing.Provider), request.Provider) {
			return false
		}
		// Windows [at, at+2h) and [start, start+2h) intersect.
		start := *existing.ScheduledAt
		return at.Before(start.Add(providerWindow)) && at.Add(providerWindow).After(start)
	})
	if busy {
		return domain.SchedulingConflictError{Key: request.ID, Reason: fmt.Sprintf("provider %s already booked within %s of requested time", request.Provider, providerWindow)}
	}
	return nil
}

// transition moves the request along one edge, re-validating the edge under
// the writer lock.
func (s *LifecycleService) transition(ctx context.Context, operation, key string, to domain.ServiceStatus, mutate func(*domain.ServiceRequest)) (domain.ServiceRequest, error) {
	finish := s.inst.observe(ctx, operation)
	updated, err := s.requests.Update(key, func(req *domain.ServiceRequest) error {
		if !req.Status.CanTransitionTo(to) {
			return domain.StateTransitionError{Key: key, From: req.Status, To: to}
		}
		req.Status = to
		if mutate != nil {
			mutate(req)
		}
		return nil
	})
	var notFound domain.NotFoundError
	if errors.As(err, &notFound) {
		err = domain.NotFoundError{Entity: domain.EntityServiceRequest, Key: key, Op: operation}
	}
	finish(key, err)
	return updated, err
}

// StartService moves a scheduled request into IN_PROGRESS.
func (s *LifecycleService) StartService(ctx context.Context, key string) (domain.ServiceRequest, error) {
	return s.transition(ctx, "start_service", key, domain.StatusInProgress, nil)
}

// CompleteService finishes an in-progress request, stamping CompletedAt on
// first completion.
func (s *LifecycleService) CompleteService(ctx context.Context, key string) (domain.ServiceRequest, error) {
	now := s.inst.now()
	return s.transition(ctx, "complete_service", key, domain.StatusCompleted, func(req *domain.ServiceRequest) {
		if req.CompletedAt == nil {
			completed := now
			req.CompletedAt = &completed
		}
	})
}

// FailService marks an in-progress request as FAILED.
func (s *LifecycleService) FailService(ctx context.Context, key string) (domain.ServiceRequest, error) {
	return s.transition(ctx, "fail_service", key, domain.StatusFailed, nil)
}

// CancelService cancels a request that has not yet started.
func (s *LifecycleService) CancelService(ctx context.Context, key string) (domain.ServiceRequest, error) {
	return s.transition(ctx, "cancel_service", key, domain.StatusCancelled, nil)
}

// FindService retrieves a single request by key.
func (s *LifecycleService) FindService(key string) (domain.ServiceRequest, error) {
	request, ok := s.requests.FindByKey(key)
	if !ok {
		return domain.ServiceRequest{}, domain.NotFoundError{Entity: domain.EntityServiceRequest, Key: key}
	}
	return request, nil
}

// ListServices returns all requests ordered oldest first.
func (s *LifecycleService) ListServices() []domain.ServiceRequest {
	return sortByRequestedAt(s.requests.ListAll(), false)
}

// ServicesByCategory returns all requests of the category, oldest first.
func (s *LifecycleService) ServicesByCategory(category domain.ServiceCategory) []domain.ServiceRequest {
	return sortByRequestedAt(s.requests.FindAll(func(r domain.ServiceRequest) bool {
		return r.Category == category
	}), false)
}

// ServicesByStatus returns all requests in the status, oldest first.
func (s *LifecycleService) ServicesByStatus(status domain.ServiceStatus) []domain.ServiceRequest {
	return sortByRequestedAt(s.requests.FindAll(func(r domain.ServiceRequest) bool {
		return r.Status == status
	}), false)
}

// ServicesByRequester returns a requester's requests, newest first. Matching
// trims surrounding whitespace and ignores case.
func (s *LifecycleService) ServicesByRequester(requester string) []domain.ServiceRequest {
	requester = strings.TrimSpace(requester)
	return sortByRequestedAt(s.requests.FindAll(func(r domain.ServiceRequest) bool {
		return strings.EqualFold(strings.TrimSpace(r.Requester), requester)
	}), true)
}

// ServicesByProvider returns a provider's assigned requests, newest first.
func (s *LifecycleService) ServicesByProvider(provider string) []domain.ServiceRequest {
	provider = strings.TrimSpace(provider)
	return sortByRequestedAt(s.requests.FindAll(func(r domain.ServiceRequest) bool {
		return strings.EqualFold(strings.TrimSpace(r.Provider), provider)
	}), true)
}

// FindServices returns all requests satisfying the predicate, oldest first.
// A nil predicate matches everything.
func (s *LifecycleService) FindServices(pred func(domain.ServiceRequest) bool) []domain.ServiceRequest {
	return sortByRequestedAt(s.requests.FindAll(pred), false)
}

// ServiceStatistics summarizes the request population.
type ServiceStatistics struct {
	Total      int                            `json:"total"`
	ByStatus   map[domain.ServiceStatus]int   `json:"by_status"`
	ByCategory map[domain.ServiceCategory]int `json:"by_category"`
	Store      StoreStats                     `json:"store"`
}

// Statistics returns aggregate counts over all requests.
func (s *LifecycleService) Statistics() ServiceStatistics {
	stats := ServiceStatistics{
		ByStatus:   make(map[domain.ServiceStatus]int),
		ByCategory: make(map[domain.ServiceCategory]int),
		Store:      s.requests.Stats(),
	}
	for _, request := range s.requests.ListAll() {
		stats.Total++
		stats.ByStatus[request.Status]++
		stats.ByCategory[request.Category]++
	}
	return stats
}

func sortByRequestedAt(requests []domain.ServiceRequest, newestFirst bool) []domain.ServiceRequest {
	sort.Slice(requests, func(i, j int) bool {
		a, b := requests[i], requests[j]
		if !a.RequestedAt.Equal(b.RequestedAt) {
			if newestFirst {
				return a.RequestedAt.After(b.RequestedAt)
			}
			return a.RequestedAt.Before(b.RequestedAt)
		}
		return a.ID < b.ID
	})
	return requests
}
