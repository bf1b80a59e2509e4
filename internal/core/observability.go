package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"communitycore/pkg/domain"
)

// Logger is the minimal structured logging surface used by the core. Args
// are alternating key/value pairs, slog style.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// SlogLogger adapts a *slog.Logger to the core Logger interface.
type SlogLogger struct {
	L *slog.Logger
}

func (s SlogLogger) Debug(msg string, args ...any) { s.L.Debug(msg, args...) }
func (s SlogLogger) Info(msg string, args ...any)  { s.L.Info(msg, args...) }
func (s SlogLogger) Warn(msg string, args ...any)  { s.L.Warn(msg, args...) }
func (s SlogLogger) Error(msg string, args ...any) { s.L.Error(msg, args...) }

// Clock supplies the current time to operations that stamp records.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// MetricsRecorder receives one observation per service operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}

// TraceSpan terminates a trace started by a Tracer.
type TraceSpan interface {
	End(err error)
}

// Tracer starts spans around service operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

type noopTracer struct{}

type noopSpan struct{}

func (noopSpan) End(error) {}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

// AuditStatus marks the outcome recorded in an audit entry.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusError   AuditStatus = "error"
)

// AuditAction classifies what an operation did to its entity.
type AuditAction string

const (
	ActionCreate     AuditAction = "create"
	ActionUpdate     AuditAction = "update"
	ActionDelete     AuditAction = "delete"
	ActionTransition AuditAction = "transition"
)

// AuditEntry is one immutable record of a service operation outcome.
type AuditEntry struct {
	ID        string            `json:"id"`
	Operation string            `json:"operation"`
	Entity    domain.EntityType `json:"entity"`
	Action    AuditAction       `json:"action"`
	EntityID  string            `json:"entity_id"`
	Status    AuditStatus       `json:"status"`
	Duration  time.Duration     `json:"duration"`
	Timestamp time.Time         `json:"timestamp"`
}

// AuditRecorder receives audit entries. Implementations must be safe for
// concurrent use.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

type noopAuditRecorder struct{}

func (noopAuditRecorder) Record(context.Context, AuditEntry) {}

// auditMetadata maps operation names to the entity and action recorded in
// audit entries. Operations absent from the map are not audited.
var auditMetadata = map[string]struct {
	Entity domain.EntityType
	Action AuditAction
}{
	"request_service":   {domain.EntityServiceRequest, ActionCreate},
	"schedule_service":  {domain.EntityServiceRequest, ActionTransition},
	"start_service":     {domain.EntityServiceRequest, ActionTransition},
	"complete_service":  {domain.EntityServiceRequest, ActionTransition},
	"fail_service":      {domain.EntityServiceRequest, ActionTransition},
	"cancel_service":    {domain.EntityServiceRequest, ActionTransition},
	"register_resident": {domain.EntityResident, ActionCreate},
	"update_resident":   {domain.EntityResident, ActionUpdate},
	"remove_resident":   {domain.EntityResident, ActionDelete},
}

// instrumentation bundles the pluggable observability collaborators shared
// by the lifecycle service and the resident directory.
type instrumentation struct {
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	audit   AuditRecorder
	clock   Clock
	randInt func(n int) int
}

func defaultInstrumentation() instrumentation {
	return instrumentation{
		logger:  noopLogger{},
		metrics: noopMetricsRecorder{},
		tracer:  noopTracer{},
		audit:   noopAuditRecorder{},
		clock:   ClockFunc(func() time.Time { return time.Now().UTC() }),
	}
}

// Option configures the optional collaborators of a service constructor.
type Option func(*instrumentation)

// WithLogger overrides the default no-op logger.
func WithLogger(logger Logger) Option {
	return func(in *instrumentation) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithMetricsRecorder wires a metrics sink into service operations.
func WithMetricsRecorder(metrics MetricsRecorder) Option {
	return func(in *instrumentation) {
		if metrics != nil {
			in.metrics = metrics
		}
	}
}

// WithTracer wires a tracer into service operations.
func WithTracer(tracer Tracer) Option {
	return func(in *instrumentation) {
		if tracer != nil {
			in.tracer = tracer
		}
	}
}

// WithAuditRecorder wires an audit sink into service operations.
func WithAuditRecorder(audit AuditRecorder) Option {
	return func(in *instrumentation) {
		if audit != nil {
			in.audit = audit
		}
	}
}

// WithClock overrides the wall clock, typically for tests.
func WithClock(clock Clock) Option {
	return func(in *instrumentation) {
		if clock != nil {
			in.clock = clock
		}
	}
}

// WithRand overrides the random-integer source used for key suffixes.
// The function must return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(in *instrumentation) {
		if intn != nil {
			in.randInt = intn
		}
	}
}

func (in instrumentation) now() time.Time { return in.clock.Now() }

// recordAudit emits an audit entry for the operation if the operation is
// registered in auditMetadata.
func (in instrumentation) recordAudit(ctx context.Context, operation, entityID string, status AuditStatus, duration time.Duration) {
	meta, ok := auditMetadata[operation]
	if !ok {
		return
	}
	in.audit.Record(ctx, AuditEntry{
		ID:        uuid.NewString(),
		Operation: operation,
		Entity:    meta.Entity,
		Action:    meta.Action,
		EntityID:  entityID,
		Status:    status,
		Duration:  duration,
		Timestamp: in.now(),
	})
}

// observe opens a span for the operation and returns a finish callback that
// records metrics, audit, and a log line once the outcome is known.
func (in instrumentation) observe(ctx context.Context, operation string) func(entityID string, err error) {
	started := time.Now()
	ctx, span := in.tracer.Start(ctx, operation)
	return func(entityID string, err error) {
		duration := time.Since(started)
		span.End(err)
		in.metrics.Observe(ctx, operation, err == nil, duration)
		if err != nil {
			in.recordAudit(ctx, operation, entityID, AuditStatusError, duration)
			in.logger.Warn("operation failed", "operation", operation, "entity_id", entityID, "error", err)
			return
		}
		in.recordAudit(ctx, operation, entityID, AuditStatusSuccess, duration)
		in.logger.Debug("operation completed", "operation", operation, "entity_id", entityID, "duration", duration)
	}
}
