// Package ledger is an in-memory append-only event journal with optimistic
// concurrency control. It is the commit point for every state change in the
// circulation engine: a service validates eligibility, then appends with the
// version it read, and a concurrent writer surfaces as a conflict instead of
// a silent double-apply.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrConcurrencyConflict = errors.New("concurrency conflict: version mismatch")
	ErrInvalidVersion      = errors.New("invalid version number")
)

// Event represents a domain event with full metadata.
type Event struct {
	ID            int64           `json:"id"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	EventData     json.RawMessage `json:"event_data"`
	Version       int             `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Ledger stores events per aggregate in append order.
type Ledger struct {
	mu     sync.Mutex
	nextID int64
	log    []Event
	byAgg  map[uuid.UUID][]int // indexes into log
	tracer trace.Tracer
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		byAgg:  make(map[uuid.UUID][]int),
		tracer: otel.Tracer("libracore/ledger"),
	}
}

// AppendEvents atomically appends events with optimistic concurrency control.
// expectedVersion must equal the aggregate's current version or the append is
// rejected with ErrConcurrencyConflict.
func (l *Ledger) AppendEvents(ctx context.Context, aggregateID uuid.UUID, aggregateType string, expectedVersion int, events []Event) error {
	_, span := l.tracer.Start(ctx, "ledger.append",
		trace.WithAttributes(
			attribute.String("aggregate.id", aggregateID.String()),
			attribute.String("aggregate.type", aggregateType),
			attribute.Int("expected.version", expectedVersion),
			attribute.Int("event.count", len(events)),
		),
	)
	defer span.End()

	if expectedVersion < 0 {
		return ErrInvalidVersion
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	currentVersion := l.currentVersionLocked(aggregateID)
	if currentVersion != expectedVersion {
		span.SetAttributes(
			attribute.Int("actual.version", currentVersion),
			attribute.Bool("conflict.detected", true),
		)
		return ErrConcurrencyConflict
	}

	for i, event := range events {
		l.nextID++
		event.ID = l.nextID
		event.AggregateID = aggregateID
		event.AggregateType = aggregateType
		event.Version = expectedVersion + i + 1
		event.CreatedAt = time.Now().UTC()

		l.byAgg[aggregateID] = append(l.byAgg[aggregateID], len(l.log))
		l.log = append(l.log, event)

		span.AddEvent("event.appended", trace.WithAttributes(
			attribute.Int64("event.id", event.ID),
			attribute.Int("event.version", event.Version),
			attribute.String("event.type", event.EventType),
		))
	}

	span.SetAttributes(attribute.Bool("append.success", true))
	return nil
}

// LoadEvents retrieves all events for an aggregate with optional version range.
// toVersion <= 0 means no upper bound.
func (l *Ledger) LoadEvents(ctx context.Context, aggregateID uuid.UUID, fromVersion, toVersion int) ([]Event, error) {
	_, span := l.tracer.Start(ctx, "ledger.load",
		trace.WithAttributes(
			attribute.String("aggregate.id", aggregateID.String()),
			attribute.Int("from.version", fromVersion),
			attribute.Int("to.version", toVersion),
		),
	)
	defer span.End()

	l.mu.Lock()
	defer l.mu.Unlock()

	var events []Event
	for _, idx := range l.byAgg[aggregateID] {
		event := l.log[idx]
		if event.Version < fromVersion {
			continue
		}
		if toVersion > 0 && event.Version > toVersion {
			continue
		}
		events = append(events, event)
	}

	span.SetAttributes(attribute.Int("events.loaded", len(events)))
	return events, nil
}

// CurrentVersion returns the latest version for an aggregate, 0 if none.
func (l *Ledger) CurrentVersion(ctx context.Context, aggregateID uuid.UUID) (int, error) {
	_, span := l.tracer.Start(ctx, "ledger.get_version",
		trace.WithAttributes(
			attribute.String("aggregate.id", aggregateID.String()),
		),
	)
	defer span.End()

	l.mu.Lock()
	defer l.mu.Unlock()

	version := l.currentVersionLocked(aggregateID)
	span.SetAttributes(attribute.Int("current.version", version))
	return version, nil
}

// StreamEvents provides a cursor-based event stream for projections.
func (l *Ledger) StreamEvents(ctx context.Context, fromID int64, batchSize int) ([]Event, error) {
	_, span := l.tracer.Start(ctx, "ledger.stream",
		trace.WithAttributes(
			attribute.Int64("from.id", fromID),
			attribute.Int("batch.size", batchSize),
		),
	)
	defer span.End()

	l.mu.Lock()
	defer l.mu.Unlock()

	var events []Event
	for _, event := range l.log {
		if event.ID <= fromID {
			continue
		}
		events = append(events, event)
		if batchSize > 0 && len(events) == batchSize {
			break
		}
	}

	span.SetAttributes(attribute.Int("events.streamed", len(events)))
	return events, nil
}

func (l *Ledger) currentVersionLocked(aggregateID uuid.UUID) int {
	idxs := l.byAgg[aggregateID]
	if len(idxs) == 0 {
		return 0
	}
	return l.log[idxs[len(idxs)-1]].Version
}
