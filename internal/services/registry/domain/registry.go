// Package domain implements the course registry: identities and roles,
// course and classroom catalogs, the schedule ledger and enrollments.
//
// Every operation runs under one lock. Mutations validate against the
// current state, commit exactly one event to the journal and then fold that
// event into memory, so a failed operation leaves nothing behind.
package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/louisbranch/registrar/internal/platform/codec"
	"github.com/louisbranch/registrar/internal/platform/requestctx"
	"github.com/louisbranch/registrar/internal/services/registry/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/louisbranch/registrar/registry"
	defaultPageSize = 200
)

// ErrJournalRequired indicates replay was asked for without a journal.
var ErrJournalRequired = errors.New("journal is required")

// ErrJournalDiverged is returned by every mutation once a journaled event
// failed to apply.
var ErrJournalDiverged = errors.New("registry journal diverged from memory; restart required")

// Journal is the slice of storage.EventStore the registry needs.
type Journal interface {
	AppendEvent(ctx context.Context, evt storage.Event) (storage.Event, error)
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]storage.Event, error)
}

// Registry serializes every operation against one State.
type Registry struct {
	mu       sync.Mutex
	state    *State
	journal  Journal
	tracer   trace.Tracer
	diverged error
}

// New returns an empty registry. A nil journal keeps events in memory only.
func New(journal Journal) *Registry {
	return &Registry{
		state:   NewState(),
		journal: journal,
		tracer:  otel.Tracer(tracerName),
	}
}

// Open returns a registry rebuilt from every event in journal.
func Open(ctx context.Context, journal Journal) (*Registry, error) {
	if journal == nil {
		return nil, ErrJournalRequired
	}
	r := New(journal)
	if _, err := r.Replay(ctx, 0); err != nil {
		return nil, err
	}
	return r, nil
}

// Replay pages through the journal from the current position and applies
// each event. pageSize <= 0 uses the default. It returns the number of
// events applied.
func (r *Registry) Replay(ctx context.Context, pageSize int) (int, error) {
	if r.journal == nil {
		return 0, ErrJournalRequired
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	applied := 0
	for {
		events, err := r.journal.ListEvents(ctx, r.state.lastSeq, pageSize)
		if err != nil {
			return applied, fmt.Errorf("list events after %d: %w", r.state.lastSeq, err)
		}
		if len(events) == 0 {
			return applied, nil
		}
		for _, evt := range events {
			if err := r.state.Apply(evt); err != nil {
				return applied, err
			}
			applied++
		}
	}
}

// LastSeq returns the sequence of the last committed event.
func (r *Registry) LastSeq() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.lastSeq
}

// commit journals one event and applies it. Callers hold r.mu and have
// already validated the mutation.
func (r *Registry) commit(ctx context.Context, eventType string, payload any) error {
	if r.diverged != nil {
		return r.diverged
	}
	data, err := codec.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", eventType, err)
	}
	evt := storage.Event{
		Type:      eventType,
		Principal: requestctx.PrincipalFromContext(ctx),
		RequestID: requestctx.RequestIDFromContext(ctx),
		Payload:   data,
	}
	if r.journal != nil {
		stored, err := r.journal.AppendEvent(ctx, evt)
		if err != nil {
			return fmt.Errorf("append %s: %w", eventType, err)
		}
		evt = stored
	} else {
		evt.Seq = r.state.lastSeq + 1
	}
	// Apply cannot fail for an event validated against this state. If it
	// does, the journal already holds the event and memory does not.
	if err := r.state.Apply(evt); err != nil {
		if r.journal != nil {
			r.diverged = fmt.Errorf("%w: seq %d %s: %v", ErrJournalDiverged, evt.Seq, eventType, err)
			return r.diverged
		}
		return fmt.Errorf("commit %s: %w", eventType, err)
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("registry.event_seq", int64(evt.Seq)))
	return nil
}

// begin starts the span for one operation and takes the lock. The returned
// func releases both and records err on the span.
func (r *Registry) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(*error)) {
	ctx, span := r.tracer.Start(ctx, "registry."+op, trace.WithAttributes(attrs...))
	if principal := requestctx.PrincipalFromContext(ctx); principal != "" {
		span.SetAttributes(attribute.String("registry.principal", principal))
	}
	r.mu.Lock()
	return ctx, func(errp *error) {
		r.mu.Unlock()
		if errp != nil && *errp != nil {
			span.RecordError(*errp)
			span.SetStatus(otelcodes.Error, (*errp).Error())
		}
		span.End()
	}
}

func caller(ctx context.Context) string {
	return requestctx.PrincipalFromContext(ctx)
}
