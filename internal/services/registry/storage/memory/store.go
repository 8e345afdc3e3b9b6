// Package memory provides an in-process registry journal for tests and
// ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/louisbranch/registrar/internal/services/registry/storage"
)

// Store keeps the journal in a slice.
type Store struct {
	mu     sync.RWMutex
	events []storage.Event
	now    func() time.Time
	// failNext makes the next append fail once; used to exercise rollback.
	failNext error
}

var _ storage.EventStore = (*Store)(nil)

// New returns an empty journal.
func New() *Store {
	return &Store{now: time.Now}
}

// AppendEvent assigns the next sequence and hashes and stores the event.
func (s *Store) AppendEvent(ctx context.Context, evt storage.Event) (storage.Event, error) {
	if err := ctx.Err(); err != nil {
		return storage.Event{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return storage.Event{}, err
	}

	prevChain := ""
	if n := len(s.events); n > 0 {
		prevChain = s.events[n-1].ChainHash
	}
	evt.Seq = uint64(len(s.events)) + 1
	evt.Payload = append([]byte(nil), evt.Payload...)
	sealed, err := storage.Seal(evt, prevChain, s.now())
	if err != nil {
		return storage.Event{}, err
	}
	s.events = append(s.events, sealed)
	return sealed, nil
}

// ListEvents returns up to limit events after afterSeq.
func (s *Store) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]storage.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if afterSeq >= uint64(len(s.events)) {
		return nil, nil
	}
	end := afterSeq + uint64(limit)
	if end > uint64(len(s.events)) {
		end = uint64(len(s.events))
	}
	out := make([]storage.Event, 0, end-afterSeq)
	out = append(out, s.events[afterSeq:end]...)
	return out, nil
}

// VerifyChain recomputes every hash.
func (s *Store) VerifyChain(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var verifier storage.ChainVerifier
	for _, evt := range s.events {
		if err := verifier.Check(evt); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// Len reports the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// FailNextAppend makes the next AppendEvent return err without storing.
func (s *Store) FailNextAppend(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}

// Tamper rewrites a stored event in place. It exists to test integrity
// checks and must not be used by production code.
func (s *Store) Tamper(seq uint64, mutate func(*storage.Event)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == 0 || seq > uint64(len(s.events)) {
		return false
	}
	mutate(&s.events[seq-1])
	return true
}
