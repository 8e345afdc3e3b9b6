// Package storage defines the registry event journal contract.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested journal entry is missing.
	ErrNotFound = errors.New("event not found")
	// ErrSequenceConflict indicates an append raced another writer.
	ErrSequenceConflict = errors.New("event sequence conflict")
	// ErrChainBroken indicates a stored event no longer matches its hashes.
	ErrChainBroken = errors.New("event chain broken")
)

// Event is one committed registry mutation.
type Event struct {
	Seq       uint64
	Type      string
	Principal string
	RequestID string
	Timestamp time.Time
	Payload   []byte
	Hash      string
	PrevHash  string
	ChainHash string
}

// EventStore persists the append-only registry journal.
//
// AppendEvent assigns Seq, Timestamp (when zero) and the hash fields; the
// returned event is what was stored. ListEvents returns events with
// Seq > afterSeq in ascending order.
type EventStore interface {
	AppendEvent(ctx context.Context, evt Event) (Event, error)
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]Event, error)
	VerifyChain(ctx context.Context) error
	Close() error
}
