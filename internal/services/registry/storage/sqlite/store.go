// Package sqlite provides the SQLite-backed registry journal.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/registrar/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/registrar/internal/services/registry/storage"
	"github.com/louisbranch/registrar/internal/services/registry/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const verifyPageSize = 500

// Store persists registry events in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ storage.EventStore = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite journal and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_txlock=immediate"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendEvent atomically appends an event and returns it with sequence and
// hashes set.
func (s *Store) AppendEvent(ctx context.Context, evt storage.Event) (storage.Event, error) {
	if err := ctx.Err(); err != nil {
		return storage.Event{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Event{}, fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.Event{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var (
		lastSeq   int64
		prevChain string
	)
	err = tx.QueryRowContext(ctx, `SELECT seq, chain_hash FROM events ORDER BY seq DESC LIMIT 1`).Scan(&lastSeq, &prevChain)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return storage.Event{}, fmt.Errorf("load previous event: %w", err)
	}

	evt.Seq = uint64(lastSeq) + 1
	sealed, err := storage.Seal(evt, prevChain, s.now())
	if err != nil {
		return storage.Event{}, err
	}

	payload := sealed.Payload
	if payload == nil {
		payload = []byte{}
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO events (seq, event_type, principal, request_id, ts, payload, event_hash, prev_hash, chain_hash)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(sealed.Seq), sealed.Type, sealed.Principal, sealed.RequestID, toMillis(sealed.Timestamp),
		payload, sealed.Hash, sealed.PrevHash, sealed.ChainHash,
	)
	if err != nil {
		if isConstraintError(err) {
			return storage.Event{}, fmt.Errorf("append seq %d: %w", sealed.Seq, storage.ErrSequenceConflict)
		}
		return storage.Event{}, fmt.Errorf("append event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return storage.Event{}, fmt.Errorf("commit: %w", err)
	}
	return sealed, nil
}

// ListEvents returns up to limit events after afterSeq in sequence order.
func (s *Store) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]storage.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT seq, event_type, principal, request_id, ts, payload, event_hash, prev_hash, chain_hash
FROM events WHERE seq > ? ORDER BY seq ASC LIMIT ?`, int64(afterSeq), limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []storage.Event
	for rows.Next() {
		var (
			evt storage.Event
			seq int64
			ts  int64
		)
		if err := rows.Scan(&seq, &evt.Type, &evt.Principal, &evt.RequestID, &ts, &evt.Payload, &evt.Hash, &evt.PrevHash, &evt.ChainHash); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		evt.Seq = uint64(seq)
		evt.Timestamp = fromMillis(ts)
		out = append(out, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

// GetEvent returns one event by sequence.
func (s *Store) GetEvent(ctx context.Context, seq uint64) (storage.Event, error) {
	if seq == 0 {
		return storage.Event{}, storage.ErrNotFound
	}
	events, err := s.ListEvents(ctx, seq-1, 1)
	if err != nil {
		return storage.Event{}, err
	}
	if len(events) == 0 || events[0].Seq != seq {
		return storage.Event{}, storage.ErrNotFound
	}
	return events[0], nil
}

// VerifyChain recomputes every hash in the journal and reports the first
// broken sequence.
func (s *Store) VerifyChain(ctx context.Context) error {
	var verifier storage.ChainVerifier
	for {
		events, err := s.ListEvents(ctx, verifier.LastSeq(), verifyPageSize)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		for _, evt := range events {
			if err := verifier.Check(evt); err != nil {
				return err
			}
		}
	}
}

func isConstraintError(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3lib.SQLITE_CONSTRAINT || code == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY
}
