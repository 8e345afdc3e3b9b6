package storage

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/registrar/internal/platform/codec"
	"github.com/zeebo/blake3"
)

// envelope is the canonical hashed form of an event. Field tags are fixed;
// renaming one invalidates every stored hash.
type envelope struct {
	Seq       uint64 `cbor:"seq"`
	Type      string `cbor:"type"`
	Principal string `cbor:"principal"`
	RequestID string `cbor:"request_id"`
	Timestamp int64  `cbor:"ts"`
	Payload   []byte `cbor:"payload"`
}

// EventHash computes the BLAKE3 content hash of an event.
func EventHash(evt Event) (string, error) {
	payload := evt.Payload
	if payload == nil {
		payload = []byte{}
	}
	data, err := codec.Marshal(envelope{
		Seq:       evt.Seq,
		Type:      evt.Type,
		Principal: evt.Principal,
		RequestID: evt.RequestID,
		Timestamp: evt.Timestamp.UTC().UnixMilli(),
		Payload:   payload,
	})
	if err != nil {
		return "", fmt.Errorf("encode event envelope: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// ChainHash links an event hash to the chain hash of its predecessor.
func ChainHash(eventHash, prevChainHash string) string {
	h := blake3.New()
	_, _ = h.Write([]byte(prevChainHash))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(eventHash))
	return hex.EncodeToString(h.Sum(nil))
}

// Seal normalizes the timestamp and fills the hash fields of an event whose
// Seq is already assigned.
func Seal(evt Event, prevChainHash string, now time.Time) (Event, error) {
	if strings.TrimSpace(evt.Type) == "" {
		return Event{}, fmt.Errorf("event type is required")
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = now
	}
	evt.Timestamp = evt.Timestamp.UTC().Truncate(time.Millisecond)

	hash, err := EventHash(evt)
	if err != nil {
		return Event{}, err
	}
	evt.Hash = hash
	evt.PrevHash = prevChainHash
	evt.ChainHash = ChainHash(hash, prevChainHash)
	return evt, nil
}

// ChainVerifier checks a journal page by page.
type ChainVerifier struct {
	lastSeq   uint64
	lastChain string
}

// Check validates the next event in sequence.
func (v *ChainVerifier) Check(evt Event) error {
	if evt.Seq != v.lastSeq+1 {
		return fmt.Errorf("%w: expected seq %d got %d", ErrChainBroken, v.lastSeq+1, evt.Seq)
	}
	if evt.PrevHash != v.lastChain {
		return fmt.Errorf("%w: seq %d prev hash mismatch", ErrChainBroken, evt.Seq)
	}
	hash, err := EventHash(evt)
	if err != nil {
		return err
	}
	if hash != evt.Hash {
		return fmt.Errorf("%w: seq %d event hash mismatch", ErrChainBroken, evt.Seq)
	}
	if ChainHash(hash, v.lastChain) != evt.ChainHash {
		return fmt.Errorf("%w: seq %d chain hash mismatch", ErrChainBroken, evt.Seq)
	}
	v.lastSeq = evt.Seq
	v.lastChain = evt.ChainHash
	return nil
}

// LastSeq returns the last verified sequence.
func (v *ChainVerifier) LastSeq() uint64 {
	return v.lastSeq
}
