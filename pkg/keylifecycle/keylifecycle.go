// Package keylifecycle implements the key-record state machine spec.md §3
// references but leaves unelaborated ("Key record (from key_lifecycle,
// referenced but not elaborated)"). It is the surrounding application's
// registry, not the cryptographic core: protocols/vss never depends on it.
//
// Grounded on the teacher's BootstrapDealer.reshareInProgress field (a
// single mutex-guarded state flag) generalized into a small explicit DAG,
// and on protocols/lss's CBOR use for config/message encoding.
package keylifecycle

import (
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/cryptographyteam/zk-thresh-pro/internal/vsserr"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
)

// State is one node in the key-record lifecycle DAG (spec.md §3).
type State string

const (
	PendingGeneration State = "PendingGeneration"
	Active             State = "Active"
	Suspended          State = "Suspended"
	Deactivated        State = "Deactivated"
	Compromised        State = "Compromised"
	Destroyed          State = "Destroyed"
)

// transitions enumerates the DAG edges (spec.md §3, elaborated in
// SPEC_FULL.md): PendingGeneration -> Active -> Suspended -> Active;
// Active -> Deactivated; Suspended -> Deactivated; any of
// Active/Suspended/Deactivated -> Compromised; any non-Destroyed state ->
// Destroyed.
var transitions = map[State]map[State]bool{
	PendingGeneration: {Active: true, Destroyed: true},
	Active:            {Suspended: true, Deactivated: true, Compromised: true, Destroyed: true},
	Suspended:         {Active: true, Deactivated: true, Compromised: true, Destroyed: true},
	Deactivated:       {Compromised: true, Destroyed: true},
	Compromised:       {Destroyed: true},
	Destroyed:         {},
}

// hasSecret reports whether the given state retains the secret scalar
// (spec.md §3: "secret material is present only in Active/Suspended").
func hasSecret(s State) bool { return s == Active || s == Suspended }

// Meta is the CBOR-encoded metadata persisted for a key record, kept
// independent of the §6 deterministic binary share wire format (which
// stays hand-rolled, see protocols/vss/wire.go).
type Meta struct {
	ID      string `cbor:"id"`
	State   State  `cbor:"state"`
	Version uint64 `cbor:"version"`
}

// KeyRecord tracks one key's lifecycle. The secret field is nil outside
// Active/Suspended; every transition that leaves those states zeroizes and
// drops it.
type KeyRecord struct {
	mu      sync.Mutex
	id      string
	secret  curve.Scalar
	state   State
	version uint64
}

// New creates a record in PendingGeneration with no secret material.
func New(id string) *KeyRecord {
	return &KeyRecord{id: id, state: PendingGeneration, version: 0}
}

// Transition moves the record to newState if the DAG permits it, bumping
// Version. Secret must be supplied exactly when moving into Active from
// PendingGeneration; it is zeroized and dropped on every transition out of
// Active/Suspended.
func (k *KeyRecord) Transition(newState State, secret curve.Scalar) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	allowed, ok := transitions[k.state]
	if !ok || !allowed[newState] {
		return vsserr.New(vsserr.InvalidInput, fmt.Sprintf("illegal transition %s -> %s", k.state, newState))
	}

	if hasSecret(k.state) && !hasSecret(newState) {
		if k.secret != nil {
			k.secret.Zeroize()
		}
		k.secret = nil
	}
	if !hasSecret(k.state) && hasSecret(newState) {
		if secret == nil {
			return vsserr.New(vsserr.InvalidInput, "secret required entering Active/Suspended")
		}
		k.secret = secret
	}

	k.state = newState
	k.version++
	return nil
}

// State reports the current lifecycle state.
func (k *KeyRecord) State() State {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state
}

// Version reports the monotone version counter.
func (k *KeyRecord) Version() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.version
}

// Secret returns the held secret, or nil outside Active/Suspended.
func (k *KeyRecord) Secret() curve.Scalar {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.secret == nil {
		return nil
	}
	return k.secret.Clone()
}

// MarshalMeta encodes the record's non-secret metadata as CBOR, for the
// audit/persistence boundary (spec.md §1 "audit-log persistence ...
// specified only at their interface").
func (k *KeyRecord) MarshalMeta() ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	meta := Meta{ID: k.id, State: k.state, Version: k.version}
	b, err := cbor.Marshal(meta)
	if err != nil {
		return nil, vsserr.New(vsserr.SerializationError, err.Error())
	}
	return b, nil
}

// UnmarshalMeta decodes metadata previously produced by MarshalMeta into a
// record with no secret material (Destroyed records retain only metadata,
// per spec.md §3).
func UnmarshalMeta(b []byte) (*KeyRecord, error) {
	var meta Meta
	if err := cbor.Unmarshal(b, &meta); err != nil {
		return nil, vsserr.New(vsserr.SerializationError, err.Error())
	}
	return &KeyRecord{id: meta.ID, state: meta.State, version: meta.Version}, nil
}
