// Package vsserr implements the error taxonomy shared across the engine
// (spec §7): a fixed set of categories rather than one error type per
// failure, so verification failures never leak which sub-check failed.
package vsserr

import (
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
)

// Category is one of the fixed error categories from spec §7. User-visible
// messages include only the category and a correlation id, never the
// underlying cause or secret material.
type Category string

const (
	InvalidInput       Category = "InvalidInput"
	SerializationError Category = "SerializationError"
	VerificationFailed Category = "VerificationFailed"
	Inconsistent       Category = "Inconsistent"
	Insufficient       Category = "Insufficient"
	Internal           Category = "Internal"
	RngUnavailable     Category = "RngUnavailable"
)

// categorySentinel holds the one base error per category that every *Error
// wraps. A bespoke `Is(cat Category) bool` method (the prior shape here)
// is never called by the stdlib: errors.Is only recognizes a method with
// the exact signature `Is(error) bool`, or walks Unwrap. Wrapping one of
// these sentinels and implementing Unwrap makes errors.Is(err,
// vsserr.ErrInvalidInput)-style category checks work end to end instead.
var categorySentinel = map[Category]error{
	InvalidInput:       errors.New("InvalidInput"),
	SerializationError: errors.New("SerializationError"),
	VerificationFailed: errors.New("VerificationFailed"),
	Inconsistent:       errors.New("Inconsistent"),
	Insufficient:       errors.New("Insufficient"),
	Internal:           errors.New("Internal"),
	RngUnavailable:     errors.New("RngUnavailable"),
}

// Sentinel values for errors.Is category checks at call sites (spec §7
// "correlation id for audit-log lookup", generalized to also let a caller
// distinguish categories the stdlib way). Every *Error this package builds
// unwraps to exactly one of these.
var (
	ErrInvalidInput       = categorySentinel[InvalidInput]
	ErrSerializationError = categorySentinel[SerializationError]
	ErrVerificationFailed = categorySentinel[VerificationFailed]
	ErrInconsistent       = categorySentinel[Inconsistent]
	ErrInsufficient       = categorySentinel[Insufficient]
	ErrInternal           = categorySentinel[Internal]
	ErrRngUnavailable     = categorySentinel[RngUnavailable]
)

// Error wraps a category's sentinel with a stable correlation id derived
// from the category and an opaque detail string, so an operator can look up
// the same failure in the audit log without the error itself carrying
// secret material (spec §7 "correlation id for audit-log lookup").
type Error struct {
	Category      Category
	Err           error
	CorrelationID string
	detail        string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (ref %s)", e.Category, e.CorrelationID)
}

// Unwrap exposes the category sentinel, so errors.Is(err,
// vsserr.ErrInvalidInput) (or errors.As into *Error) works the standard way
// without a bespoke Is method.
func (e *Error) Unwrap() error { return e.Err }

// New builds an Error in the given category, wrapping that category's
// sentinel. detail is never surfaced via Error() beyond its hash; it exists
// only to vary the correlation id across distinct call sites in the same
// category, and for internal logging by the caller, if any.
func New(cat Category, detail string) *Error {
	return &Error{
		Category:      cat,
		Err:           categorySentinel[cat],
		CorrelationID: correlationID(cat, detail),
		detail:        detail,
	}
}

func correlationID(cat Category, detail string) string {
	h := blake3.New()
	_, _ = h.Write([]byte(cat))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(detail))
	sum := h.Sum(nil)
	return fmt.Sprintf("%x", sum[:8])
}
