// Package curve abstracts the prime-order elliptic-curve group the engine
// runs over (spec §4.A). A concrete Curve injects its Scalar/Point
// implementations; nothing above this package depends on the concrete
// group, so a different prime-order group can be swapped in by
// implementing this interface (see DESIGN.md, Open Questions).
package curve

import (
	"io"

	"github.com/cronokirby/saferith"
)

// Scalar is an element of the group's prime-order scalar field. All
// mutating methods follow the "receiver-as-accumulator" convention: they
// modify the receiver in place and return it, so calls can be chained
// (x.Add(y).Mul(z)) without allocating an intermediate per step.
type Scalar interface {
	// Set copies the value of x into the receiver.
	Set(x Scalar) Scalar
	// SetNat reduces n modulo the group order and stores the result.
	SetNat(n *saferith.Nat) Scalar
	// SetUint64 sets the receiver to the given small integer.
	SetUint64(v uint64) Scalar

	Add(x Scalar) Scalar
	Sub(x Scalar) Scalar
	Mul(x Scalar) Scalar
	Negate() Scalar
	// Invert sets the receiver to its own multiplicative inverse mod q.
	// Returns ErrZeroInverse if the receiver is zero; never panics.
	Invert() (Scalar, error)

	Equal(x Scalar) bool
	IsZero() bool

	// Nat returns the canonical reduced representative as a saferith.Nat.
	Nat() *saferith.Nat
	// Bytes returns the 32-byte little-endian canonical encoding.
	Bytes() []byte
	// SetBytes decodes a 32-byte little-endian encoding, rejecting values
	// >= the group order with ErrNonCanonical.
	SetBytes(b []byte) error

	// ActOnBase returns scalar*G0.
	ActOnBase() Point
	// Act returns scalar*p.
	Act(p Point) Point

	Clone() Scalar
	// Zeroize overwrites the scalar's internal representation. Callers on
	// any exit path (including error returns) must call this on every
	// sensitive scalar per spec §5.
	Zeroize()
}

// Point is an element of the group.
type Point interface {
	Set(x Point) Point
	Add(x Point) Point
	Negate() Point
	Equal(x Point) bool
	IsIdentity() bool

	// Bytes returns the compressed encoding used on the wire.
	Bytes() []byte
	// SetBytes decodes a compressed point, rejecting non-canonical
	// encodings with ErrNonCanonical and points not on the curve with
	// ErrNotOnCurve.
	SetBytes(b []byte) error

	Clone() Point
}

// Curve is the capability set a concrete group must provide. It is
// injected at construction time everywhere it's needed (spec §9
// "Polymorphism"); there is no package-level default group.
type Curve interface {
	// Name identifies the group, e.g. for compatibility checks.
	Name() string

	NewScalar() Scalar
	NewPoint() Point

	// Generator returns G0.
	Generator() Point
	// H returns H0, the nothing-up-my-sleeve second generator used for
	// Pedersen commitments (spec §4.A).
	H() Point

	// RandomScalar draws a uniform nonzero scalar from rng.
	RandomScalar(rng io.Reader) (Scalar, error)
	ScalarFromUint64(v uint64) Scalar

	// MultiScalarMult computes sum(scalars[i]*points[i]).
	MultiScalarMult(scalars []Scalar, points []Point) Point

	// Order returns the group's scalar-field modulus q.
	Order() *saferith.Modulus

	DecodeScalar(b []byte) (Scalar, error)
	DecodePoint(b []byte) (Point, error)

	// ScalarSize and PointSize report the canonical wire encoding widths.
	ScalarSize() int
	PointSize() int
}
