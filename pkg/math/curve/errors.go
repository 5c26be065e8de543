package curve

import "errors"

// ErrNonCanonical is returned when decoding a scalar >= q or a point
// encoding that is malformed or not in canonical compressed form.
var ErrNonCanonical = errors.New("curve: non-canonical encoding")

// ErrZeroInverse is returned by Scalar.Invert on the zero scalar, which has
// no multiplicative inverse.
var ErrZeroInverse = errors.New("curve: inverse of zero scalar")

// ErrNotOnCurve is returned when a decoded point does not satisfy the
// curve equation.
var ErrNotOnCurve = errors.New("curve: point not on curve")
