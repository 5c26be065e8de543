// Package polynomial implements the dense polynomial engine the secret
// sharing and VSS layers build on (spec §4.C): construction and
// evaluation, add/sub/scalar-mul, size-dispatched multiplication, the
// derivative, a product tree over linear factors, fast multipoint
// evaluation, and both the fast (product-tree) and slow (direct O(t^2))
// Lagrange-at-zero reconstruction.
package polynomial

import (
	"io"

	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
)

// Polynomial is a dense, little-endian (constant term first) list of
// scalar coefficients. A normalized Polynomial has a nonzero leading
// coefficient; the empty list denotes the zero polynomial (spec §3).
type Polynomial struct {
	group  curve.Curve
	coeffs []curve.Scalar
}

// New wraps an existing coefficient slice (constant term first) without
// copying; callers that need independence should Clone first.
func New(group curve.Curve, coeffs []curve.Scalar) *Polynomial {
	p := &Polynomial{group: group, coeffs: coeffs}
	return p.trim()
}

// NewPolynomial builds a degree-d polynomial with the given constant term
// and uniformly random remaining coefficients drawn from rng. If constant
// is nil, the constant term is also drawn at random (used by the
// auxiliary blinding polynomials in Split/Refresh).
//
// This generalizes the teacher's NewPolynomial(group, degree, constant),
// which draws from an implicit package-level crypto/rand.Reader, into an
// explicit injected Rng capability per spec §9 "Randomness".
func NewPolynomial(group curve.Curve, degree int, constant curve.Scalar, rng io.Reader) (*Polynomial, error) {
	if degree < 0 {
		return nil, ErrDegreeOverflow
	}
	coeffs := make([]curve.Scalar, degree+1)
	start := 0
	if constant != nil {
		coeffs[0] = constant.Clone()
		start = 1
	}
	for i := start; i <= degree; i++ {
		s, err := group.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		coeffs[i] = s
	}
	return New(group, coeffs), nil
}

// Zero returns the zero polynomial.
func Zero(group curve.Curve) *Polynomial {
	return &Polynomial{group: group, coeffs: nil}
}

// trim drops trailing zero coefficients so the leading coefficient is
// always nonzero (or the list is empty).
func (p *Polynomial) trim() *Polynomial {
	n := len(p.coeffs)
	for n > 0 && p.coeffs[n-1].IsZero() {
		n--
	}
	p.coeffs = p.coeffs[:n]
	return p
}

// Degree returns len(coeffs)-1, or -1 for the zero polynomial.
func (p *Polynomial) Degree() int { return len(p.coeffs) - 1 }

// Coefficients returns a defensive copy of the coefficient list.
func (p *Polynomial) Coefficients() []curve.Scalar {
	out := make([]curve.Scalar, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = c.Clone()
	}
	return out
}

// Constant returns the constant term (the secret, for a splitting
// polynomial), or the zero scalar if p is the zero polynomial.
func (p *Polynomial) Constant() curve.Scalar {
	if len(p.coeffs) == 0 {
		return p.group.NewScalar()
	}
	return p.coeffs[0].Clone()
}

// Evaluate computes p(x) via Horner's method.
func (p *Polynomial) Evaluate(x curve.Scalar) curve.Scalar {
	result := p.group.NewScalar()
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.coeffs[i])
	}
	return result
}

// Add returns a+b.
func Add(a, b *Polynomial) *Polynomial {
	n := len(a.coeffs)
	if len(b.coeffs) > n {
		n = len(b.coeffs)
	}
	out := make([]curve.Scalar, n)
	for i := 0; i < n; i++ {
		out[i] = a.group.NewScalar()
		if i < len(a.coeffs) {
			out[i].Add(a.coeffs[i])
		}
		if i < len(b.coeffs) {
			out[i].Add(b.coeffs[i])
		}
	}
	return New(a.group, out)
}

// Sub returns a-b.
func Sub(a, b *Polynomial) *Polynomial {
	n := len(a.coeffs)
	if len(b.coeffs) > n {
		n = len(b.coeffs)
	}
	out := make([]curve.Scalar, n)
	for i := 0; i < n; i++ {
		out[i] = a.group.NewScalar()
		if i < len(a.coeffs) {
			out[i].Add(a.coeffs[i])
		}
		if i < len(b.coeffs) {
			out[i].Sub(b.coeffs[i])
		}
	}
	return New(a.group, out)
}

// ScalarMul returns s*p.
func ScalarMul(p *Polynomial, s curve.Scalar) *Polynomial {
	out := make([]curve.Scalar, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = c.Clone().Mul(s)
	}
	return New(p.group, out)
}

// Derivative returns p', the coefficient-wise derivative: coefficient
// k*a_k shifted down one index (spec §4.C).
func (p *Polynomial) Derivative() *Polynomial {
	if len(p.coeffs) <= 1 {
		return Zero(p.group)
	}
	out := make([]curve.Scalar, len(p.coeffs)-1)
	for k := 1; k < len(p.coeffs); k++ {
		out[k-1] = p.group.ScalarFromUint64(uint64(k)).Mul(p.coeffs[k])
	}
	return New(p.group, out)
}

// Zeroize overwrites every coefficient (spec §5: secret polynomial
// coefficients are sensitive and must be scrubbed on every exit path).
func (p *Polynomial) Zeroize() {
	for _, c := range p.coeffs {
		c.Zeroize()
	}
}
