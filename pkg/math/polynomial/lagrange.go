package polynomial

import (
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/party"
)

// slowLagrangeMaxSize is the size at or below which the direct O(t^2)
// Lagrange formula is used instead of the product-tree path (spec §4.C,
// §8 "Fast-Lagrange = slow-Lagrange for every t <= 16").
const slowLagrangeMaxSize = 16

// LagrangeCoefficientsAtZero returns ℓ_i(0) for i over xs, i.e. the
// weights such that sum(y_i * ℓ_i(0)) reconstructs f(0) for any
// polynomial f of degree < len(xs) passing through the given points.
// Dispatches to the fast product-tree path above slowLagrangeMaxSize,
// the direct path at or below it.
func LagrangeCoefficientsAtZero(group curve.Curve, xs []curve.Scalar) ([]curve.Scalar, error) {
	if len(xs) == 0 {
		return nil, ErrEmptyInput
	}
	if err := checkDistinct(xs); err != nil {
		return nil, err
	}
	for _, x := range xs {
		if x.IsZero() {
			return nil, ErrZeroAbscissa
		}
	}
	if len(xs) <= slowLagrangeMaxSize {
		return slowLagrangeCoefficientsAtZero(group, xs)
	}
	return fastLagrangeCoefficientsAtZero(group, xs)
}

// slowLagrangeCoefficientsAtZero computes ℓ_i(0) = Π_{j!=i} (-x_j)/(x_i-x_j)
// directly in O(t^2).
func slowLagrangeCoefficientsAtZero(group curve.Curve, xs []curve.Scalar) ([]curve.Scalar, error) {
	out := make([]curve.Scalar, len(xs))
	for i := range xs {
		num := group.NewScalar().SetUint64(1)
		den := group.NewScalar().SetUint64(1)
		for j := range xs {
			if i == j {
				continue
			}
			num = num.Mul(xs[j].Clone().Negate())
			diff := xs[i].Clone().Sub(xs[j])
			den = den.Mul(diff)
		}
		invDen, err := den.Invert()
		if err != nil {
			return nil, ErrDuplicateAbscissa
		}
		out[i] = num.Mul(invDen)
	}
	return out, nil
}

// fastLagrangeCoefficientsAtZero uses the product tree Q(X)=Π(X-x_j), its
// derivative Q', multipoint evaluation of Q' at every x_i, and a single
// Montgomery-batched field inversion to compute all coefficients at once
// (spec §4.C).
func fastLagrangeCoefficientsAtZero(group curve.Curve, xs []curve.Scalar) ([]curve.Scalar, error) {
	tree, err := BuildProductTree(group, xs)
	if err != nil {
		return nil, err
	}
	qDeriv := tree.Poly.Derivative()
	qDerivAtX := MultipointEvaluate(qDeriv, tree)

	denoms := make([]curve.Scalar, len(xs))
	for i := range xs {
		denoms[i] = xs[i].Clone().Mul(qDerivAtX[i])
	}
	invDenoms, err := BatchInvert(denoms)
	if err != nil {
		return nil, ErrDuplicateAbscissa
	}

	negQ0 := tree.Poly.Constant().Negate()
	out := make([]curve.Scalar, len(xs))
	for i := range xs {
		out[i] = negQ0.Clone().Mul(invDenoms[i])
	}
	return out, nil
}

// BatchInvert inverts every scalar in one field inversion via Montgomery's
// trick (spec §4.C "All inversions batched"). Returns ErrZeroInverse via
// curve.Scalar.Invert if any input is zero.
func BatchInvert(xs []curve.Scalar) ([]curve.Scalar, error) {
	n := len(xs)
	if n == 0 {
		return nil, nil
	}
	prefix := make([]curve.Scalar, n)
	prefix[0] = xs[0].Clone()
	for i := 1; i < n; i++ {
		prefix[i] = prefix[i-1].Clone().Mul(xs[i])
	}
	inv, err := prefix[n-1].Clone().Invert()
	if err != nil {
		return nil, err
	}
	out := make([]curve.Scalar, n)
	for i := n - 1; i > 0; i-- {
		out[i] = inv.Clone().Mul(prefix[i-1])
		inv = inv.Mul(xs[i])
	}
	out[0] = inv
	return out, nil
}

// LagrangeAtZero reconstructs f(0) = sum(y_i * ℓ_i(0)) given t distinct
// points (xs[i], ys[i]).
func LagrangeAtZero(group curve.Curve, xs, ys []curve.Scalar) (curve.Scalar, error) {
	if len(xs) != len(ys) {
		return nil, ErrEmptyInput
	}
	coeffs, err := LagrangeCoefficientsAtZero(group, xs)
	if err != nil {
		return nil, err
	}
	result := group.NewScalar()
	for i := range xs {
		result.Add(ys[i].Clone().Mul(coeffs[i]))
	}
	return result, nil
}

// InterpolateAt evaluates the unique degree-<t polynomial through the
// given points at an arbitrary x = at (spec §4.C "Lagrange interpolation
// ... at arbitrary x"), by substituting y_i' = y_i and reusing the same
// product-tree machinery shifted by `at`.
func InterpolateAt(group curve.Curve, xs, ys []curve.Scalar, at curve.Scalar) (curve.Scalar, error) {
	if len(xs) != len(ys) {
		return nil, ErrEmptyInput
	}
	shifted := make([]curve.Scalar, len(xs))
	for i, x := range xs {
		shifted[i] = x.Clone().Sub(at)
	}
	return LagrangeAtZero(group, shifted, ys)
}

// Lagrange returns the ℓ_i(0) coefficients keyed by party ID, matching the
// teacher's polynomial.Lagrange(group, ids) call shape (used e.g. to
// combine public key shares via MSM rather than reconstructing a secret
// scalar directly).
func Lagrange(group curve.Curve, ids party.IDSlice) map[party.ID]curve.Scalar {
	xs := make([]curve.Scalar, len(ids))
	for i, id := range ids {
		xs[i] = id.Scalar(group)
	}
	coeffs, err := LagrangeCoefficientsAtZero(group, xs)
	if err != nil {
		return nil
	}
	out := make(map[party.ID]curve.Scalar, len(ids))
	for i, id := range ids {
		out[id] = coeffs[i]
	}
	return out
}
