package polynomial_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/polynomial"
)

func scalarsFromInts(group curve.Curve, vals ...uint64) []curve.Scalar {
	out := make([]curve.Scalar, len(vals))
	for i, v := range vals {
		out[i] = group.NewScalar().SetUint64(v)
	}
	return out
}

func TestEvaluateHorner(t *testing.T) {
	group := curve.Secp256k1{}
	// f(x) = 3 + 2x + x^2
	p := polynomial.New(group, scalarsFromInts(group, 3, 2, 1))
	for x := uint64(0); x < 5; x++ {
		got := p.Evaluate(group.NewScalar().SetUint64(x))
		want := group.NewScalar().SetUint64(3 + 2*x + x*x)
		assert.True(t, want.Equal(got), "f(%d)", x)
	}
}

func TestAddSub(t *testing.T) {
	group := curve.Secp256k1{}
	a := polynomial.New(group, scalarsFromInts(group, 1, 2, 3))
	b := polynomial.New(group, scalarsFromInts(group, 10, 20))
	sum := polynomial.Add(a, b)
	assert.Equal(t, 2, sum.Degree())
	back := polynomial.Sub(sum, b)
	assert.True(t, back.Evaluate(group.NewScalar().SetUint64(5)).Equal(a.Evaluate(group.NewScalar().SetUint64(5))))
}

// TestMulBitExactAcrossStrategies checks spec §4.C's "all paths must be
// bit-exact with schoolbook" by forcing a Karatsuba-sized multiplication
// (degree 40, above karatsubaCrossover) and checking that the product
// evaluates to a(x)*b(x) at ten points.
func TestMulBitExactAcrossStrategies(t *testing.T) {
	group := curve.Secp256k1{}
	const degree = 40
	aVals := make([]uint64, degree+1)
	bVals := make([]uint64, degree+1)
	for i := range aVals {
		aVals[i] = uint64(i + 1)
		bVals[i] = uint64(2*i + 3)
	}
	a := polynomial.New(group, scalarsFromInts(group, aVals...))
	b := polynomial.New(group, scalarsFromInts(group, bVals...))

	product := polynomial.Mul(a, b)
	require.Equal(t, a.Degree()+b.Degree(), product.Degree())

	for x := uint64(0); x < 10; x++ {
		pt := group.NewScalar().SetUint64(x)
		want := a.Evaluate(pt).Mul(b.Evaluate(pt))
		got := product.Evaluate(pt)
		assert.True(t, want.Equal(got), "mismatch at x=%d", x)
	}
}

func TestDerivative(t *testing.T) {
	group := curve.Secp256k1{}
	// f(x) = 3 + 2x + 5x^2 -> f'(x) = 2 + 10x
	p := polynomial.New(group, scalarsFromInts(group, 3, 2, 5))
	d := p.Derivative()
	want := polynomial.New(group, scalarsFromInts(group, 2, 10))
	for x := uint64(0); x < 5; x++ {
		pt := group.NewScalar().SetUint64(x)
		assert.True(t, want.Evaluate(pt).Equal(d.Evaluate(pt)))
	}
}

func TestMultipointEvaluateMatchesDirect(t *testing.T) {
	group := curve.Secp256k1{}
	p := polynomial.New(group, scalarsFromInts(group, 7, 3, 9, 1))
	xs := scalarsFromInts(group, 1, 2, 3, 4, 5)
	tree, err := polynomial.BuildProductTree(group, xs)
	require.NoError(t, err)
	got := polynomial.MultipointEvaluate(p, tree)
	require.Len(t, got, len(xs))
	for i, x := range xs {
		want := p.Evaluate(x)
		assert.True(t, want.Equal(got[i]))
	}
}

func TestBatchInvert(t *testing.T) {
	group := curve.Secp256k1{}
	xs := scalarsFromInts(group, 2, 3, 5, 7, 11)
	inv, err := polynomial.BatchInvert(xs)
	require.NoError(t, err)
	one := group.NewScalar().SetUint64(1)
	for i, x := range xs {
		assert.True(t, one.Equal(x.Clone().Mul(inv[i])))
	}
}

func TestNewPolynomialRandomDegree(t *testing.T) {
	group := curve.Secp256k1{}
	secret := group.NewScalar().SetUint64(42)
	p, err := polynomial.NewPolynomial(group, 4, secret, rand.Reader)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Degree())
	assert.True(t, p.Constant().Equal(secret))
}
