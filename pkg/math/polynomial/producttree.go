package polynomial

import (
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/pool"
)

// ProductTree is a balanced binary tree of partial products of the linear
// factors {(X - x_i)} (spec §4.C). It backs fast multipoint evaluation and
// the fast Lagrange-at-zero reconstruction.
type ProductTree struct {
	group  curve.Curve
	Poly   *Polynomial // product of this subtree's leaves
	Left   *ProductTree
	Right  *ProductTree
	leaf   bool
	leafX  curve.Scalar
}

// BuildProductTree builds a balanced product tree over the given
// abscissas. Build cost is O(M(n) log n) where M is Mul (spec §4.C).
func BuildProductTree(group curve.Curve, xs []curve.Scalar) (*ProductTree, error) {
	if len(xs) == 0 {
		return nil, ErrEmptyInput
	}
	if err := checkDistinct(xs); err != nil {
		return nil, err
	}
	return buildProductTreeRec(group, xs), nil
}

func buildProductTreeRec(group curve.Curve, xs []curve.Scalar) *ProductTree {
	if len(xs) == 1 {
		// (X - x_0)
		neg := xs[0].Clone().Negate()
		poly := New(group, []curve.Scalar{neg, group.NewScalar().SetUint64(1)})
		return &ProductTree{group: group, Poly: poly, leaf: true, leafX: xs[0]}
	}
	mid := len(xs) / 2
	var left, right *ProductTree
	if len(xs) >= pool.DefaultParallelThreshold {
		runParallel(
			func() { left = buildProductTreeRec(group, xs[:mid]) },
			func() { right = buildProductTreeRec(group, xs[mid:]) },
		)
	} else {
		left = buildProductTreeRec(group, xs[:mid])
		right = buildProductTreeRec(group, xs[mid:])
	}
	return &ProductTree{group: group, Poly: Mul(left.Poly, right.Poly), Left: left, Right: right}
}

func checkDistinct(xs []curve.Scalar) error {
	for i := range xs {
		for j := i + 1; j < len(xs); j++ {
			if xs[i].Equal(xs[j]) {
				return ErrDuplicateAbscissa
			}
		}
	}
	return nil
}

// MultipointEvaluate evaluates p at every abscissa in the tree via
// recursive remaindering down the product tree (spec §4.C), returning
// results in the same order the tree's leaves were built in (left to
// right, i.e. the order xs was passed to BuildProductTree).
func MultipointEvaluate(p *Polynomial, tree *ProductTree) []curve.Scalar {
	out := make([]curve.Scalar, 0, leafCount(tree))
	multipointEvalRec(p, tree, &out)
	return out
}

func leafCount(t *ProductTree) int {
	if t.leaf {
		return 1
	}
	return leafCount(t.Left) + leafCount(t.Right)
}

func multipointEvalRec(remainder *Polynomial, node *ProductTree, out *[]curve.Scalar) {
	if node.leaf {
		*out = append(*out, remainder.Evaluate(node.leafX))
		return
	}
	var rLeft, rRight *Polynomial
	if node.Poly.Degree() >= pool.DefaultParallelThreshold {
		runParallel(
			func() { _, rLeft = divMod(remainder, node.Left.Poly) },
			func() { _, rRight = divMod(remainder, node.Right.Poly) },
		)
	} else {
		_, rLeft = divMod(remainder, node.Left.Poly)
		_, rRight = divMod(remainder, node.Right.Poly)
	}
	multipointEvalRec(rLeft, node.Left, out)
	multipointEvalRec(rRight, node.Right, out)
}

// divMod computes the quotient and remainder of a/b over the field,
// schoolbook long division. Requires b to be nonzero (non-empty,
// normalized); deg(remainder) < deg(b).
func divMod(a, b *Polynomial) (q, r *Polynomial) {
	group := a.group
	if len(b.coeffs) == 0 {
		// division by the zero polynomial cannot occur for well-formed
		// product-tree nodes; guard defensively rather than panic.
		return Zero(group), a
	}
	remainder := make([]curve.Scalar, len(a.coeffs))
	for i, c := range a.coeffs {
		remainder[i] = c.Clone()
	}
	degB := len(b.coeffs) - 1
	leadInv, err := b.coeffs[degB].Clone().Invert()
	if err != nil {
		return Zero(group), New(group, remainder)
	}

	quotient := make([]curve.Scalar, 0)
	for len(remainder) > 0 && len(remainder)-1 >= degB {
		degR := len(remainder) - 1
		coeff := remainder[degR].Clone().Mul(leadInv)
		shift := degR - degB
		for len(quotient) <= shift {
			quotient = append(quotient, group.NewScalar())
		}
		quotient[shift].Add(coeff)
		for i := 0; i <= degB; i++ {
			term := coeff.Clone().Mul(b.coeffs[i])
			remainder[shift+i].Sub(term)
		}
		// trim trailing (highest-degree) zero coefficients
		n := len(remainder)
		for n > 0 && remainder[n-1].IsZero() {
			n--
		}
		remainder = remainder[:n]
	}
	return New(group, quotient), New(group, remainder)
}
