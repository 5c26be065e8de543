package polynomial

import "github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"

// mulNTT multiplies a and b via a number-theoretic transform over the
// scalar field itself (spec §4.C), when the group
// supplies a primitive root of unity of the needed order. It reports
// ok=false when no such root is available, in which case the caller falls
// back to Karatsuba — this is the documented, non-load-bearing behavior
// for secp256k1 (DESIGN.md Open Question 4): the group order's 2-adic
// subgroup is too small to support transform lengths above nttCrossover,
// so this path is wired but inactive for the concrete curve in use.
func mulNTT(a, b *Polynomial) (*Polynomial, bool) {
	n := nextPowerOfTwo(len(a.coeffs) + len(b.coeffs) - 1)
	root, ok := rootOfUnity(a.group, n)
	if !ok {
		return nil, false
	}

	fa := padTo(a.group, a.coeffs, n)
	fb := padTo(a.group, b.coeffs, n)

	ntt(a.group, fa, root, false)
	ntt(a.group, fb, root, false)
	for i := range fa {
		fa[i].Mul(fb[i])
	}

	invRoot, err := root.Clone().Invert()
	if err != nil {
		return nil, false
	}
	ntt(a.group, fa, invRoot, true)

	nInv, err := a.group.ScalarFromUint64(uint64(n)).Invert()
	if err != nil {
		return nil, false
	}
	for i := range fa {
		fa[i].Mul(nInv)
	}
	return New(a.group, fa), true
}

// rootOfUnity returns a primitive n-th root of unity for the group's
// scalar field, if one is known. No verified constant is currently wired
// for secp256k1 (see package doc on mulNTT), so this always reports false;
// the hook exists so a group with a large 2-adic subgroup can supply one
// without changing any caller.
func rootOfUnity(group curve.Curve, n int) (curve.Scalar, bool) {
	_ = group
	_ = n
	return nil, false
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func padTo(group curve.Curve, coeffs []curve.Scalar, n int) []curve.Scalar {
	out := make([]curve.Scalar, n)
	for i := 0; i < n; i++ {
		if i < len(coeffs) {
			out[i] = coeffs[i].Clone()
		} else {
			out[i] = group.NewScalar()
		}
	}
	return out
}

// ntt performs an in-place radix-2 Cooley-Tukey transform using root as
// the n-th root of unity (or its inverse, for inverse==true).
func ntt(group curve.Curve, a []curve.Scalar, root curve.Scalar, inverse bool) {
	n := len(a)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		// w is a primitive `length`-th root of unity, derived from root by
		// repeated squaring down from order n.
		w := root.Clone()
		for k := length; k < n; k <<= 1 {
			w = w.Mul(w)
		}
		for start := 0; start < n; start += length {
			wn := group.NewScalar().SetUint64(1)
			half := length / 2
			for k := 0; k < half; k++ {
				u := a[start+k]
				v := a[start+k+half].Clone().Mul(wn)
				sum := u.Clone().Add(v)
				diff := u.Clone().Sub(v)
				a[start+k] = sum
				a[start+k+half] = diff
				wn = wn.Mul(w)
			}
		}
	}
	_ = inverse
}
