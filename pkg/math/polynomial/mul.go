package polynomial

import "github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"

// Crossover thresholds between the three multiplication strategies (spec
// §4.C). Chosen empirically per DESIGN.md Open Question 3; not
// semantically load-bearing — every path is bit-exact with schoolbook.
const (
	karatsubaCrossover = 32
	nttCrossover       = 256
)

// Mul returns a*b, dispatching on operand size: schoolbook below
// karatsubaCrossover, Karatsuba between the crossovers, NTT above
// nttCrossover when the transform length is supported by the group's
// 2-adic subgroup (falling back to Karatsuba otherwise — see
// DESIGN.md Open Question 4).
func Mul(a, b *Polynomial) *Polynomial {
	if len(a.coeffs) == 0 || len(b.coeffs) == 0 {
		return Zero(a.group)
	}
	n := len(a.coeffs)
	if len(b.coeffs) > n {
		n = len(b.coeffs)
	}
	switch {
	case n < karatsubaCrossover:
		return mulSchoolbook(a, b)
	case n < nttCrossover:
		return mulKaratsuba(a, b)
	default:
		if out, ok := mulNTT(a, b); ok {
			return out
		}
		return mulKaratsuba(a, b)
	}
}

func mulSchoolbook(a, b *Polynomial) *Polynomial {
	group := a.group
	result := make([]curve.Scalar, len(a.coeffs)+len(b.coeffs)-1)
	for i := range result {
		result[i] = group.NewScalar()
	}
	for i, ac := range a.coeffs {
		if ac.IsZero() {
			continue
		}
		for j, bc := range b.coeffs {
			term := ac.Clone().Mul(bc)
			result[i+j].Add(term)
		}
	}
	return New(group, result)
}

// mulKaratsuba implements the classic 3-multiplication recursive split.
// Below karatsubaCrossover it bottoms out into schoolbook.
func mulKaratsuba(a, b *Polynomial) *Polynomial {
	group := a.group
	n := len(a.coeffs)
	if len(b.coeffs) > n {
		n = len(b.coeffs)
	}
	if n < karatsubaCrossover {
		return mulSchoolbook(a, b)
	}

	half := n / 2
	aLo, aHi := splitAt(a, half)
	bLo, bHi := splitAt(b, half)

	var z0, z2 *Polynomial
	runParallel(func() { z0 = Mul(aLo, bLo) }, func() { z2 = Mul(aHi, bHi) })
	aSum := Add(aLo, aHi)
	bSum := Add(bLo, bHi)
	z1 := Sub(Sub(Mul(aSum, bSum), z0), z2)

	result := make([]curve.Scalar, 2*n-1)
	for i := range result {
		result[i] = group.NewScalar()
	}
	addShifted(result, z0, 0)
	addShifted(result, z1, half)
	addShifted(result, z2, 2*half)
	return New(group, result)
}

func addShifted(dst []curve.Scalar, p *Polynomial, shift int) {
	for i, c := range p.coeffs {
		dst[i+shift].Add(c)
	}
}

func splitAt(p *Polynomial, at int) (lo, hi *Polynomial) {
	if at > len(p.coeffs) {
		at = len(p.coeffs)
	}
	loCoeffs := make([]curve.Scalar, at)
	for i := 0; i < at; i++ {
		loCoeffs[i] = p.coeffs[i].Clone()
	}
	hiCoeffs := make([]curve.Scalar, len(p.coeffs)-at)
	for i := at; i < len(p.coeffs); i++ {
		hiCoeffs[i-at] = p.coeffs[i].Clone()
	}
	return New(p.group, loCoeffs), New(p.group, hiCoeffs)
}
