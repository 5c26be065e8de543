// Package pedersen implements the two-generator commitment used to bind
// share values (spec §4.E: C = s*G0 + r*H0) and the per-coefficient
// commitment vector a VSS sharing publishes (spec §3 CommitmentVector).
//
// Grounded on the teacher's jvss.go pattern:
//
//	g := val.ActOnBase()
//	h := valG.Act(pedersen.H(j.group))
//	points[i] = j.group.NewPoint().Add(g, h)
package pedersen

import "github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"

// H returns the group's second generator H0.
func H(group curve.Curve) curve.Point {
	return group.H()
}

// Commit returns s*G0 + r*H0.
func Commit(group curve.Curve, s, r curve.Scalar) curve.Point {
	g := s.ActOnBase()
	h := r.Act(group.H())
	return g.Add(h)
}

// CommitmentVector is the ordered list [C_0, ..., C_{t-1}] published
// alongside a sharing, where C_k commits to the secret polynomial's k-th
// coefficient (spec §3). C_0 commits to the secret itself.
type CommitmentVector []curve.Point

// CommitVector builds the commitment vector for a splitting polynomial's
// coefficients a_0..a_{t-1} and a parallel blinding polynomial's
// coefficients b_0..b_{t-1}: C_k = a_k*G0 + b_k*H0.
func CommitVector(group curve.Curve, a, b []curve.Scalar) CommitmentVector {
	out := make(CommitmentVector, len(a))
	for k := range a {
		out[k] = Commit(group, a[k], b[k])
	}
	return out
}

// EvaluateAt computes Ĉ = sum(i^k * C_k) for k=0..t-1, i.e. the expected
// commitment to a share at index i, via repeated multiplication to build
// the powers of i (spec §4.F: "The i^k sequence is computed by repeated
// multiplication, not by fresh exponentiation").
func (cv CommitmentVector) EvaluateAt(group curve.Curve, i curve.Scalar) curve.Point {
	if len(cv) == 0 {
		return group.NewPoint()
	}
	scalars := make([]curve.Scalar, len(cv))
	power := group.NewScalar().SetUint64(1)
	for k := range cv {
		scalars[k] = power.Clone()
		power = power.Mul(i)
	}
	return group.MultiScalarMult(scalars, cv)
}

// Bytes returns the deterministic wire encoding t_u32_le || C_0 || ... ||
// C_{t-1} (spec §6).
func (cv CommitmentVector) Bytes() []byte {
	out := make([]byte, 0, 4+len(cv)*33)
	n := uint32(len(cv))
	out = append(out, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
	for _, c := range cv {
		out = append(out, c.Bytes()...)
	}
	return out
}

// DecodeCommitmentVector parses the wire encoding produced by Bytes.
func DecodeCommitmentVector(group curve.Curve, b []byte) (CommitmentVector, error) {
	if len(b) < 4 {
		return nil, curve.ErrNonCanonical
	}
	n := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	b = b[4:]
	pointSize := group.PointSize()
	if len(b) != int(n)*pointSize {
		return nil, curve.ErrNonCanonical
	}
	out := make(CommitmentVector, n)
	for k := 0; k < int(n); k++ {
		p, err := group.DecodePoint(b[k*pointSize : (k+1)*pointSize])
		if err != nil {
			return nil, err
		}
		out[k] = p
	}
	return out, nil
}
