// Package vss implements the secret-sharing and VSS layers (spec §4.D,
// §4.F): Shamir splitting with a parallel Pedersen blinding polynomial,
// fast-Lagrange reconstruction, per-share NIZK proofs, verification of a
// share against a public commitment vector, proactive refresh, and
// threshold change.
//
// Grounded on the teacher's protocols/lss/jvss.GenerateShares/VerifyShare
// (createCommitment's "C_i = g^f(i) * h^g(i)" shape, generalized from a
// flat per-index evaluation loop to the product-tree-backed polynomial
// package) and protocols/lss/dealer (split/reconstruct naming).
package vss

import (
	"io"
	"sort"

	"github.com/cryptographyteam/zk-thresh-pro/internal/vsserr"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/polynomial"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/pedersen"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/proof"
)

// maxParties bounds n (spec §4.D precondition "n <= 2^16").
const maxParties = 1 << 16

// Share is one holder's (index, value, blinding, proof, commitment) tuple
// (spec §3). Index is the small positive integer 1..n the splitter
// assigned; it is lifted into the scalar field wherever polynomial
// arithmetic or a proof transcript needs it.
type Share struct {
	Index uint32
	Y     curve.Scalar // f(index)
	R     curve.Scalar // g(index), the blinding polynomial's value
	C     curve.Point  // Y*G0 + R*H0
	Proof *proof.Proof
}

// IndexScalar lifts the share's small-integer index into the group's
// scalar field.
func (s Share) IndexScalar(group curve.Curve) curve.Scalar {
	return group.ScalarFromUint64(uint64(s.Index))
}

// Split divides secret into n shares, any t of which reconstruct it, and
// publishes a commitment vector binding every share to the splitting
// polynomial (spec §4.D). 2 <= t <= n <= 2^16, else InvalidInput.
func Split(group curve.Curve, secret curve.Scalar, t, n int, rng io.Reader) ([]Share, pedersen.CommitmentVector, error) {
	if t < 2 || n < t || n > maxParties {
		return nil, nil, vsserr.New(vsserr.InvalidInput, "threshold out of range")
	}

	f, err := polynomial.NewPolynomial(group, t-1, secret, rng)
	if err != nil {
		return nil, nil, vsserr.New(vsserr.RngUnavailable, err.Error())
	}
	defer f.Zeroize()

	g, err := polynomial.NewPolynomial(group, t-1, nil, rng)
	if err != nil {
		return nil, nil, vsserr.New(vsserr.RngUnavailable, err.Error())
	}
	defer g.Zeroize()

	cv := pedersen.CommitVector(group, f.Coefficients(), g.Coefficients())

	shares := make([]Share, n)
	for idx := 1; idx <= n; idx++ {
		x := group.ScalarFromUint64(uint64(idx))
		y := f.Evaluate(x)
		r := g.Evaluate(x)
		c := pedersen.Commit(group, y, r)
		p, err := proof.Prove(group, rng, x, y, r, c)
		if err != nil {
			return nil, nil, vsserr.New(vsserr.RngUnavailable, err.Error())
		}
		shares[idx-1] = Share{Index: uint32(idx), Y: y, R: r, C: c, Proof: p}
	}
	return shares, cv, nil
}

// dedupe collapses duplicate indices with matching values and fails
// Inconsistent on duplicates with conflicting values (spec §4.D).
func dedupe(shares []Share) (map[uint32]Share, error) {
	out := make(map[uint32]Share, len(shares))
	for _, s := range shares {
		existing, ok := out[s.Index]
		if !ok {
			out[s.Index] = s
			continue
		}
		if !existing.Y.Equal(s.Y) {
			return nil, vsserr.New(vsserr.Inconsistent, "duplicate index with conflicting values")
		}
	}
	return out, nil
}

// Reconstruct recovers the secret from >= t distinct valid shares, using
// Lagrange interpolation at zero over exactly t shares (the lowest t
// indices, if more are supplied, for deterministic behavior); the
// product-tree path runs above 16 shares, the direct path at or below.
// Does not verify proofs or VSS consistency; callers needing integrity
// must call VerifyProof/VerifyShareAgainstCommitments first.
func Reconstruct(group curve.Curve, shares []Share, t int) (curve.Scalar, error) {
	if len(shares) == 0 {
		return nil, vsserr.New(vsserr.InvalidInput, "empty share list")
	}
	deduped, err := dedupe(shares)
	if err != nil {
		return nil, err
	}
	if len(deduped) < t {
		return nil, vsserr.New(vsserr.Insufficient, "fewer than t shares supplied")
	}

	ordered := make([]Share, 0, len(deduped))
	for _, s := range deduped {
		ordered = append(ordered, s)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })
	ordered = ordered[:t]

	xs := make([]curve.Scalar, t)
	ys := make([]curve.Scalar, t)
	for i, s := range ordered {
		xs[i] = s.IndexScalar(group)
		ys[i] = s.Y
	}
	secret, err := polynomial.LagrangeAtZero(group, xs, ys)
	if err != nil {
		return nil, vsserr.New(vsserr.Internal, err.Error())
	}
	return secret, nil
}

// VerifyProof checks that C opens to (Y, R) and that share's NIZK proof
// verifies against C, so a share whose value was altered is rejected.
// Both checks are always evaluated.
func VerifyProof(group curve.Curve, share Share) bool {
	opens := pedersen.Commit(group, share.Y, share.R).Equal(share.C)
	proves := share.Proof.Verify(group, share.IndexScalar(group), share.C)
	return opens && proves
}

// VerifyShareAgainstCommitments checks share against the public commitment
// vector: Ĉ = Σ index^k · C_k must equal Y·G0 + R·H0 (spec §4.F). This is
// independent of VerifyProof; Active-state shares require both to pass.
func VerifyShareAgainstCommitments(group curve.Curve, share Share, cv pedersen.CommitmentVector) bool {
	expected := cv.EvaluateAt(group, share.IndexScalar(group))
	actual := pedersen.Commit(group, share.Y, share.R)
	return actual.Equal(expected)
}

// ChangeThreshold reconstructs the secret from oldShares (requiring >=
// tOld of them) and re-splits it under a new threshold (spec §4.D).
func ChangeThreshold(group curve.Curve, oldShares []Share, tOld, tNew, n int, rng io.Reader) ([]Share, pedersen.CommitmentVector, error) {
	secret, err := Reconstruct(group, oldShares, tOld)
	if err != nil {
		return nil, nil, err
	}
	defer secret.Zeroize()
	return Split(group, secret, tNew, n, rng)
}
