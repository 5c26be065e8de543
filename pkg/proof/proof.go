// Package proof implements the per-share Pedersen+Fiat-Shamir NIZK proof
// of knowledge of (s, r) such that C = s*G0 + r*H0 (spec §4.E), generalized
// from the teacher's jvss.go createShareProof/verifyShareProof (a
// single-scalar Schnorr proof of knowledge of a DH share) to a two-scalar
// Pedersen opening proof.
package proof

import (
	"io"

	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/transcript"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/pedersen"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/pool"
)

// transcriptLabel is the Fiat-Shamir domain-separation label for this proof
// system (DESIGN.md Open Question: domain-separation strings, decided
// "FS/proof").
const transcriptLabel = "FS/proof"

// Proof is a Schnorr-style proof of knowledge of (s, r) behind a Pedersen
// commitment C = s*G0 + r*H0, bound to the commitment and the share index
// so a proof cannot be replayed against a different share.
type Proof struct {
	R  curve.Point  // commitment to the nonces: k_s*G0 + k_r*H0
	Zs curve.Scalar // k_s + c*s
	Zr curve.Scalar // k_r + c*r
}

// Prove builds a proof that the prover knows (s, r) opening commitment C at
// party index i.
func Prove(group curve.Curve, rng io.Reader, i curve.Scalar, s, r curve.Scalar, c curve.Point) (*Proof, error) {
	return ProveWithContext(group, rng, i, s, r, c, nil)
}

// ProveWithContext is Prove with an additional context string folded into
// the Fiat-Shamir transcript. protocols/vss/Refresh uses this to append
// the epoch counter to the transcript label (spec §4.D "Epoch counter is
// appended to the transcript label"), so a refreshed share's proof cannot
// be confused with one from a different epoch.
func ProveWithContext(group curve.Curve, rng io.Reader, i curve.Scalar, s, r curve.Scalar, c curve.Point, context []byte) (*Proof, error) {
	ks, err := group.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	kr, err := group.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	rPoint := pedersen.Commit(group, ks, kr)

	e := challenge(group, i, c, rPoint, context)

	zs := ks.Add(e.Clone().Mul(s))
	zr := kr.Add(e.Clone().Mul(r))
	return &Proof{R: rPoint, Zs: zs, Zr: zr}, nil
}

// Verify checks a single proof against commitment C at party index i.
// Constant-time: the final comparison is a single Equal call with no
// intermediate branch on c's bits (spec §4.E "no early exit leaking c
// bits").
func (p *Proof) Verify(group curve.Curve, i curve.Scalar, c curve.Point) bool {
	return p.VerifyWithContext(group, i, c, nil)
}

// VerifyWithContext is Verify with the same context string the matching
// ProveWithContext call used.
func (p *Proof) VerifyWithContext(group curve.Curve, i curve.Scalar, c curve.Point, context []byte) bool {
	e := challenge(group, i, c, p.R, context)
	lhs := pedersen.Commit(group, p.Zs, p.Zr)
	rhs := p.R.Clone().Add(e.Act(c))
	return lhs.Equal(rhs)
}

// challenge derives c = hash_to_scalar(label, enc(G0), enc(H0), enc(C_i),
// enc(R), enc(i)) as spec §4.E prescribes, where label is "FS/proof", with
// "/" and the optional context string appended to it when one is given.
// Every group element entering the proof is absorbed (strong Fiat-Shamir).
// Binding C into the transcript also prevents moving a proof to a
// different commitment (DESIGN.md Open Question: commitment binding,
// decided "yes").
func challenge(group curve.Curve, i curve.Scalar, c, r curve.Point, context []byte) curve.Scalar {
	label := transcriptLabel
	if len(context) > 0 {
		label += "/" + string(context)
	}
	tr := transcript.New(label)
	tr.WritePoint(group.Generator())
	tr.WritePoint(group.H())
	tr.WritePoint(c)
	tr.WritePoint(r)
	tr.WriteScalar(i)
	return tr.SumScalar(group)
}

// batchParallelThreshold is the number of proofs at or above which BatchVerify
// partitions challenge derivation across the worker pool (spec §5:
// "partition only above a tunable threshold").
const batchParallelThreshold = 64

// batchTranscriptLabel domain-separates the batch-weight derivation below
// from the per-proof challenge transcript (DESIGN.md Open Question: batch
// weight derivation).
const batchTranscriptLabel = "FS/batch"

// batchTerm holds the per-proof contribution to a randomized batch check.
type batchTerm struct {
	weight curve.Scalar
	zs, zr curve.Scalar
	r      curve.Point
	challW curve.Scalar // weight * c
	c      curve.Point
}

// deriveBatchWeights computes rho_i "from a hash of all inputs" exactly as
// spec §4.E prescribes: one transcript absorbs every (i, C_i, R_i, z_s,i,
// z_r,i) in the batch, then each rho_i is read off by extending that same
// running hash with i's position before taking a scalar output, so rho_i is
// deterministic, publicly re-derivable, and depends on the whole batch
// rather than on fresh entropy.
func deriveBatchWeights(group curve.Curve, is []curve.Scalar, cs []curve.Point, proofs []*Proof) []curve.Scalar {
	n := len(proofs)
	tr := transcript.New(batchTranscriptLabel)
	for k := 0; k < n; k++ {
		tr.WriteScalar(is[k])
		tr.WritePoint(cs[k])
		tr.WritePoint(proofs[k].R)
		tr.WriteScalar(proofs[k].Zs)
		tr.WriteScalar(proofs[k].Zr)
	}
	weights := make([]curve.Scalar, n)
	for k := 0; k < n; k++ {
		tr.WriteUint64(uint64(k))
		weights[k] = tr.SumScalar(group)
	}
	return weights
}

// BatchVerify checks Sum(rho_i*(z_{s,i}*G0 + z_{r,i}*H0 - R_i - c_i*C_i)) = 0
// via two multi-scalar multiplications, rather than one MSM per proof, with
// rho_i derived per deriveBatchWeights. A failed batch does not indicate
// which index failed; callers needing localization must fall back to
// individual Verify calls (spec §4.E).
func BatchVerify(group curve.Curve, is []curve.Scalar, cs []curve.Point, proofs []*Proof) (bool, error) {
	n := len(proofs)
	if len(is) != n || len(cs) != n {
		return false, nil
	}
	if n == 0 {
		return true, nil
	}

	weights := deriveBatchWeights(group, is, cs, proofs)
	terms := make([]batchTerm, n)
	for k := 0; k < n; k++ {
		terms[k].weight = weights[k]
	}

	compute := func(k int) {
		e := challenge(group, is[k], cs[k], proofs[k].R, nil)
		terms[k].zs = terms[k].weight.Clone().Mul(proofs[k].Zs)
		terms[k].zr = terms[k].weight.Clone().Mul(proofs[k].Zr)
		terms[k].r = proofs[k].R
		terms[k].challW = terms[k].weight.Clone().Mul(e)
		terms[k].c = cs[k]
	}

	if n < batchParallelThreshold {
		for k := 0; k < n; k++ {
			compute(k)
		}
	} else {
		pl := pool.NewPool(0)
		defer pl.TearDown()
		pl.ParallelFor(n, 1, compute)
	}

	zsSum := group.NewScalar()
	zrSum := group.NewScalar()
	rScalars := make([]curve.Scalar, n)
	rPoints := make([]curve.Point, n)
	cScalars := make([]curve.Scalar, n)
	cPoints := make([]curve.Point, n)
	for k, t := range terms {
		zsSum.Add(t.zs)
		zrSum.Add(t.zr)
		rScalars[k] = t.weight
		rPoints[k] = t.r
		cScalars[k] = t.challW
		cPoints[k] = t.c
	}

	lhs := pedersen.Commit(group, zsSum, zrSum)
	rhsR := group.MultiScalarMult(rScalars, rPoints)
	rhsC := group.MultiScalarMult(cScalars, cPoints)
	rhs := rhsR.Add(rhsC)
	return lhs.Equal(rhs), nil
}
