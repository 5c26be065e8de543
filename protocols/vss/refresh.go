package vss

import (
	"crypto/sha256"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/cryptographyteam/zk-thresh-pro/internal/vsserr"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/polynomial"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/pedersen"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/proof"
)

// hkdfInfo domain-separates the epoch-scoped expansion below from any
// other use of HKDF in the hosting application.
const hkdfInfo = "zk-thresh-pro/vss/refresh-epoch"

// EpochRNG derives an io.Reader scoped to one refresh epoch from fresh
// entropy, via HKDF-Expand keyed on a 32-byte extract from base and salted
// with the epoch counter. This does not replace base as the source of
// randomness (HKDF cannot manufacture entropy it wasn't given); it exists
// so two independent calls within the same epoch that must derive related
// nonces from a single entropy draw can do so reproducibly, matching spec
// §4.D's "epoch counter is appended to the transcript label" intent
// extended to the randomness side.
func EpochRNG(base io.Reader, epoch uint64) (io.Reader, error) {
	seed := make([]byte, 32)
	if _, err := io.ReadFull(base, seed); err != nil {
		return nil, err
	}
	salt := epochContext(epoch)
	return hkdf.New(sha256.New, seed, salt, []byte(hkdfInfo)), nil
}

// Delta is one holder's proactive-refresh contribution (spec §4.D): a
// zero-constant-term polynomial pair (delta, delta_r) evaluated at every
// index 1..n, to be broadcast to the other n-1 holders. Shares[i-1].Y is
// delta(i); Shares[i-1].R is delta_r(i). The delta shares carry no
// commitment or proof; Refresh folds a delta share into a holder's own
// share and proves the result.
type Delta struct {
	Shares []Share
	CV     pedersen.CommitmentVector
}

// GenerateDelta draws a fresh degree-(t-1) polynomial with delta(0)=0 (and
// an independent blinding delta_r with delta_r(0)=0), evaluates both at
// every index 1..n, and commits to their coefficients (spec §4.D "Each
// holder locally samples a degree-(t-1) polynomial δ with δ(0) = 0").
func GenerateDelta(group curve.Curve, t, n int, rng io.Reader) (*Delta, error) {
	if t < 2 || n < t || n > maxParties {
		return nil, vsserr.New(vsserr.InvalidInput, "threshold out of range")
	}
	zero := group.NewScalar()
	delta, err := polynomial.NewPolynomial(group, t-1, zero, rng)
	if err != nil {
		return nil, vsserr.New(vsserr.RngUnavailable, err.Error())
	}
	defer delta.Zeroize()
	deltaR, err := polynomial.NewPolynomial(group, t-1, zero, rng)
	if err != nil {
		return nil, vsserr.New(vsserr.RngUnavailable, err.Error())
	}
	defer deltaR.Zeroize()

	cv := pedersen.CommitVector(group, delta.Coefficients(), deltaR.Coefficients())
	shares := make([]Share, n)
	for idx := 1; idx <= n; idx++ {
		x := group.ScalarFromUint64(uint64(idx))
		shares[idx-1] = Share{Index: uint32(idx), Y: delta.Evaluate(x), R: deltaR.Evaluate(x)}
	}
	return &Delta{Shares: shares, CV: cv}, nil
}

// epochContext encodes the epoch counter as the proof context absorbed
// into the refreshed share's Fiat-Shamir transcript (spec §4.D "Epoch
// counter is appended to the transcript label").
func epochContext(epoch uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], epoch)
	return buf[:]
}

// Refresh applies one holder's share of a broadcast Delta to own, and
// folds the Delta's commitment vector into cv, producing the holder's new
// share and the engine's view of the refreshed commitment vector. The
// secret is unchanged; shares from a different epoch are incompatible
// with the result unless combined with its matching refreshed commitment
// vector (spec §4.D).
//
// In a full n-party refresh, every holder broadcasts its own Delta and
// every recipient folds all of them in turn; this models a single round
// of that fold (see protocols/vss/mpc for the general m-contribution
// aggregation this specializes).
func Refresh(group curve.Curve, cv pedersen.CommitmentVector, own Share, delta *Delta, epoch uint64, rng io.Reader) (Share, pedersen.CommitmentVector, error) {
	if int(own.Index) < 1 || int(own.Index) > len(delta.Shares) {
		return Share{}, nil, vsserr.New(vsserr.InvalidInput, "share index out of range for delta")
	}
	if len(cv) != len(delta.CV) {
		return Share{}, nil, vsserr.New(vsserr.InvalidInput, "commitment vector length mismatch")
	}
	d := delta.Shares[own.Index-1]

	newCV := make(pedersen.CommitmentVector, len(cv))
	for k := range cv {
		newCV[k] = cv[k].Clone().Add(delta.CV[k])
	}

	newY := own.Y.Clone().Add(d.Y)
	newR := own.R.Clone().Add(d.R)
	newC := pedersen.Commit(group, newY, newR)

	epochRNG, err := EpochRNG(rng, epoch)
	if err != nil {
		return Share{}, nil, vsserr.New(vsserr.RngUnavailable, err.Error())
	}
	ctx := epochContext(epoch)
	newProof, err := proof.ProveWithContext(group, epochRNG, own.IndexScalar(group), newY, newR, newC, ctx)
	if err != nil {
		return Share{}, nil, vsserr.New(vsserr.RngUnavailable, err.Error())
	}

	newShare := Share{Index: own.Index, Y: newY, R: newR, C: newC, Proof: newProof}
	return newShare, newCV, nil
}

// VerifyRefreshedProof checks a refreshed share's proof, which was bound
// to its epoch context (spec §4.D).
func VerifyRefreshedProof(group curve.Curve, share Share, epoch uint64) bool {
	return share.Proof.VerifyWithContext(group, share.IndexScalar(group), share.C, epochContext(epoch))
}
