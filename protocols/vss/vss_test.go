package vss_test

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/cryptographyteam/zk-thresh-pro/internal/vsserr"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
	"github.com/cryptographyteam/zk-thresh-pro/protocols/vss"
)

func byIndex(shares []vss.Share, idx uint32) vss.Share {
	for _, s := range shares {
		if s.Index == idx {
			return s
		}
	}
	panic("index not found")
}

// TestSplitVerifyReconstruct covers spec §8 scenario 1: t=3, n=5,
// secret=42. split -> verify all 5 -> pick shares {1,3,5} -> reconstruct.
func TestSplitVerifyReconstruct(t *testing.T) {
	group := curve.Secp256k1{}
	secret := group.NewScalar().SetUint64(42)

	shares, cv, err := vss.Split(group, secret, 3, 5, rand.Reader)
	require.NoError(t, err)
	require.Len(t, shares, 5)

	for _, s := range shares {
		assert.True(t, vss.VerifyProof(group, s))
		assert.True(t, vss.VerifyShareAgainstCommitments(group, s, cv))
	}

	picked := []vss.Share{byIndex(shares, 1), byIndex(shares, 3), byIndex(shares, 5)}
	got, err := vss.Reconstruct(group, picked, 3)
	require.NoError(t, err)
	assert.True(t, got.Equal(secret))
}

// TestTamperedShareFailsBothChecks covers spec §8 scenario 2: incrementing
// share[3].Y by 1 must fail both the NIZK and the VSS commitment check.
func TestTamperedShareFailsBothChecks(t *testing.T) {
	group := curve.Secp256k1{}
	secret := group.NewScalar().SetUint64(42)

	shares, cv, err := vss.Split(group, secret, 3, 5, rand.Reader)
	require.NoError(t, err)

	tampered := byIndex(shares, 3)
	tampered.Y = tampered.Y.Clone().Add(group.NewScalar().SetUint64(1))

	assert.False(t, vss.VerifyProof(group, tampered))
	assert.False(t, vss.VerifyShareAgainstCommitments(group, tampered, cv))
}

// TestReconstructInsufficientShares covers spec §8 scenario 3: t=2, n=3,
// only 1 share supplied.
func TestReconstructInsufficientShares(t *testing.T) {
	group := curve.Secp256k1{}
	secret := group.NewScalar().SetUint64(7)

	shares, _, err := vss.Split(group, secret, 2, 3, rand.Reader)
	require.NoError(t, err)

	_, err = vss.Reconstruct(group, shares[:1], 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, vsserr.ErrInsufficient))
}

// TestInvalidThresholdRejected checks the t/n precondition (spec §4.D).
func TestInvalidThresholdRejected(t *testing.T) {
	group := curve.Secp256k1{}
	secret := group.NewScalar().SetUint64(1)

	_, _, err := vss.Split(group, secret, 1, 5, rand.Reader)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, vsserr.ErrInvalidInput))

	_, _, err = vss.Split(group, secret, 6, 5, rand.Reader)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, vsserr.ErrInvalidInput))
}

// TestDuplicateIndexConflictingValuesFailsInconsistent checks the
// duplicate-index dedup rule in spec §4.D.
func TestDuplicateIndexConflictingValuesFailsInconsistent(t *testing.T) {
	group := curve.Secp256k1{}
	secret := group.NewScalar().SetUint64(5)

	shares, _, err := vss.Split(group, secret, 2, 3, rand.Reader)
	require.NoError(t, err)

	conflicting := shares[0]
	conflicting.Y = conflicting.Y.Clone().Add(group.NewScalar().SetUint64(1))

	_, err = vss.Reconstruct(group, append(shares, conflicting), 2)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, vsserr.ErrInconsistent))
}

// TestRefreshPreservesSecret covers spec §8 scenario 5 (the reconstruction
// half): split, then refresh every holder once, then reconstruct from any
// 3 new shares equals the original secret.
func TestRefreshPreservesSecret(t *testing.T) {
	group := curve.Secp256k1{}
	secret := group.NewScalar().SetUint64(99)

	shares, cv, err := vss.Split(group, secret, 3, 5, rand.Reader)
	require.NoError(t, err)

	delta, err := vss.GenerateDelta(group, 3, 5, rand.Reader)
	require.NoError(t, err)

	const epoch = 1
	newShares := make([]vss.Share, len(shares))
	cvAfter := cv
	for i, s := range shares {
		ns, ncv, err := vss.Refresh(group, cv, s, delta, epoch, rand.Reader)
		require.NoError(t, err)
		newShares[i] = ns
		cvAfter = ncv
	}

	for _, s := range newShares {
		assert.True(t, vss.VerifyShareAgainstCommitments(group, s, cvAfter))
		assert.True(t, vss.VerifyRefreshedProof(group, s, epoch))
	}

	picked := []vss.Share{newShares[0], newShares[2], newShares[4]}
	got, err := vss.Reconstruct(group, picked, 3)
	require.NoError(t, err)
	assert.True(t, got.Equal(secret))
}

// TestMixedEpochSharesFailInconsistentVSS covers the second half of
// scenario 5: mixing old and new shares must fail VSS against the new
// joint commitment vector.
func TestMixedEpochSharesFailInconsistentVSS(t *testing.T) {
	group := curve.Secp256k1{}
	secret := group.NewScalar().SetUint64(17)

	shares, cv, err := vss.Split(group, secret, 3, 5, rand.Reader)
	require.NoError(t, err)

	delta, err := vss.GenerateDelta(group, 3, 5, rand.Reader)
	require.NoError(t, err)

	newShare, newCV, err := vss.Refresh(group, cv, shares[0], delta, 1, rand.Reader)
	require.NoError(t, err)

	// An old (pre-refresh) share checked against the new joint commitment
	// vector must fail.
	assert.False(t, vss.VerifyShareAgainstCommitments(group, shares[1], newCV))
	// The refreshed share passes against the new vector.
	assert.True(t, vss.VerifyShareAgainstCommitments(group, newShare, newCV))
}

// TestChangeThreshold exercises reconstruct-then-resplit.
func TestChangeThreshold(t *testing.T) {
	group := curve.Secp256k1{}
	secret := group.NewScalar().SetUint64(123)

	shares, _, err := vss.Split(group, secret, 2, 3, rand.Reader)
	require.NoError(t, err)

	newShares, newCV, err := vss.ChangeThreshold(group, shares, 2, 3, 5, rand.Reader)
	require.NoError(t, err)
	require.Len(t, newShares, 5)

	for _, s := range newShares {
		assert.True(t, vss.VerifyShareAgainstCommitments(group, s, newCV))
	}

	got, err := vss.Reconstruct(group, newShares[:3], 3)
	require.NoError(t, err)
	assert.True(t, got.Equal(secret))
}

// TestShareEncodeDecodeRoundTrip covers spec §8 scenario 6.
func TestShareEncodeDecodeRoundTrip(t *testing.T) {
	group := curve.Secp256k1{}
	secret := group.NewScalar().SetUint64(55)

	shares, _, err := vss.Split(group, secret, 2, 3, rand.Reader)
	require.NoError(t, err)

	original := shares[0]
	encoded := original.Bytes(group)
	decoded, err := vss.DecodeShare(group, encoded)
	require.NoError(t, err)

	reencoded := decoded.Bytes(group)
	assert.Equal(t, encoded, reencoded)
	assert.Equal(t, original.Index, decoded.Index)
	assert.True(t, original.Y.Equal(decoded.Y))
	assert.True(t, original.C.Equal(decoded.C))
}

// TestDecodeShareTruncatedIsSerializationError checks that a truncated
// share blob fails with a SerializationError a caller can detect via
// errors.Is, without having to match on the error's text.
func TestDecodeShareTruncatedIsSerializationError(t *testing.T) {
	group := curve.Secp256k1{}
	_, err := vss.DecodeShare(group, make([]byte, 4))
	require.Error(t, err)
	assert.True(t, errors.Is(err, vsserr.ErrSerializationError))
}
