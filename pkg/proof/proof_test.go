package proof_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/pedersen"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/proof"
)

func TestProveVerifyAccepts(t *testing.T) {
	group := curve.Secp256k1{}
	i := group.NewScalar().SetUint64(3)
	s := group.NewScalar().SetUint64(42)
	r := group.NewScalar().SetUint64(7)
	c := pedersen.Commit(group, s, r)

	p, err := proof.Prove(group, rand.Reader, i, s, r, c)
	require.NoError(t, err)
	assert.True(t, p.Verify(group, i, c))
}

func TestVerifyRejectsTamperedShare(t *testing.T) {
	group := curve.Secp256k1{}
	i := group.NewScalar().SetUint64(3)
	s := group.NewScalar().SetUint64(42)
	r := group.NewScalar().SetUint64(7)
	c := pedersen.Commit(group, s, r)

	p, err := proof.Prove(group, rand.Reader, i, s, r, c)
	require.NoError(t, err)

	tamperedC := pedersen.Commit(group, group.NewScalar().SetUint64(43), r)
	assert.False(t, p.Verify(group, i, tamperedC))
}

func TestVerifyRejectsWrongIndex(t *testing.T) {
	group := curve.Secp256k1{}
	i := group.NewScalar().SetUint64(3)
	other := group.NewScalar().SetUint64(4)
	s := group.NewScalar().SetUint64(42)
	r := group.NewScalar().SetUint64(7)
	c := pedersen.Commit(group, s, r)

	p, err := proof.Prove(group, rand.Reader, i, s, r, c)
	require.NoError(t, err)
	assert.False(t, p.Verify(group, other, c))
}

// TestBatchVerifyEquivalence checks spec §8's "individual verify accepts
// all <=> batch verify accepts" and "a single altered z_s anywhere causes
// batch to reject".
func TestBatchVerifyEquivalence(t *testing.T) {
	group := curve.Secp256k1{}
	const n = 12
	is := make([]curve.Scalar, n)
	cs := make([]curve.Point, n)
	proofs := make([]*proof.Proof, n)
	for k := 0; k < n; k++ {
		is[k] = group.NewScalar().SetUint64(uint64(k + 1))
		s := group.NewScalar().SetUint64(uint64(100 + k))
		r := group.NewScalar().SetUint64(uint64(200 + k))
		cs[k] = pedersen.Commit(group, s, r)
		p, err := proof.Prove(group, rand.Reader, is[k], s, r, cs[k])
		require.NoError(t, err)
		proofs[k] = p
	}

	for k := range proofs {
		require.True(t, proofs[k].Verify(group, is[k], cs[k]))
	}

	ok, err := proof.BatchVerify(group, is, cs, proofs)
	require.NoError(t, err)
	assert.True(t, ok)

	tampered := *proofs[7]
	tampered.Zs = tampered.Zs.Clone().Add(group.NewScalar().SetUint64(1))
	broken := append([]*proof.Proof(nil), proofs...)
	broken[7] = &tampered

	ok, err = proof.BatchVerify(group, is, cs, broken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBatchVerifyAboveParallelThreshold(t *testing.T) {
	group := curve.Secp256k1{}
	const n = 80
	is := make([]curve.Scalar, n)
	cs := make([]curve.Point, n)
	proofs := make([]*proof.Proof, n)
	for k := 0; k < n; k++ {
		is[k] = group.NewScalar().SetUint64(uint64(k + 1))
		s := group.NewScalar().SetUint64(uint64(k))
		r := group.NewScalar().SetUint64(uint64(k + 1000))
		cs[k] = pedersen.Commit(group, s, r)
		p, err := proof.Prove(group, rand.Reader, is[k], s, r, cs[k])
		require.NoError(t, err)
		proofs[k] = p
	}
	ok, err := proof.BatchVerify(group, is, cs, proofs)
	require.NoError(t, err)
	assert.True(t, ok)
}
