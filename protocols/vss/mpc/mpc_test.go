package mpc_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
	"github.com/cryptographyteam/zk-thresh-pro/protocols/vss"
	"github.com/cryptographyteam/zk-thresh-pro/protocols/vss/mpc"
)

// TestAggregateSumsSecrets covers spec §8 scenario 4: two parties split
// s_A=7 and s_B=11 with t=2, n=3; aggregating pointwise and reconstructing
// must yield 18.
func TestAggregateSumsSecrets(t *testing.T) {
	group := curve.Secp256k1{}
	sA := group.NewScalar().SetUint64(7)
	sB := group.NewScalar().SetUint64(11)

	cA, err := mpc.GenerateContribution(group, 1, sA, 2, 3, rand.Reader)
	require.NoError(t, err)
	cB, err := mpc.GenerateContribution(group, 2, sB, 2, 3, rand.Reader)
	require.NoError(t, err)

	joint, jointCV, err := mpc.Aggregate(group, []*mpc.Contribution{cA, cB})
	require.NoError(t, err)
	require.Len(t, joint, 3)

	for _, s := range joint {
		assert.True(t, vss.VerifyShareAgainstCommitments(group, s, jointCV))
	}

	got, err := vss.Reconstruct(group, joint[:2], 2)
	require.NoError(t, err)
	want := group.NewScalar().SetUint64(18)
	assert.True(t, want.Equal(got))
}

func TestAggregateAbortsOnBadContribution(t *testing.T) {
	group := curve.Secp256k1{}
	sA := group.NewScalar().SetUint64(1)
	sB := group.NewScalar().SetUint64(2)

	cA, err := mpc.GenerateContribution(group, 1, sA, 2, 3, rand.Reader)
	require.NoError(t, err)
	cB, err := mpc.GenerateContribution(group, 2, sB, 2, 3, rand.Reader)
	require.NoError(t, err)

	// Corrupt party B's first share so it no longer matches its own
	// commitment vector.
	cB.Shares[0].Y = cB.Shares[0].Y.Clone().Add(group.NewScalar().SetUint64(1))

	_, _, err = mpc.Aggregate(group, []*mpc.Contribution{cA, cB})
	require.Error(t, err)
	var aborted *mpc.AbortedByParty
	assert.ErrorAs(t, err, &aborted)
	assert.Equal(t, 2, aborted.Party)
}

func TestAggregateRejectsMismatchedParameters(t *testing.T) {
	group := curve.Secp256k1{}
	sA := group.NewScalar().SetUint64(1)
	sB := group.NewScalar().SetUint64(2)

	cA, err := mpc.GenerateContribution(group, 1, sA, 2, 3, rand.Reader)
	require.NoError(t, err)
	cB, err := mpc.GenerateContribution(group, 2, sB, 3, 4, rand.Reader)
	require.NoError(t, err)

	_, _, err = mpc.Aggregate(group, []*mpc.Contribution{cA, cB})
	assert.Error(t, err)
}
