package keylifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/keylifecycle"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
)

func TestLifecycleHappyPath(t *testing.T) {
	group := curve.Secp256k1{}
	rec := keylifecycle.New("key-1")
	assert.Equal(t, keylifecycle.PendingGeneration, rec.State())

	secret := group.NewScalar().SetUint64(42)
	require.NoError(t, rec.Transition(keylifecycle.Active, secret))
	assert.Equal(t, keylifecycle.Active, rec.State())
	assert.NotNil(t, rec.Secret())

	require.NoError(t, rec.Transition(keylifecycle.Suspended, nil))
	assert.NotNil(t, rec.Secret(), "secret survives Active<->Suspended")

	require.NoError(t, rec.Transition(keylifecycle.Deactivated, nil))
	assert.Nil(t, rec.Secret(), "secret dropped leaving Active/Suspended")

	require.NoError(t, rec.Transition(keylifecycle.Destroyed, nil))
	assert.Equal(t, keylifecycle.Destroyed, rec.State())
}

func TestIllegalTransitionRejected(t *testing.T) {
	rec := keylifecycle.New("key-2")
	err := rec.Transition(keylifecycle.Suspended, nil)
	assert.Error(t, err)
}

func TestDestroyedIsTerminal(t *testing.T) {
	rec := keylifecycle.New("key-3")
	require.NoError(t, rec.Transition(keylifecycle.Destroyed, nil))
	err := rec.Transition(keylifecycle.Active, nil)
	assert.Error(t, err)
}

func TestActiveRequiresSecret(t *testing.T) {
	rec := keylifecycle.New("key-4")
	err := rec.Transition(keylifecycle.Active, nil)
	assert.Error(t, err)
}

func TestMetaRoundTrip(t *testing.T) {
	group := curve.Secp256k1{}
	rec := keylifecycle.New("key-5")
	require.NoError(t, rec.Transition(keylifecycle.Active, group.NewScalar().SetUint64(1)))

	b, err := rec.MarshalMeta()
	require.NoError(t, err)

	decoded, err := keylifecycle.UnmarshalMeta(b)
	require.NoError(t, err)
	assert.Equal(t, keylifecycle.Active, decoded.State())
	assert.Nil(t, decoded.Secret(), "decoded record carries no secret material")
}
