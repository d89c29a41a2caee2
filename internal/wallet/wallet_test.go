package wallet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallet_SignAndVerify(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "wallet.json"))
	require.NoError(t, w.CreateNewKey())

	pub, err := w.PublicKeyBytes()
	require.NoError(t, err)

	payload := []byte("mint:event-1:alice:regular")
	sig, err := w.Sign(payload)
	require.NoError(t, err)

	assert.True(t, Verify(payload, sig, pub))
	assert.False(t, Verify([]byte("mint:event-1:bob:regular"), sig, pub))
}

func TestVerify_BadInputs(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "wallet.json"))
	require.NoError(t, w.CreateNewKey())
	pub, err := w.PublicKeyBytes()
	require.NoError(t, err)

	payload := []byte("payload")
	sig, err := w.Sign(payload)
	require.NoError(t, err)

	// 壞公鑰、壞簽章都只回 false，不會 panic
	assert.False(t, Verify(payload, sig, []byte("not a der key")))
	assert.False(t, Verify(payload, []byte("garbage"), pub))
	assert.False(t, Verify(payload, nil, pub))
	assert.False(t, Verify(payload, sig, nil))
}

func TestWallet_LoadKey(t *testing.T) {
	file := filepath.Join(t.TempDir(), "wallet.json")

	missing := New(file)
	loaded, err := missing.LoadKey()
	require.NoError(t, err)
	assert.False(t, loaded)

	created := New(file)
	require.NoError(t, created.CreateNewKey())
	createdAddr, err := created.Address()
	require.NoError(t, err)

	reloaded := New(file)
	loaded, err = reloaded.LoadKey()
	require.NoError(t, err)
	assert.True(t, loaded)

	reloadedAddr, err := reloaded.Address()
	require.NoError(t, err)
	assert.Equal(t, createdAddr, reloadedAddr)
}
