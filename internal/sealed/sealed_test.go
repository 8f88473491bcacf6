package sealed_test

import (
	"testing"

	"github.com/marcelsud/alert-relay/internal/sealed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBox(t *testing.T) *sealed.Box {
	t.Helper()
	key := make([]byte, sealed.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	box, err := sealed.NewBox(key)
	require.NoError(t, err)
	return box
}

func TestNewBox(t *testing.T) {
	t.Run("rejects short key", func(t *testing.T) {
		_, err := sealed.NewBox([]byte("too short"))
		require.Error(t, err)
	})

	t.Run("accepts base64 key", func(t *testing.T) {
		encoded, err := sealed.GenerateKey()
		require.NoError(t, err)

		box, err := sealed.NewBoxFromBase64(encoded)
		require.NoError(t, err)
		assert.NotNil(t, box)
	})

	t.Run("rejects invalid base64", func(t *testing.T) {
		_, err := sealed.NewBoxFromBase64("not base64!!!")
		require.Error(t, err)
	})
}

func TestSealOpen(t *testing.T) {
	box := testBox(t)

	t.Run("round trip", func(t *testing.T) {
		plaintext := []byte(`{"Authorization":"Bearer secret"}`)

		blob, err := box.Seal(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, blob)
		assert.Equal(t, sealed.BlobVersion, blob[0])

		opened, err := box.Open(blob)
		require.NoError(t, err)
		assert.Equal(t, plaintext, opened)
	})

	t.Run("nonces differ between seals", func(t *testing.T) {
		a, err := box.Seal([]byte("same input"))
		require.NoError(t, err)
		b, err := box.Seal([]byte("same input"))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("tampered ciphertext fails with ErrDecrypt", func(t *testing.T) {
		blob, err := box.Seal([]byte("payload"))
		require.NoError(t, err)

		blob[len(blob)-1] ^= 0xff
		_, err = box.Open(blob)
		require.ErrorIs(t, err, sealed.ErrDecrypt)
	})

	t.Run("tampered version byte fails with ErrDecrypt", func(t *testing.T) {
		blob, err := box.Seal([]byte("payload"))
		require.NoError(t, err)

		blob[0] = 0x02
		_, err = box.Open(blob)
		require.ErrorIs(t, err, sealed.ErrDecrypt)
	})

	t.Run("truncated blob fails with ErrDecrypt", func(t *testing.T) {
		_, err := box.Open([]byte{0x01, 0x02})
		require.ErrorIs(t, err, sealed.ErrDecrypt)
	})

	t.Run("wrong key fails with ErrDecrypt", func(t *testing.T) {
		blob, err := box.Seal([]byte("payload"))
		require.NoError(t, err)

		otherKey := make([]byte, sealed.KeySize)
		other, err := sealed.NewBox(otherKey)
		require.NoError(t, err)

		_, err = other.Open(blob)
		require.ErrorIs(t, err, sealed.ErrDecrypt)
	})
}
