package signature

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret(32)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(secret.String(), SecretPrefix))
	assert.Len(t, secret.Bytes(), 32)

	_, err = GenerateSecret(8)
	assert.Error(t, err)

	_, err = GenerateSecret(128)
	assert.Error(t, err)
}

func TestParseSecret(t *testing.T) {
	original, err := GenerateSecret(32)
	require.NoError(t, err)

	parsed, err := ParseSecret(original.String())
	require.NoError(t, err)
	assert.Equal(t, original.Bytes(), parsed.Bytes())

	_, err = ParseSecret("nosuchprefix_abc")
	assert.Error(t, err)

	_, err = ParseSecret(SecretPrefix + "!!!not-base64!!!")
	assert.Error(t, err)
}

func TestSignAndVerify(t *testing.T) {
	secret, err := GenerateSecret(32)
	require.NoError(t, err)

	id := "d-1"
	now := time.Now()
	payload := []byte(`{"text":"hello"}`)

	sig := Sign(secret, id, now, payload)
	assert.True(t, strings.HasPrefix(sig, SignatureVersion+","))

	assert.True(t, Verify(secret, id, now, payload, sig))
	assert.False(t, Verify(secret, id, now, []byte("tampered"), sig))
	assert.False(t, Verify(secret, "other-id", now, payload, sig))

	other, err := GenerateSecret(32)
	require.NoError(t, err)
	assert.False(t, Verify(other, id, now, payload, sig))
}
