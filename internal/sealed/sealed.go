package sealed

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

/* sealed encrypts small blobs for at-rest storage using XChaCha20-Poly1305.
 * Blob layout: [version: 1 byte] [nonce: 24 bytes] [ciphertext+tag].
 * The version byte is authenticated as AAD, so tampering with it fails
 * decryption instead of selecting a different parsing path.
 */

// KeySize is the required key length in bytes.
const KeySize = chacha20poly1305.KeySize

// BlobVersion is the version byte prepended to every sealed blob.
const BlobVersion byte = 0x01

// ErrDecrypt is returned when a blob cannot be authenticated or parsed.
// Callers treat it as a degraded read, never as a fatal condition.
var ErrDecrypt = errors.New("sealed: cannot decrypt blob")

// Box seals and opens blobs under a single symmetric key.
type Box struct {
	key []byte
}

// NewBox creates a Box from a raw 32-byte key.
func NewBox(key []byte) (*Box, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(key))
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &Box{key: k}, nil
}

// NewBoxFromBase64 creates a Box from a base64-encoded key, the form keys
// take in configuration.
func NewBoxFromBase64(encoded string) (*Box, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 key: %w", err)
	}
	return NewBox(key)
}

// GenerateKey returns a new random key, base64-encoded for configuration.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("generating random key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// Seal encrypts plaintext and returns the versioned blob.
func (b *Box) Seal(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(b.key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	blob := make([]byte, 1+chacha20poly1305.NonceSizeX, 1+chacha20poly1305.NonceSizeX+len(plaintext)+chacha20poly1305.Overhead)
	blob[0] = BlobVersion
	nonce := blob[1 : 1+chacha20poly1305.NonceSizeX]
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	return aead.Seal(blob, nonce, plaintext, blob[:1]), nil
}

// Open decrypts a blob produced by Seal. Any structural or authentication
// failure returns an error wrapping ErrDecrypt.
func (b *Box) Open(blob []byte) ([]byte, error) {
	if len(blob) < 1+chacha20poly1305.NonceSizeX+chacha20poly1305.Overhead {
		return nil, fmt.Errorf("%w: blob too short (%d bytes)", ErrDecrypt, len(blob))
	}
	if blob[0] != BlobVersion {
		return nil, fmt.Errorf("%w: unknown version 0x%02x", ErrDecrypt, blob[0])
	}

	aead, err := chacha20poly1305.NewX(b.key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	nonce := blob[1 : 1+chacha20poly1305.NonceSizeX]
	plaintext, err := aead.Open(nil, nonce, blob[1+chacha20poly1305.NonceSizeX:], blob[:1])
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed", ErrDecrypt)
	}
	return plaintext, nil
}
