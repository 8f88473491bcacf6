package signature

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

/* Outgoing dispatches can be signed following the Standard Webhooks scheme
 * so downstream receivers can authenticate relayed notifications.
 * https://www.standardwebhooks.com/
 */

const (
	// SecretPrefix is the prefix for symmetric signing secrets
	SecretPrefix = "whsec_"

	// SignatureVersion is the version identifier for symmetric signatures
	SignatureVersion = "v1"

	// MinSecretBytes is the minimum recommended secret size (192 bits)
	MinSecretBytes = 24

	// MaxSecretBytes is the maximum recommended secret size (512 bits)
	MaxSecretBytes = 64

	// Header names carried on signed dispatches
	HeaderID        = "webhook-id"
	HeaderTimestamp = "webhook-timestamp"
	HeaderSignature = "webhook-signature"
)

// Secret represents a signing secret
type Secret struct {
	raw    []byte
	base64 string
}

// GenerateSecret creates a new cryptographically secure signing secret
func GenerateSecret(size int) (Secret, error) {
	if size < MinSecretBytes || size > MaxSecretBytes {
		return Secret{}, fmt.Errorf("secret size must be between %d and %d bytes", MinSecretBytes, MaxSecretBytes)
	}

	bytes := make([]byte, size)
	if _, err := rand.Read(bytes); err != nil {
		return Secret{}, fmt.Errorf("generating random bytes: %w", err)
	}

	return Secret{
		raw:    bytes,
		base64: SecretPrefix + base64.StdEncoding.EncodeToString(bytes),
	}, nil
}

// ParseSecret parses a base64-encoded secret with the whsec_ prefix
func ParseSecret(encoded string) (Secret, error) {
	if !strings.HasPrefix(encoded, SecretPrefix) {
		return Secret{}, fmt.Errorf("secret must start with %s prefix", SecretPrefix)
	}

	b64 := strings.TrimPrefix(encoded, SecretPrefix)
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return Secret{}, fmt.Errorf("decoding base64 secret: %w", err)
	}

	if len(raw) < MinSecretBytes || len(raw) > MaxSecretBytes {
		return Secret{}, fmt.Errorf("secret size must be between %d and %d bytes", MinSecretBytes, MaxSecretBytes)
	}

	return Secret{
		raw:    raw,
		base64: encoded,
	}, nil
}

// String returns the base64-encoded secret with prefix
func (s Secret) String() string {
	return s.base64
}

// Bytes returns the raw secret bytes
func (s Secret) Bytes() []byte {
	return s.raw
}

/* Sign computes the signature for a dispatch.
 * The signed content is "{id}.{timestamp}.{payload}" and the returned value
 * has the form "v1,<base64 signature>".
 */
func Sign(secret Secret, id string, timestamp time.Time, payload []byte) string {
	content := fmt.Sprintf("%s.%d.%s", id, timestamp.Unix(), payload)

	mac := hmac.New(sha256.New, secret.raw)
	mac.Write([]byte(content))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return SignatureVersion + "," + signature
}

/* Verify checks a signature produced by Sign. Receivers use it in tests and
 * downstream verification examples; constant-time comparison is delegated
 * to hmac.Equal.
 */
func Verify(secret Secret, id string, timestamp time.Time, payload []byte, signatureHeader string) bool {
	for _, candidate := range strings.Split(signatureHeader, " ") {
		parts := strings.SplitN(candidate, ",", 2)
		if len(parts) != 2 || parts[0] != SignatureVersion {
			continue
		}
		expected := Sign(secret, id, timestamp, payload)
		expectedB64 := strings.TrimPrefix(expected, SignatureVersion+",")
		got, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			continue
		}
		want, err := base64.StdEncoding.DecodeString(expectedB64)
		if err != nil {
			continue
		}
		if hmac.Equal(got, want) {
			return true
		}
	}
	return false
}

// FormatTimestamp renders a timestamp the way the timestamp header carries it
func FormatTimestamp(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
