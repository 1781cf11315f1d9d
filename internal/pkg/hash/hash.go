package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hasher produces deterministic one-way digests of user identifiers. The
// same normalized input always yields the same digest, which is what makes
// equality lookups possible without ever storing or comparing plaintext.
type Hasher struct {
	secret []byte
}

func New(secret string) *Hasher {
	return &Hasher{secret: []byte(secret)}
}

// Digest normalizes the identifier (trim, lower-case) and returns the hex
// SHA-256 of the value wrapped between two copies of the server secret.
// There is no inverse operation.
func (h *Hasher) Digest(identifier string) string {
	normalized := strings.ToLower(strings.TrimSpace(identifier))
	sum := sha256.Sum256(append(append(append([]byte{}, h.secret...), normalized...), h.secret...))
	return hex.EncodeToString(sum[:])
}
