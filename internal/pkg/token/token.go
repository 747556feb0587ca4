package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewSecret generates a cryptographically random 64-character hex string
// suitable as an HMAC signing key.
func NewSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
