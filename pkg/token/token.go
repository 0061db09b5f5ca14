package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const unsubscribeTokenBytes = 24

// NewUnsubscribeToken generates a random token suitable for
// authenticating an unsubscribe link without a login
func NewUnsubscribeToken() (string, error) {
	buf := make([]byte, unsubscribeTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
