package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// invitationTokenBytes yields 64 hex characters, 256 bits of entropy.
const invitationTokenBytes = 32

// GenerateInvitationToken mints a cryptographically random hex token.
func GenerateInvitationToken() (string, error) {
	buf := make([]byte, invitationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
