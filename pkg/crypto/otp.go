package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	// VerificationTokenBytes of entropy go into an email-verification token.
	VerificationTokenBytes = 32

	otpMin  = 100000
	otpSpan = 900000 // draws land in [100000, 999999]
)

// GenerateVerificationToken returns a 64-character lowercase hex string
// backed by 32 bytes of cryptographically secure randomness.
func GenerateVerificationToken() (string, error) {
	bytes := make([]byte, VerificationTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate verification token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateOTP returns a 6-digit numeric one-time code drawn uniformly from
// 100000-999999.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%d", otpMin+n.Int64()), nil
}
