// Package otp generates the short numeric one-time codes sent over email
// for account verification and password reset.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generate returns a uniformly random 6-digit code in [100000, 999999].
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
