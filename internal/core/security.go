// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const otpDigits = 6

// GenerateOTP returns a zero-padded 6-digit numeric code.
func GenerateOTP() (string, error) {
	max := big.NewInt(1)
	for range otpDigits {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	return fmt.Sprintf("%0*d", otpDigits, n), nil
}

func HashOTP(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(
		[]byte(code),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return "", fmt.Errorf("hash otp: %w", err)
	}

	return string(hash), nil
}

func VerifyOTP(code, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword(
		[]byte(encodedHash),
		[]byte(code),
	) == nil
}
