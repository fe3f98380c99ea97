package utils

import (
	"crypto/rand"
	"math/big"
)

// GenerateCode returns a random numeric code of n digits, the same shape as
// the pickup/delivery verification codes and the email OTP.
func GenerateCode(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + d.Int64())
	}
	return string(digits), nil
}
