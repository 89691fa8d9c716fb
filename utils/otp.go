package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// BookingOTPLength is the number of digits in a handoff code.
const BookingOTPLength = 6

// GenerateNumericOTP returns a uniformly random numeric code of exactly length
// digits, leading zeros included.
func GenerateNumericOTP(length int) (string, error) {
	if length <= 0 || length > 18 {
		return "", fmt.Errorf("invalid OTP length %d", length)
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate random OTP: %w", err)
	}
	return fmt.Sprintf("%0*d", length, n), nil
}

// GenerateBookingOTP returns a 6 digit handoff code.
func GenerateBookingOTP() (string, error) {
	return GenerateNumericOTP(BookingOTPLength)
}
