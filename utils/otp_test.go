package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBookingOTP_AlwaysSixDigits(t *testing.T) {
	for i := 0; i < 2000; i++ {
		otp, err := GenerateBookingOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		for _, r := range otp {
			require.True(t, r >= '0' && r <= '9', "non-digit in %q", otp)
		}
	}
}

func TestGenerateNumericOTP_KeepsLeadingZeros(t *testing.T) {
	// With length 1 a zero shows up quickly; it must stay a single character.
	sawZero := false
	for i := 0; i < 500 && !sawZero; i++ {
		otp, err := GenerateNumericOTP(1)
		require.NoError(t, err)
		assert.Len(t, otp, 1)
		sawZero = otp == "0"
	}
	assert.True(t, sawZero)
}

func TestGenerateNumericOTP_InvalidLength(t *testing.T) {
	_, err := GenerateNumericOTP(0)
	assert.Error(t, err)
}
