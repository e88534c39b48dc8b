package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		assert.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9', "otp must be numeric, got %q", otp)
		}
		seen[otp] = true
	}
	// 50 draws from a million values should not collapse to one code
	assert.Greater(t, len(seen), 1)
}
