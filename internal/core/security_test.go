// AngelaMos | 2026
// security_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)

		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9')
		}
		seen[code] = struct{}{}
	}

	assert.Greater(t, len(seen), 1, "codes must not be constant")
}

func TestHashOTP_Roundtrip(t *testing.T) {
	hash, err := HashOTP("123456")
	require.NoError(t, err)

	assert.NotEqual(t, "123456", hash)
	assert.True(t, VerifyOTP("123456", hash))
	assert.False(t, VerifyOTP("654321", hash))
}
