package utils

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContractNumberFormat(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^HD-202509-[A-Z0-9]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		number, err := GenerateContractNumber(now)
		require.NoError(t, err)
		assert.Regexp(t, pattern, number)
		seen[number] = true
	}
	// 50 draws from a 36^6 space should not all collide.
	assert.Greater(t, len(seen), 1)
}

func TestRandomCodeLength(t *testing.T) {
	code, err := RandomCode(8)
	require.NoError(t, err)
	assert.Len(t, code, 8)

	_, err = RandomCode(0)
	require.Error(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(errors.New("Error 1062: Duplicate entry 'HD-1' for key 'contract_number'")))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: contracts.contract_number")))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(nil))
}
