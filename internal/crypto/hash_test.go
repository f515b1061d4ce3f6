package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	other, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "bcrypt использует случайную соль")

	_, err = HashPassword("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password cannot be empty")
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "correct horse"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong horse"), ErrPasswordMismatch)

	err = CheckPassword("not-a-bcrypt-hash", "correct horse")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}
