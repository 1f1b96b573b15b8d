package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("longenoughpassword")
	require.NoError(t, err)
	assert.NotEqual(t, "longenoughpassword", hash)

	assert.NoError(t, CheckPassword(hash, "longenoughpassword"))
	assert.ErrorIs(t, CheckPassword(hash, "wrongpassword"), ErrPasswordMismatch)
}

func TestHashPassword_LongPasswordsDifferBeyondBcryptLimit(t *testing.T) {
	prefix := strings.Repeat("a", 100)
	hash, err := HashPassword(prefix + "one")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, prefix+"one"))
	assert.ErrorIs(t, CheckPassword(hash, prefix+"two"), ErrPasswordMismatch)
}

func TestHashPassword_MaximumLength(t *testing.T) {
	password := strings.Repeat("x", 2000)
	hash, err := HashPassword(password)
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(hash, password))
}
