package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	fastBcrypt(t)

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	require.NoError(t, ComparePassword(hash, "s3cret"))
	require.ErrorIs(t, ComparePassword(hash, "wrong"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestHashPassword_Error(t *testing.T) {
	restoreGlobals(t)
	boom := errors.New("boom")
	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) { return nil, boom }

	_, err := HashPassword("x")
	require.ErrorIs(t, err, boom)
}
