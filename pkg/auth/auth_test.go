package auth_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cafedesk/pkg/auth"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPasswordCost("s3cret", auth.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, auth.CheckPassword(hash, "s3cret"))
	assert.False(t, auth.CheckPassword(hash, "S3cret"))
	assert.False(t, auth.CheckPassword("not-a-hash", "s3cret"))
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := auth.GenerateToken(secret, "anna", "Cashier")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "anna", claims.Login)
	assert.Equal(t, "Cashier", claims.Role)
}

func TestTokenWithWrongSecretFails(t *testing.T) {
	token, err := auth.GenerateToken([]byte("one"), "anna", "Cashier")
	require.NoError(t, err)

	_, err = auth.ValidateToken([]byte("two"), token)
	assert.Error(t, err)

	_, err = auth.ValidateToken(nil, token)
	assert.ErrorIs(t, err, auth.ErrEmptySecret)
}

func TestSessionFileLifecycle(t *testing.T) {
	s := auth.NewSessionFile(filepath.Join(t.TempDir(), "nested", "session"))

	_, err := s.Load()
	assert.ErrorIs(t, err, auth.ErrNoSession)

	require.NoError(t, s.Save("abc.def.ghi"))
	token, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	_, err = s.Load()
	assert.ErrorIs(t, err, auth.ErrNoSession)
}
