package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "admin@synthos.ai", "Admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "admin@synthos.ai", claims.Email)
	assert.Equal(t, "Admin", claims.Name)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "admin@synthos.ai", "Admin")
	require.NoError(t, err)

	_, err = VerifyToken("other-secret", token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, err := VerifyToken("secret", "not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, ComparePassword(hash, "hunter2"))
	assert.False(t, ComparePassword(hash, "hunter3"))
}

func TestGenerateUUID(t *testing.T) {
	assert.NotEqual(t, GenerateUUID(), GenerateUUID())
}
