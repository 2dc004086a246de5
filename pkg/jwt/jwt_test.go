package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := Generate("secreto", "user-1", RoleBodeguero, "stock-movements-api", 5)
	require.NoError(t, err)

	userID, role, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, RoleBodeguero, role)
}

func TestParse_Rejections(t *testing.T) {
	token, err := Generate("secreto", "user-1", RoleAdmin, "stock-movements-api", 5)
	require.NoError(t, err)

	_, _, err = Parse("otro", token)
	assert.Error(t, err)

	expired, err := Generate("secreto", "user-1", RoleAdmin, "stock-movements-api", -1)
	require.NoError(t, err)
	_, _, err = Parse("secreto", expired)
	assert.Error(t, err)

	_, _, err = Parse("", token)
	assert.Error(t, err)

	_, err = Generate("", "user-1", RoleAdmin, "x", 5)
	assert.Error(t, err)
}
