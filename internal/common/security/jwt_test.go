package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(accessTTL, refreshTTL time.Duration) *TokenManager {
	return NewTokenManager([]byte("access-secret"), []byte("refresh-secret"), accessTTL, refreshTTL)
}

func TestIssueAccessToken_ClaimsRoundTrip(t *testing.T) {
	t.Parallel()

	m := newTestManager(15*time.Minute, 7*24*time.Hour)

	tokenString, err := m.IssueAccessToken("alice123", []string{"User", "Admin"})
	require.NoError(t, err)

	token, err := m.AccessAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	username, err := GetUsernameFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "alice123", username)

	roles, err := GetRolesFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, []string{"User", "Admin"}, roles)
}

func TestVerifyRefreshToken_Success(t *testing.T) {
	t.Parallel()

	m := newTestManager(15*time.Minute, 7*24*time.Hour)

	tokenString, err := m.IssueRefreshToken("alice123")
	require.NoError(t, err)

	username, err := m.VerifyRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "alice123", username)
}

func TestVerifyRefreshToken_Expired(t *testing.T) {
	t.Parallel()

	m := newTestManager(15*time.Minute, -1*time.Second)

	tokenString, err := m.IssueRefreshToken("alice123")
	require.NoError(t, err)

	_, err = m.VerifyRefreshToken(tokenString)
	require.Error(t, err)
}

func TestVerifyRefreshToken_WrongFamily(t *testing.T) {
	t.Parallel()

	m := newTestManager(15*time.Minute, 7*24*time.Hour)

	// An access token must never pass refresh verification: the families use
	// distinct signing secrets.
	accessToken, err := m.IssueAccessToken("alice123", []string{"User"})
	require.NoError(t, err)

	_, err = m.VerifyRefreshToken(accessToken)
	require.Error(t, err)
}

func TestVerifyRefreshToken_Tampered(t *testing.T) {
	t.Parallel()

	m := newTestManager(15*time.Minute, 7*24*time.Hour)

	tokenString, err := m.IssueRefreshToken("alice123")
	require.NoError(t, err)

	_, err = m.VerifyRefreshToken(tokenString + "x")
	require.Error(t, err)

	_, err = m.VerifyRefreshToken("not.a.jwt")
	require.Error(t, err)
}

func TestGetRolesFromClaims_Shapes(t *testing.T) {
	t.Parallel()

	roles, err := GetRolesFromClaims(map[string]interface{}{"roles": []interface{}{"User"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"User"}, roles)

	roles, err = GetRolesFromClaims(map[string]interface{}{"roles": []string{"Admin"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Admin"}, roles)

	_, err = GetRolesFromClaims(map[string]interface{}{"roles": "Admin"})
	require.ErrorIs(t, err, ErrMissingRolesClaim)

	_, err = GetRolesFromClaims(map[string]interface{}{})
	require.ErrorIs(t, err, ErrMissingRolesClaim)
}
