package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingUsernameClaim = errors.New("username claim is missing or not a string")
	ErrMissingRolesClaim    = errors.New("roles claim is missing or not a string list")
)

// TokenManager signs and verifies the two token families. Access tokens carry
// {username, roles} and live for minutes; refresh tokens carry {username}
// only and live for days. Each family has its own signing secret.
type TokenManager struct {
	access     *jwtauth.JWTAuth
	refresh    *jwtauth.JWTAuth
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		access:     jwtauth.New("HS256", accessSecret, nil),
		refresh:    jwtauth.New("HS256", refreshSecret, nil),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessAuth exposes the access-token verifier for the jwtauth middleware.
func (m *TokenManager) AccessAuth() *jwtauth.JWTAuth { return m.access }

func (m *TokenManager) RefreshTTL() time.Duration { return m.refreshTTL }

func (m *TokenManager) IssueAccessToken(username string, roles []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"username": username,
		"roles":    roles,
		"exp":      now.Add(m.accessTTL).Unix(),
		"iat":      now.Unix(),
	}
	_, tokenString, err := m.access.Encode(claims)
	return tokenString, err
}

func (m *TokenManager) IssueRefreshToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"username": username,
		"exp":      now.Add(m.refreshTTL).Unix(),
		"iat":      now.Unix(),
	}
	_, tokenString, err := m.refresh.Encode(claims)
	return tokenString, err
}

// VerifyRefreshToken checks signature and expiry against the refresh secret
// and returns the embedded username claim.
func (m *TokenManager) VerifyRefreshToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(m.refresh, tokenString)
	if err != nil {
		return "", err
	}
	raw, ok := token.Get("username")
	if !ok {
		return "", ErrMissingUsernameClaim
	}
	username, ok := raw.(string)
	if !ok || username == "" {
		return "", ErrMissingUsernameClaim
	}
	return username, nil
}

// Helper functions to extract claims, used by the middleware after jwtauth
// has verified the access token.

func GetUsernameFromClaims(claims jwt.MapClaims) (string, error) {
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", ErrMissingUsernameClaim
	}
	return username, nil
}

func GetRolesFromClaims(claims jwt.MapClaims) ([]string, error) {
	switch raw := claims["roles"].(type) {
	case []string:
		return raw, nil
	case []interface{}:
		// jwx decodes JSON arrays as []interface{}.
		roles := make([]string, 0, len(raw))
		for _, r := range raw {
			s, ok := r.(string)
			if !ok {
				return nil, ErrMissingRolesClaim
			}
			roles = append(roles, s)
		}
		return roles, nil
	default:
		return nil, ErrMissingRolesClaim
	}
}
