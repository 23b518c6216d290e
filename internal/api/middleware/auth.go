package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"blog_nest/internal/common"
	"blog_nest/internal/common/security"
	"blog_nest/internal/domain/model"
)

type contextKey string

const (
	UsernameCtxKey contextKey = "username"
	RolesCtxKey    contextKey = "roles"
)

// Verifier parses the access token from the Authorization header only. The
// refresh cookie must never authenticate a protected route.
func Verifier(tokens *security.TokenManager) func(http.Handler) http.Handler {
	return jwtauth.Verify(tokens.AccessAuth(), jwtauth.TokenFromHeader)
}

// Authenticator turns the verifier's result into the response contract: a
// missing bearer credential is Unauthorized, a present-but-invalid one is
// Forbidden. On success the username and roles land in the request context.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			if errors.Is(err, jwtauth.ErrNoTokenFound) {
				common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
			} else {
				common.RespondWithError(w, http.StatusForbidden, common.ErrForbidden.Error())
			}
			return
		}
		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
			return
		}

		username, err := security.GetUsernameFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusForbidden, common.ErrForbidden.Error())
			return
		}
		roles, err := security.GetRolesFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusForbidden, common.ErrForbidden.Error())
			return
		}

		ctx := context.WithValue(r.Context(), UsernameCtxKey, username)
		ctx = context.WithValue(ctx, RolesCtxKey, roles)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates on the role set attached by Authenticator.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roles, ok := GetRolesFromContext(r.Context())
			if !ok || !model.HasRole(roles, role) {
				common.RespondWithError(w, http.StatusForbidden, common.ErrForbidden.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func AdminOnly(next http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin)(next)
}

// Helper to get the authenticated username from context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}

// Helper to get the authenticated roles from context
func GetRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(RolesCtxKey).([]string)
	return roles, ok
}
