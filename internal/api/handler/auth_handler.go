package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"blog_nest/internal/app/service"
	"blog_nest/internal/common"
	"blog_nest/internal/common/security"
)

type AuthHandler struct {
	authService *service.AuthService
	cookies     *security.RefreshCookie
}

func NewAuthHandler(authService *service.AuthService, cookies *security.RefreshCookie) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req service.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	username, err := h.authService.SignUp(r.Context(), req)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{
		Message: fmt.Sprintf("New user %s created", username),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	accessToken, refreshToken, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	// The refresh token travels only in the cookie, never in the body.
	h.cookies.Set(w, refreshToken)
	common.RespondWithJSON(w, http.StatusOK, service.AccessTokenResponse{AccessToken: accessToken})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := h.cookies.Read(r)
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	accessToken, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, service.AccessTokenResponse{AccessToken: accessToken})
}

// Logout is idempotent: without a cookie there is nothing to clear and the
// caller still gets a success.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.cookies.Read(r); !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.cookies.Clear(w)
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Cookie cleared"})
}
