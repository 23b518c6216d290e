package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blog_nest/internal/app/service"
	"blog_nest/internal/common"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	username, err := h.userService.ToggleActive(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{
		Message: fmt.Sprintf("Active property of %s updated", username),
	})
}

type updateRolesRequest struct {
	Roles []string `json:"roles"`
}

func (h *UserHandler) SetRoles(w http.ResponseWriter, r *http.Request) {
	var req updateRolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	username, err := h.userService.SetRoles(r.Context(), chi.URLParam(r, "userID"), req.Roles)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{
		Message: fmt.Sprintf("Roles array of %s updated", username),
	})
}
