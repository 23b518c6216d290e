package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blog_nest/internal/api/middleware"
	"blog_nest/internal/app/service"
	"blog_nest/internal/common"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	var in service.CommentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.commentService.Create(r.Context(), username, chi.URLParam(r, "blogID"), in); err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, common.MessageResponse{
		Message: "Comment was added successfully",
	})
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.commentService.Delete(r.Context(), chi.URLParam(r, "commentID")); err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{
		Message: "Comment was successfully deleted",
	})
}
