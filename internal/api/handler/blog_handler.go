package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blog_nest/internal/app/service"
	"blog_nest/internal/common"
)

type BlogHandler struct {
	blogService *service.BlogService
}

func NewBlogHandler(blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogService.ListPublished(r.Context())
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogService.ListAll(r.Context())
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	details, err := h.blogService.GetDetails(r.Context(), chi.URLParam(r, "blogID"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, details)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.BlogInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.blogService.Create(r.Context(), in); err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, common.MessageResponse{Message: "New blog created"})
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in service.BlogInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	title, err := h.blogService.Update(r.Context(), chi.URLParam(r, "blogID"), in)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{
		Message: fmt.Sprintf("%s updated", title),
	})
}

func (h *BlogHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	title, err := h.blogService.TogglePublish(r.Context(), chi.URLParam(r, "blogID"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{
		Message: fmt.Sprintf("Publish property of %s updated", title),
	})
}
