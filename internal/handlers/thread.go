package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"ai-chat-backend/internal/middleware"
	"ai-chat-backend/internal/models"
	"ai-chat-backend/internal/services"
)

type ThreadHandler struct {
	threadService *services.ThreadService
}

func NewThreadHandler(threadService *services.ThreadService) *ThreadHandler {
	return &ThreadHandler{threadService: threadService}
}

// List handles GET /threads?email=&application=&skip=&limit=.
func (h *ThreadHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		email = middleware.GetEmail(r.Context())
	}

	application := r.URL.Query().Get("application")
	if application == "" {
		writeJSON(w, http.StatusBadRequest, errorResp(models.ErrBadRequest, "Application is required"))
		return
	}

	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	resp, err := h.threadService.List(r.Context(), email, application, skip, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /threads/{id}.
func (h *ThreadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(models.ErrBadRequest, "Invalid thread ID"))
		return
	}

	detail, err := h.threadService.GetDetail(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// Delete handles DELETE /threads/{id} (soft delete).
func (h *ThreadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(models.ErrBadRequest, "Invalid thread ID"))
		return
	}

	if err := h.threadService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
