package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"ai-chat-backend/internal/models"
)

type applicationRepository interface {
	Create(ctx context.Context, a *models.Application) error
}

type ApplicationHandler struct {
	appRepo applicationRepository
}

func NewApplicationHandler(appRepo applicationRepository) *ApplicationHandler {
	return &ApplicationHandler{appRepo: appRepo}
}

// Create handles POST /applications.
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ApplicationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(models.ErrBadRequest, "Invalid request body"))
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp(models.ErrBadRequest, "Name is required"))
		return
	}

	app := &models.Application{Name: strings.TrimSpace(req.Name)}
	if err := h.appRepo.Create(r.Context(), app); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, app)
}
