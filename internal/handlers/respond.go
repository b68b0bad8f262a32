package handlers

import (
	"encoding/json"
	"net/http"

	"ai-chat-backend/internal/models"
	"ai-chat-backend/internal/services"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(errLabel, message string) models.ErrorResponse {
	return models.ErrorResponse{Error: errLabel, Message: message}
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorResp(models.ErrBadRequest, e.Message))
	case *services.UnauthorizedError:
		writeJSON(w, http.StatusUnauthorized, errorResp(models.ErrUnauthorized, e.Message))
	case *services.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResp("Not Found", e.Message))
	case *services.UpstreamError:
		writeJSON(w, http.StatusBadGateway, errorResp("Bad Gateway", e.Message))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("Internal Server Error", "An unexpected error occurred"))
	}
}
