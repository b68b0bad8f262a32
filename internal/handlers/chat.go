package handlers

import (
	"encoding/json"
	"net/http"

	"ai-chat-backend/internal/middleware"
	"ai-chat-backend/internal/models"
	"ai-chat-backend/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Stream handles POST /chats: it relays the answering service's event stream
// to the client as Server-Sent Events. Errors that occur before the first
// frame produce a clean JSON error status; after that the stream just ends.
func (h *ChatHandler) Stream(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(models.ErrBadRequest, "Invalid request body"))
		return
	}

	if req.Email == "" {
		req.Email = middleware.GetEmail(r.Context())
	}

	sink := &sseWriter{w: w}
	if err := h.chatService.StreamChat(r.Context(), req, sink); err != nil {
		if !sink.wrote {
			handleServiceError(w, err)
		}
		return
	}
}

// sseWriter lazily switches the response to text/event-stream on the first
// frame and flushes after every write so frames reach the client as they
// arrive.
type sseWriter struct {
	w     http.ResponseWriter
	wrote bool
}

func (s *sseWriter) WriteFrame(frame []byte) error {
	if !s.wrote {
		s.w.Header().Set("Content-Type", "text/event-stream")
		s.w.Header().Set("Cache-Control", "no-cache")
		s.w.Header().Set("Connection", "keep-alive")
		s.w.WriteHeader(http.StatusOK)
		s.wrote = true
	}

	if _, err := s.w.Write(frame); err != nil {
		return err
	}
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}
