package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"ai-chat-backend/internal/handlers"
	"ai-chat-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	chatHandler *handlers.ChatHandler,
	threadHandler *handlers.ThreadHandler,
	applicationHandler *handlers.ApplicationHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Chat rate limiter (30 exchanges/min per caller)
	chatLimiter := middleware.NewRateLimiter(30, time.Minute)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Hello, world!"}`))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(jwtAuth.Middleware)

		r.With(chatLimiter.Middleware).Post("/chats", chatHandler.Stream)

		r.Route("/threads", func(r chi.Router) {
			r.Get("/", threadHandler.List)
			r.Get("/{id}", threadHandler.Get)
			r.Delete("/{id}", threadHandler.Delete)
		})

		r.Post("/applications", applicationHandler.Create)
	})

	return r
}
