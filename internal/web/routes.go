package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/face-stickers/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	// Create handlers
	stickersHandler := handlers.NewStickersHandler(s.config, s.assets)
	overlayHandler := handlers.NewOverlayHandler(s.assets, s.scorer, s.log)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck)
		r.Get("/stickers", stickersHandler.List)
		r.Post("/overlay", overlayHandler.Apply)
	})
}
