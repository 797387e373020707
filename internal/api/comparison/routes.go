package comparison

import (
	"github.com/futig/proposal-backend/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/comparisons", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/generate-comparison", h.GenerateComparison)
		r.Get("/{requestId}", h.GetComparison)
	})
}
