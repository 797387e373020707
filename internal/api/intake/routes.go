package intake

import (
	"github.com/futig/proposal-backend/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers questionnaire and answer routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/wizard", h.ListWizard)

	r.With(middleware.RequireAuth).Post("/requests/find-or-create", h.FindOrCreateRequest)

	r.Route("/answers", func(r chi.Router) {
		r.Post("/", h.SaveAnswers)
		r.Get("/", h.ListAnswers)
	})
}
