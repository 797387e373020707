package proposal

import (
	"github.com/futig/proposal-backend/internal/api/middleware"
	"github.com/futig/proposal-backend/internal/entity"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers proposal routes. Every route needs a signed in caller;
// manual edits are reserved for admins.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/proposals", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/", h.GetProposal)
		r.With(middleware.RequireRole(entity.RoleAdmin)).Post("/", h.SaveProposal)
		r.Post("/generate", h.GenerateProposal)
		r.Get("/client/{requestId}", h.GetProposal)
		r.Get("/{requestId}/export", h.ExportProposal)
	})
}
