package admin

import (
	"github.com/futig/proposal-backend/internal/api/middleware"
	"github.com/futig/proposal-backend/internal/entity"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the admin review routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireRole(entity.RoleAdmin))

		r.Get("/users-with-answers", h.ListClientsWithAnswers)
		r.Get("/user-form/{clientId}", h.GetUserForm)
		r.Patch("/users/{id}/role", h.UpdateRole)
	})
}
