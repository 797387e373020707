package auth

import (
	"github.com/futig/proposal-backend/internal/api/middleware"
	"github.com/futig/proposal-backend/internal/entity"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the credential lifecycle routes; only invites need an admin
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(middleware.RequireRole(entity.RoleAdmin)).Post("/register/initiate", h.InitiateRegistration)
		r.Post("/register/complete", h.CompleteRegistration)
		r.Post("/password-reset-request", h.RequestPasswordReset)
		r.Post("/reset-password", h.ResetPassword)
	})
}
