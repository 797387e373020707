package admin

import (
	"net/http"

	"github.com/futig/proposal-backend/internal/api/middleware"
	"github.com/futig/proposal-backend/internal/api/params"
	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/pkg/logger"
	"github.com/futig/proposal-backend/internal/pkg/response"
	"github.com/futig/proposal-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   AdminUsecase
	validator *validator.Validator
}

func NewHandler(usecase AdminUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// ListClientsWithAnswers handles GET /admin/users-with-answers
func (h *Handler) ListClientsWithAnswers(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListClientsWithAnswers")

	clients, err := h.usecase.ListClientsWithAnswers(ctx)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	if clients == nil {
		clients = []*entity.ClientWithAnswers{}
	}

	ctxzap.Debug(ctx, "clients listed", zap.Int("count", len(clients)))

	response.JSON(w, http.StatusOK, clients)
}

// GetUserForm handles GET /admin/user-form/{clientId}
func (h *Handler) GetUserForm(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetUserForm")

	userID, err := params.PathID(r, "clientId")
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	form, err := h.usecase.GetUserForm(ctx, userID)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, form)
}

// UpdateRole handles PATCH /admin/users/{id}/role
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateRole")

	userID, err := params.PathID(r, "id")
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	var req entity.UpdateRoleRequest
	if err := response.Decode(r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	if err := h.validator.ValidateRole(req.Role); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	user, err := h.usecase.UpdateRole(ctx, middleware.IdentityFromContext(ctx), userID, req.Role)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, user)
}
