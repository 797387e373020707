package comparison

import (
	"net/http"

	"github.com/futig/proposal-backend/internal/api/params"
	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/pkg/logger"
	"github.com/futig/proposal-backend/internal/pkg/response"
	"github.com/futig/proposal-backend/internal/pkg/validator"
)

type Handler struct {
	usecase   ComparisonUsecase
	validator *validator.Validator
}

func NewHandler(usecase ComparisonUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// GenerateComparison handles POST /comparisons/generate-comparison
func (h *Handler) GenerateComparison(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateComparison")

	var req entity.GenerateRequest
	if err := response.Decode(r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	if err := h.validator.ValidateRequestID(req.RequestID); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	comparison, err := h.usecase.Generate(ctx, req.RequestID)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, &entity.ComparisonResponse{Comparison: comparison})
}

// GetComparison handles GET /comparisons/{requestId}
func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetComparison")

	requestID, err := params.PathID(r, "requestId")
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	comparison, err := h.usecase.Get(ctx, requestID)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, &entity.ComparisonResponse{Comparison: comparison})
}
