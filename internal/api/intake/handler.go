package intake

import (
	"net/http"
	"strings"

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
	usecase   IntakeUsecase
	validator *validator.Validator
}

func NewHandler(usecase IntakeUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// ListWizard handles GET /wizard
func (h *Handler) ListWizard(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListWizard")

	serviceType := strings.TrimSpace(r.URL.Query().Get("serviceType"))

	steps, err := h.usecase.ListWizard(ctx, serviceType)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	if steps == nil {
		steps = []*entity.WizardStep{}
	}

	ctxzap.Debug(ctx, "wizard listed", zap.Int("steps", len(steps)))

	response.JSON(w, http.StatusOK, steps)
}

// FindOrCreateRequest handles POST /requests/find-or-create
func (h *Handler) FindOrCreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "FindOrCreateRequest")

	var req entity.FindOrCreateRequestRequest
	if err := response.Decode(r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	req.ServiceType = strings.TrimSpace(req.ServiceType)
	if req.ServiceType == "" {
		response.Error(ctx, w, http.StatusBadRequest, "serviceType is required", nil)
		return
	}

	request, err := h.usecase.FindOrCreateRequest(ctx, middleware.IdentityFromContext(ctx), req.ServiceType)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, &entity.FindOrCreateRequestResponse{
		RequestID:   request.ID,
		ServiceType: request.ProjectName,
	})
}

// SaveAnswers handles POST /answers
func (h *Handler) SaveAnswers(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SaveAnswers")

	var req entity.SaveAnswersRequest
	if err := response.Decode(r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	req.ServiceType = strings.TrimSpace(req.ServiceType)
	if err := h.validator.ValidateSaveAnswers(&req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	res, err := h.usecase.SaveAnswers(ctx, middleware.IdentityFromContext(ctx), &req)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, &entity.SaveAnswersResponse{
		Message:   "Answers saved successfully.",
		Data:      res.Answers,
		RequestID: res.RequestID,
	})
}

// ListAnswers handles GET /answers?requestId=
func (h *Handler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListAnswers")

	requestID, err := params.QueryID(r, "requestId")
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	answers, err := h.usecase.ListAnswers(ctx, requestID)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	if answers == nil {
		answers = []*entity.AnswerWithQuestion{}
	}

	response.JSON(w, http.StatusOK, &entity.ListAnswersResponse{CompletedAnswers: answers})
}
