package proposal

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/futig/proposal-backend/internal/api/params"
	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/pkg/logger"
	"github.com/futig/proposal-backend/internal/pkg/response"
	"github.com/futig/proposal-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   ProposalUsecase
	validator *validator.Validator
}

func NewHandler(usecase ProposalUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// GenerateProposal handles POST /proposals/generate
func (h *Handler) GenerateProposal(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateProposal")

	var req entity.GenerateRequest
	if err := response.Decode(r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	if err := h.validator.ValidateRequestID(req.RequestID); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	proposal, err := h.usecase.Generate(ctx, req.RequestID)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, &entity.ProposalResponse{Proposal: proposal})
}

// GetProposal handles GET /proposals?requestId= and GET /proposals/client/{requestId}
func (h *Handler) GetProposal(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetProposal")

	var (
		requestID int64
		err       error
	)
	if chi.URLParam(r, "requestId") != "" {
		requestID, err = params.PathID(r, "requestId")
	} else {
		requestID, err = params.QueryID(r, "requestId")
	}
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	proposal, err := h.usecase.Get(ctx, requestID)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, &entity.ProposalResponse{Proposal: proposal})
}

// SaveProposal handles POST /proposals
func (h *Handler) SaveProposal(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SaveProposal")

	var req entity.SaveProposalRequest
	if err := response.Decode(r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	if err := h.validator.ValidateSaveProposal(&req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	proposal, err := h.usecase.Save(ctx, &req)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, &entity.ProposalResponse{Proposal: proposal})
}

// ExportProposal handles GET /proposals/{requestId}/export?format=
func (h *Handler) ExportProposal(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportProposal")

	requestID, err := params.PathID(r, "requestId")
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatMarkdown
	}

	file, err := h.usecase.Export(ctx, requestID, format)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "proposal exported",
		zap.Int64("request_id", requestID),
		zap.String("format", string(format)),
		zap.Int("size", len(file.Content)),
	)

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		ctxzap.Warn(ctx, "failed to write export", zap.Error(err))
	}
}
