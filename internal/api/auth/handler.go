package auth

import (
	"net/http"
	"strings"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/pkg/logger"
	"github.com/futig/proposal-backend/internal/pkg/response"
	"github.com/futig/proposal-backend/internal/pkg/validator"
)

type Handler struct {
	usecase   AuthUsecase
	validator *validator.Validator
}

func NewHandler(usecase AuthUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Register")

	var req entity.RegisterRequest
	if err := response.Decode(r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	req.Email = validator.NormalizeEmail(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := h.validator.ValidateRegister(&req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	res, err := h.usecase.Register(ctx, &req)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusCreated, &entity.AuthResponse{
		Message: "User registered successfully.",
		Token:   res.Token,
		User:    res.User,
	})
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Login")

	var req entity.LoginRequest
	if err := response.Decode(r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	if err := h.validator.ValidateLogin(&req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	res, err := h.usecase.Login(ctx, &req)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, &entity.AuthResponse{
		Message: "Login successful.",
		Token:   res.Token,
		User:    res.User,
	})
}

// InitiateRegistration handles POST /auth/register/initiate
func (h *Handler) InitiateRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "InitiateRegistration")

	var req entity.InitiateRegistrationRequest
	if err := response.Decode(r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	req.Email = validator.NormalizeEmail(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := h.validator.ValidateEmail(req.Email); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	if err := h.usecase.InitiateRegistration(ctx, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, &entity.MessageResponse{Message: "Registration link sent."})
}

// CompleteRegistration handles POST /auth/register/complete
func (h *Handler) CompleteRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CompleteRegistration")

	var req entity.CompleteRegistrationRequest
	if err := response.Decode(r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	if err := h.validator.ValidateCompleteRegistration(&req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	res, err := h.usecase.CompleteRegistration(ctx, &req)
	if err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusCreated, &entity.AuthResponse{
		Message: "Registration completed.",
		Token:   res.Token,
		User:    res.User,
	})
}

// RequestPasswordReset handles POST /auth/password-reset-request
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RequestPasswordReset")

	var req entity.PasswordResetRequest
	if err := response.Decode(r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	req.Email = validator.NormalizeEmail(req.Email)
	if err := h.validator.ValidateEmail(req.Email); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	if err := h.usecase.RequestPasswordReset(ctx, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, &entity.MessageResponse{
		Message: "If an account exists for this email, a reset link has been sent.",
	})
}

// ResetPassword handles POST /auth/reset-password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ResetPassword")

	var req entity.ResetPasswordRequest
	if err := response.Decode(r, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	if err := h.validator.ValidateResetPassword(&req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	if err := h.usecase.ResetPassword(ctx, &req); err != nil {
		response.HandleError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, &entity.MessageResponse{Message: "Password has been reset."})
}
